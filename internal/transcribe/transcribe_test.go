package transcribe

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/linkstash/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Transcribe(context.Background(), "https://youtu.be/abc", domain.VideoTypeYouTube)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPTranscriber_Success(t *testing.T) {
	var got transcribeRequest
	var requestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		requestID = r.Header.Get(RequestIDHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"full_text": "hello world",
			"language": "en",
			"duration": 12.5,
			"segments": [
				{"timestamp": 0, "text": "hello", "start_time": 0, "end_time": 1.5},
				{"timestamp": 1.5, "text": "world", "start_time": 1.5, "end_time": 3}
			]
		}`))
	}))
	defer srv.Close()

	tr := NewHTTPTranscriber(srv.URL, time.Second, testLogger())
	result, err := tr.Transcribe(context.Background(), "https://www.youtube.com/watch?v=abc123", domain.VideoTypeYouTube)
	require.NoError(t, err)

	assert.Equal(t, "hello world", result.FullText)
	assert.Equal(t, "en", result.Language)
	assert.InDelta(t, 12.5, result.Duration, 0.001)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "world", result.Segments[1].Text)

	assert.Equal(t, "abc123", got.VideoID)
	assert.Equal(t, domain.VideoTypeYouTube, got.VideoType)
	_, err = uuid.Parse(requestID)
	assert.NoError(t, err)
}

func TestHTTPTranscriber_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewHTTPTranscriber(srv.URL, time.Second, testLogger())
	_, err := tr.Transcribe(context.Background(), "https://youtu.be/abc", domain.VideoTypeYouTube)
	assert.ErrorIs(t, err, ErrServer)
}

func TestHTTPTranscriber_EmptySegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"full_text": ""}`))
	}))
	defer srv.Close()

	tr := NewHTTPTranscriber(srv.URL, 0, testLogger())
	result, err := tr.Transcribe(context.Background(), "https://www.instagram.com/reel/xyz/", domain.VideoTypeInstagram)
	require.NoError(t, err)
	assert.NotNil(t, result.Segments)
	assert.Empty(t, result.Segments)
}

func TestHTTPTranscriber_RejectsUnknownType(t *testing.T) {
	tr := NewHTTPTranscriber("http://127.0.0.1:0", time.Second, testLogger())
	_, err := tr.Transcribe(context.Background(), "https://example.com", "")
	assert.Error(t, err)
}
