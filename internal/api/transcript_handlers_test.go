package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/transcribe"
)

type stubTranscriber struct {
	result *transcribe.Result
}

func (s stubTranscriber) Transcribe(context.Context, string, domain.VideoType) (*transcribe.Result, error) {
	return s.result, nil
}

var testSegments = []map[string]any{
	{"timestamp": 0, "text": "Welcome back", "start_time": 0, "end_time": 2},
	{"timestamp": 2, "text": "Today: Go generics", "start_time": 2, "end_time": 6},
	{"timestamp": 6, "text": "generics are GREAT", "start_time": 6, "end_time": 9},
}

func TestTranscripts_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.bearerFor(t, "alice")

	b := ts.createBookmark(t, alice, map[string]any{"url": "https://www.youtube.com/watch?v=abc123"})

	resp := ts.api.Post("/api/v1/transcripts", alice, map[string]any{
		"bookmark_id": b.ID,
		"segments":    testSegments,
		"full_text":   "Welcome back. Today: Go generics. generics are GREAT",
		"language":    "en",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	tr := decodeEnvelope[*domain.Transcript](t, resp.Body.Bytes()).Data
	assert.Equal(t, domain.TranscriptCompleted, tr.Status)
	assert.Len(t, tr.Segments, 3)

	// A bookmark holds one transcript.
	resp = ts.api.Post("/api/v1/transcripts", alice, map[string]any{
		"bookmark_id": b.ID,
		"segments":    []any{},
		"full_text":   "",
	})
	require.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Get("/api/v1/bookmarks/"+b.ID+"/transcript", alice)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, tr.ID, decodeEnvelope[*domain.Transcript](t, resp.Body.Bytes()).Data.ID)

	resp = ts.api.Patch("/api/v1/transcripts/"+tr.ID+"/status", alice, map[string]any{"status": "processing"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, domain.TranscriptProcessing, decodeEnvelope[*domain.Transcript](t, resp.Body.Bytes()).Data.Status)

	resp = ts.api.Patch("/api/v1/transcripts/"+tr.ID+"/status", alice, map[string]any{"status": "bogus"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Patch("/api/v1/transcripts/"+tr.ID, alice, map[string]any{"language": "de"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "de", decodeEnvelope[*domain.Transcript](t, resp.Body.Bytes()).Data.Language)

	resp = ts.api.Delete("/api/v1/transcripts/"+tr.ID, alice)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/transcripts/"+tr.ID, alice)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/bookmarks/"+b.ID, alice)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeEnvelope[*domain.Bookmark](t, resp.Body.Bytes()).Data.TranscriptID)
}

func TestTranscripts_Search(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.bearerFor(t, "alice")

	b := ts.createBookmark(t, alice, map[string]any{"url": "https://youtu.be/abc123"})
	resp := ts.api.Post("/api/v1/transcripts", alice, map[string]any{
		"bookmark_id": b.ID,
		"segments":    testSegments,
		"full_text":   "",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	search := func(authz, query string) []domain.Segment {
		t.Helper()
		resp := ts.api.Get("/api/v1/bookmarks/"+b.ID+"/transcript/search?q="+query, authz)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		return decodeEnvelope[SearchTranscriptResponse](t, resp.Body.Bytes()).Data.Segments
	}

	matches := search(alice, "generics")
	require.Len(t, matches, 2)
	assert.Equal(t, "Today: Go generics", matches[0].Text)
	assert.Equal(t, float64(6), matches[1].Timestamp)

	assert.Empty(t, search(alice, "missing"))
	assert.Empty(t, search(alice, ""))
	assert.Empty(t, search(ts.bearerFor(t, "bob"), "generics"))
}

func TestTranscripts_Generate(t *testing.T) {
	t.Run("unavailable service", func(t *testing.T) {
		ts := setupTestServer(t)
		alice := ts.bearerFor(t, "alice")

		b := ts.createBookmark(t, alice, map[string]any{"url": "https://youtu.be/abc123"})
		resp := ts.api.Post("/api/v1/bookmarks/"+b.ID+"/transcript/generate", alice)
		require.Equal(t, http.StatusServiceUnavailable, resp.Code, resp.Body.String())
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeEnvelope[any](t, resp.Body.Bytes()).Code)
	})

	t.Run("not a video", func(t *testing.T) {
		ts := setupTestServer(t)
		alice := ts.bearerFor(t, "alice")

		b := ts.createBookmark(t, alice, map[string]any{"url": "https://example.com"})
		resp := ts.api.Post("/api/v1/bookmarks/"+b.ID+"/transcript/generate", alice)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("stored", func(t *testing.T) {
		ts := setupTestServerWith(t, testOptions{transcriber: stubTranscriber{result: &transcribe.Result{
			Language: "en",
			FullText: "hello",
			Segments: []domain.Segment{{Text: "hello", EndTime: 1}},
			Duration: 1,
		}}})
		alice := ts.bearerFor(t, "alice")

		b := ts.createBookmark(t, alice, map[string]any{"url": "https://www.instagram.com/reel/Cabc/"})
		resp := ts.api.Post("/api/v1/bookmarks/"+b.ID+"/transcript/generate", alice)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		tr := decodeEnvelope[*domain.Transcript](t, resp.Body.Bytes()).Data
		assert.Equal(t, b.ID, tr.BookmarkID)
		assert.Equal(t, "hello", tr.FullText)
	})
}
