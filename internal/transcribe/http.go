package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/metadata/video"
)

const (
	defaultTimeout = 2 * time.Minute

	// Responses larger than this are rejected.
	maxResponseBytes = 16 << 20

	// RequestIDHeader carries the per-call correlation id.
	RequestIDHeader = "X-Request-ID"
)

// ErrServer is returned when the transcription service answers with a 5xx.
var ErrServer = errors.New("transcription service error")

type transcribeRequest struct {
	URL       string           `json:"url"`
	VideoType domain.VideoType `json:"video_type"`
	VideoID   string           `json:"video_id,omitempty"`
}

// HTTPTranscriber posts video URLs to an external transcription service
// and decodes its JSON answer into a Result.
type HTTPTranscriber struct {
	http     *http.Client
	logger   *slog.Logger
	endpoint string
}

// NewHTTPTranscriber creates a client for the service at endpoint.
// A zero timeout selects the default.
func NewHTTPTranscriber(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPTranscriber {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPTranscriber{
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		endpoint: endpoint,
	}
}

// Transcribe implements Transcriber.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, url string, videoType domain.VideoType) (*Result, error) {
	if !videoType.Valid() {
		return nil, fmt.Errorf("unsupported video type %q", videoType)
	}

	videoID, _ := video.ID(url, videoType)
	body, err := json.Marshal(transcribeRequest{URL: url, VideoType: videoType, VideoID: videoID})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	t.logger.Debug("transcription request",
		"request_id", requestID,
		"video_type", videoType,
		"video_id", videoID,
	)

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Segments == nil {
		result.Segments = []domain.Segment{}
	}

	t.logger.Info("transcription complete",
		"request_id", requestID,
		"segments", len(result.Segments),
		"duration", result.Duration,
	)
	return &result, nil
}
