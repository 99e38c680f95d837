// Package transcribe turns video URLs into timestamped transcripts.
//
// Speech-to-text runs outside this server. The package defines the
// Transcriber seam the transcript service depends on, a default that
// always reports ErrUnavailable, and an HTTP client for an external
// transcription service.
package transcribe

import (
	"context"
	"errors"

	"github.com/listenupapp/linkstash/internal/domain"
)

// ErrUnavailable is returned when no transcription backend is configured.
var ErrUnavailable = errors.New("transcription unavailable")

// Result is a completed transcription.
type Result struct {
	Language string           `json:"language,omitempty"`
	FullText string           `json:"full_text"`
	Segments []domain.Segment `json:"segments"`
	Duration float64          `json:"duration,omitempty"`
}

// Transcriber produces a transcript for a video URL.
type Transcriber interface {
	Transcribe(ctx context.Context, url string, videoType domain.VideoType) (*Result, error)
}

// Unavailable is the Transcriber used when no endpoint is configured.
type Unavailable struct{}

// Transcribe always fails with ErrUnavailable.
func (Unavailable) Transcribe(context.Context, string, domain.VideoType) (*Result, error) {
	return nil, ErrUnavailable
}
