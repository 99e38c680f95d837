package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/id"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/transcribe"
	"github.com/listenupapp/linkstash/internal/validation"
)

// CreateTranscriptRequest holds a finished transcript for a bookmark.
type CreateTranscriptRequest struct {
	BookmarkID string           `json:"bookmark_id" validate:"required"`
	Segments   []domain.Segment `json:"segments" validate:"dive"`
	FullText   string           `json:"full_text"`
	Language   string           `json:"language,omitempty" validate:"max=16"`
	Duration   float64          `json:"duration,omitempty" validate:"gte=0"`
}

// UpdateTranscriptRequest is a patch: nil fields are kept.
type UpdateTranscriptRequest struct {
	Segments *[]domain.Segment `json:"segments,omitempty" validate:"omitempty,dive"`
	FullText *string           `json:"full_text,omitempty"`
	Language *string           `json:"language,omitempty" validate:"omitempty,max=16"`
	Duration *float64          `json:"duration,omitempty" validate:"omitempty,gte=0"`
}

// TranscriptService manages the single transcript a bookmark may carry.
type TranscriptService struct {
	store       store.Store
	transcriber transcribe.Transcriber
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewTranscriptService creates a new transcript service.
func NewTranscriptService(store store.Store, transcriber transcribe.Transcriber, validator *validation.Validator, logger *slog.Logger) *TranscriptService {
	return &TranscriptService{
		store:       store,
		transcriber: transcriber,
		validator:   validator,
		logger:      logger,
	}
}

// Create attaches a transcript to one of the caller's bookmarks.
// A bookmark holds at most one transcript.
func (s *TranscriptService) Create(ctx context.Context, req CreateTranscriptRequest) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	b, err := loadOwned(ctx, userID, "bookmark", req.BookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}
	if err := s.checkNoTranscript(ctx, b); err != nil {
		return nil, err
	}

	transcriptID, err := id.Generate(id.Transcript)
	if err != nil {
		return nil, fmt.Errorf("generate transcript ID: %w", err)
	}

	segments := req.Segments
	if segments == nil {
		segments = []domain.Segment{}
	}

	now := time.Now()
	t := &domain.Transcript{
		ID:         transcriptID,
		UserID:     userID,
		BookmarkID: b.ID,
		FullText:   req.FullText,
		Language:   req.Language,
		Status:     domain.TranscriptCompleted,
		Segments:   segments,
		Duration:   req.Duration,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateTranscript(ctx, t); err != nil {
		return nil, translate(err, "create transcript")
	}

	b.TranscriptID = t.ID
	b.Touch()
	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, fmt.Errorf("link transcript to bookmark: %w", err)
	}

	s.logger.Info("transcript created",
		"transcript_id", t.ID,
		"bookmark_id", b.ID,
		"user_id", userID,
		"segments", len(t.Segments),
	)
	return t, nil
}

func (s *TranscriptService) checkNoTranscript(ctx context.Context, b *domain.Bookmark) error {
	if b.TranscriptID != "" {
		return domainerrors.AlreadyExists("bookmark already has a transcript")
	}
	_, err := s.store.GetTranscriptForBookmark(ctx, b.ID)
	if err == nil {
		return domainerrors.AlreadyExists("bookmark already has a transcript")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check existing transcript: %w", err)
	}
	return nil
}

// Generate asks the configured transcriber for a video bookmark's
// transcript and stores the result.
func (s *TranscriptService) Generate(ctx context.Context, bookmarkID string) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}
	if !b.IsVideo {
		return nil, domainerrors.Validation("only video bookmarks can be transcribed")
	}
	if err := s.checkNoTranscript(ctx, b); err != nil {
		return nil, err
	}

	result, err := s.transcriber.Transcribe(ctx, b.URL, b.VideoType)
	if err != nil {
		s.logger.Warn("transcription failed", "bookmark_id", b.ID, "error", err)
		return nil, domainerrors.Upstream("transcription service unavailable", err)
	}

	return s.Create(ctx, CreateTranscriptRequest{
		BookmarkID: b.ID,
		Segments:   result.Segments,
		FullText:   result.FullText,
		Language:   result.Language,
		Duration:   result.Duration,
	})
}

// Get returns one of the caller's transcripts.
func (s *TranscriptService) Get(ctx context.Context, transcriptID string) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, domainerrors.NotFound("transcript not found")
	}
	return loadOwned(ctx, userID, "transcript", transcriptID, s.store.GetTranscript)
}

// GetForBookmark returns the transcript attached to one of the caller's bookmarks.
func (s *TranscriptService) GetForBookmark(ctx context.Context, bookmarkID string) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, domainerrors.NotFound("transcript not found")
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}

	t, err := s.store.GetTranscriptForBookmark(ctx, b.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("bookmark %s has no transcript", b.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	return t, nil
}

// UpdateStatus sets a transcript's processing status.
func (s *TranscriptService) UpdateStatus(ctx context.Context, transcriptID string, status domain.TranscriptStatus) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.Validationf("unknown transcript status %q", status)
	}

	t, err := loadOwned(ctx, userID, "transcript", transcriptID, s.store.GetTranscript)
	if err != nil {
		return nil, err
	}

	t.Status = status
	t.Touch()
	if err := s.store.UpdateTranscript(ctx, t); err != nil {
		return nil, translate(err, "update transcript status")
	}
	return t, nil
}

// Update patches a transcript's content.
func (s *TranscriptService) Update(ctx context.Context, transcriptID string, req UpdateTranscriptRequest) (*domain.Transcript, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := loadOwned(ctx, userID, "transcript", transcriptID, s.store.GetTranscript)
	if err != nil {
		return nil, err
	}

	patch(&t.Segments, req.Segments)
	patch(&t.FullText, req.FullText)
	patch(&t.Language, req.Language)
	patch(&t.Duration, req.Duration)
	t.Touch()

	if err := s.store.UpdateTranscript(ctx, t); err != nil {
		return nil, translate(err, "update transcript")
	}
	return t, nil
}

// Remove detaches a transcript from its bookmark and deletes it.
func (s *TranscriptService) Remove(ctx context.Context, transcriptID string) error {
	userID, err := requireSubject(ctx)
	if err != nil {
		return err
	}

	t, err := loadOwned(ctx, userID, "transcript", transcriptID, s.store.GetTranscript)
	if err != nil {
		return err
	}

	b, err := s.store.GetBookmark(ctx, t.BookmarkID)
	switch {
	case err == nil && b.TranscriptID == t.ID:
		b.TranscriptID = ""
		b.Touch()
		if err := s.store.UpdateBookmark(ctx, b); err != nil {
			return fmt.Errorf("unlink transcript: %w", err)
		}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("get bookmark: %w", err)
	}

	if err := s.store.DeleteTranscript(ctx, t.ID); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}

	s.logger.Info("transcript deleted", "transcript_id", t.ID, "bookmark_id", t.BookmarkID, "user_id", userID)
	return nil
}

// Search returns the segments of a bookmark's transcript whose text contains
// query, ignoring case, in transcript order. The result is empty when the
// caller is anonymous, the bookmark is not theirs, or it has no transcript.
func (s *TranscriptService) Search(ctx context.Context, bookmarkID, query string) ([]domain.Segment, error) {
	empty := []domain.Segment{}

	userID, err := requireSubject(ctx)
	if err != nil {
		return empty, nil
	}
	if strings.TrimSpace(query) == "" {
		return empty, nil
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return nil, err
	}

	t, err := s.store.GetTranscriptForBookmark(ctx, b.ID)
	if errors.Is(err, store.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	return t.MatchSegments(query), nil
}
