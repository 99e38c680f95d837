package badgerstore

import (
	"context"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/store"
)

// CreateTranscript inserts a new transcript.
func (s *Store) CreateTranscript(ctx context.Context, t *domain.Transcript) error {
	return s.transcripts.Create(ctx, t.ID, t)
}

// GetTranscript retrieves a transcript by ID.
func (s *Store) GetTranscript(ctx context.Context, id string) (*domain.Transcript, error) {
	return s.transcripts.Get(ctx, id)
}

// UpdateTranscript replaces an existing transcript.
func (s *Store) UpdateTranscript(ctx context.Context, t *domain.Transcript) error {
	return s.transcripts.Update(ctx, t.ID, t)
}

// DeleteTranscript removes a transcript.
func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	return s.transcripts.Delete(ctx, id)
}

// GetTranscriptForBookmark returns the newest transcript attached to bookmarkID.
func (s *Store) GetTranscriptForBookmark(ctx context.Context, bookmarkID string) (*domain.Transcript, error) {
	out, err := s.transcripts.ListByIndex(ctx, "bookmark", indexValue(bookmarkID))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, store.ErrNotFound
	}
	newest := out[0]
	for _, t := range out[1:] {
		if t.CreatedAt.After(newest.CreatedAt) {
			newest = t
		}
	}
	return newest, nil
}
