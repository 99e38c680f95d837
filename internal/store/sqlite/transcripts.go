package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/listenupapp/linkstash/internal/domain"
)

const transcriptColumns = `id, user_id, bookmark_id, full_text, language, status, segments, duration, created_at, updated_at`

type transcriptRow struct {
	ID         string  `db:"id"`
	UserID     string  `db:"user_id"`
	BookmarkID string  `db:"bookmark_id"`
	FullText   string  `db:"full_text"`
	Language   string  `db:"language"`
	Status     string  `db:"status"`
	Segments   string  `db:"segments"`
	CreatedAt  string  `db:"created_at"`
	UpdatedAt  string  `db:"updated_at"`
	Duration   float64 `db:"duration"`
}

func toTranscriptRow(t *domain.Transcript) (*transcriptRow, error) {
	segments := t.Segments
	if segments == nil {
		segments = []domain.Segment{}
	}
	data, err := json.Marshal(segments)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}
	return &transcriptRow{
		ID:         t.ID,
		UserID:     t.UserID,
		BookmarkID: t.BookmarkID,
		FullText:   t.FullText,
		Language:   t.Language,
		Status:     string(t.Status),
		Segments:   string(data),
		CreatedAt:  formatTime(t.CreatedAt),
		UpdatedAt:  formatTime(t.UpdatedAt),
		Duration:   t.Duration,
	}, nil
}

func (r *transcriptRow) toDomain() (*domain.Transcript, error) {
	t := &domain.Transcript{
		ID:         r.ID,
		UserID:     r.UserID,
		BookmarkID: r.BookmarkID,
		FullText:   r.FullText,
		Language:   r.Language,
		Status:     domain.TranscriptStatus(r.Status),
		Duration:   r.Duration,
	}
	if err := json.Unmarshal([]byte(r.Segments), &t.Segments); err != nil {
		return nil, fmt.Errorf("unmarshal segments: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTranscript inserts a new transcript.
func (s *Store) CreateTranscript(ctx context.Context, t *domain.Transcript) error {
	row, err := toTranscriptRow(t)
	if err != nil {
		return err
	}
	return s.insert(ctx, `
		INSERT INTO transcripts (`+transcriptColumns+`)
		VALUES (:id, :user_id, :bookmark_id, :full_text, :language, :status, :segments, :duration, :created_at, :updated_at)`,
		row)
}

// GetTranscript retrieves a transcript by ID.
func (s *Store) GetTranscript(ctx context.Context, id string) (*domain.Transcript, error) {
	var row transcriptRow
	if err := s.getOne(ctx, &row, `SELECT `+transcriptColumns+` FROM transcripts WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// UpdateTranscript replaces an existing transcript.
func (s *Store) UpdateTranscript(ctx context.Context, t *domain.Transcript) error {
	row, err := toTranscriptRow(t)
	if err != nil {
		return err
	}
	return s.execOne(ctx, `
		UPDATE transcripts SET
			user_id = :user_id, bookmark_id = :bookmark_id, full_text = :full_text,
			language = :language, status = :status, segments = :segments, duration = :duration,
			created_at = :created_at, updated_at = :updated_at
		WHERE id = :id`, row)
}

// DeleteTranscript removes a transcript.
func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE id = ?`, id)
	return err
}

// GetTranscriptForBookmark returns the newest transcript attached to bookmarkID.
func (s *Store) GetTranscriptForBookmark(ctx context.Context, bookmarkID string) (*domain.Transcript, error) {
	var row transcriptRow
	err := s.getOne(ctx, &row,
		`SELECT `+transcriptColumns+` FROM transcripts WHERE bookmark_id = ? ORDER BY created_at DESC LIMIT 1`,
		bookmarkID)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}
