package domain

import (
	"strings"
	"time"
)

// TranscriptStatus tracks the processing state of a transcript.
type TranscriptStatus string

// Transcript lifecycle states.
const (
	TranscriptPending    TranscriptStatus = "pending"
	TranscriptProcessing TranscriptStatus = "processing"
	TranscriptCompleted  TranscriptStatus = "completed"
	TranscriptFailed     TranscriptStatus = "failed"
)

// Valid reports whether s is a known transcript status.
func (s TranscriptStatus) Valid() bool {
	switch s {
	case TranscriptPending, TranscriptProcessing, TranscriptCompleted, TranscriptFailed:
		return true
	}
	return false
}

// Segment is one timestamped span of transcribed speech.
// StartTime and EndTime are seconds from the start of the video.
type Segment struct {
	Timestamp float64 `json:"timestamp"` // Seconds from start, as displayed
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Transcript holds the transcribed text of a video bookmark.
// A bookmark has at most one transcript.
type Transcript struct {
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	BookmarkID string           `json:"bookmark_id"`
	FullText   string           `json:"full_text"`
	Language   string           `json:"language,omitempty"`
	Status     TranscriptStatus `json:"status"`
	Segments   []Segment        `json:"segments"`
	Duration   float64          `json:"duration,omitempty"` // Seconds
}

// Touch updates the UpdatedAt timestamp.
func (t *Transcript) Touch() {
	t.UpdatedAt = time.Now()
}

// OwnedBy reports whether the transcript belongs to userID.
func (t *Transcript) OwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}

// MatchSegments returns the segments whose text contains query, ignoring case.
func (t *Transcript) MatchSegments(query string) []Segment {
	needle := strings.ToLower(query)
	matches := make([]Segment, 0)
	for _, seg := range t.Segments {
		if strings.Contains(strings.ToLower(seg.Text), needle) {
			matches = append(matches, seg)
		}
	}
	return matches
}
