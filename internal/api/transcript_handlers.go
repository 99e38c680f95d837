package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/service"
)

func (s *Server) registerTranscriptRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createTranscript",
		Method:        http.MethodPost,
		Path:          "/api/v1/transcripts",
		Summary:       "Create transcript",
		Description:   "Attaches a finished transcript to a bookmark. A bookmark holds at most one.",
		Tags:          []string{"Transcripts"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTranscript",
		Method:      http.MethodGet,
		Path:        "/api/v1/transcripts/{id}",
		Summary:     "Get transcript",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleGetTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTranscript",
		Method:      http.MethodPatch,
		Path:        "/api/v1/transcripts/{id}",
		Summary:     "Update transcript",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleUpdateTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTranscriptStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/transcripts/{id}/status",
		Summary:     "Update transcript status",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleUpdateTranscriptStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTranscript",
		Method:      http.MethodDelete,
		Path:        "/api/v1/transcripts/{id}",
		Summary:     "Delete transcript",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleDeleteTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookmarkTranscript",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{id}/transcript",
		Summary:     "Get bookmark transcript",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleGetBookmarkTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID:   "generateBookmarkTranscript",
		Method:        http.MethodPost,
		Path:          "/api/v1/bookmarks/{id}/transcript/generate",
		Summary:       "Generate transcript",
		Description:   "Transcribes a video bookmark through the configured transcription service",
		Tags:          []string{"Transcripts"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleGenerateTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBookmarkTranscript",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{id}/transcript/search",
		Summary:     "Search transcript",
		Description: "Returns the transcript segments containing q, ignoring case",
		Tags:        []string{"Transcripts"},
		Security:    bearer,
	}, s.handleSearchTranscript)
}

// === DTOs ===

// CreateTranscriptInput wraps the create transcript request for Huma.
type CreateTranscriptInput struct {
	Body service.CreateTranscriptRequest
}

// TranscriptOutput wraps a transcript for Huma.
type TranscriptOutput struct {
	Body *domain.Transcript
}

// TranscriptIDInput identifies a transcript.
type TranscriptIDInput struct {
	ID string `path:"id" doc:"Transcript ID"`
}

// UpdateTranscriptInput wraps the update transcript request for Huma.
type UpdateTranscriptInput struct {
	ID   string `path:"id" doc:"Transcript ID"`
	Body service.UpdateTranscriptRequest
}

// TranscriptStatusRequest is the request body for a status change.
type TranscriptStatusRequest struct {
	Status domain.TranscriptStatus `json:"status" enum:"pending,processing,completed,failed" doc:"New status"`
}

// UpdateTranscriptStatusInput wraps the status request for Huma.
type UpdateTranscriptStatusInput struct {
	ID   string `path:"id" doc:"Transcript ID"`
	Body TranscriptStatusRequest
}

// SearchTranscriptInput contains parameters for a transcript search.
type SearchTranscriptInput struct {
	ID    string `path:"id" doc:"Bookmark ID"`
	Query string `query:"q" doc:"Text to find"`
}

// SearchTranscriptResponse lists matching segments.
type SearchTranscriptResponse struct {
	Segments []domain.Segment `json:"segments" doc:"Matching segments in transcript order"`
}

// SearchTranscriptOutput wraps the search response for Huma.
type SearchTranscriptOutput struct {
	Body SearchTranscriptResponse
}

// === Handlers ===

func (s *Server) handleCreateTranscript(ctx context.Context, input *CreateTranscriptInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleGetTranscript(ctx context.Context, input *TranscriptIDInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleUpdateTranscript(ctx context.Context, input *UpdateTranscriptInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleUpdateTranscriptStatus(ctx context.Context, input *UpdateTranscriptStatusInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleDeleteTranscript(ctx context.Context, input *TranscriptIDInput) (*MessageOutput, error) {
	if err := s.services.Transcript.Remove(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Transcript deleted"), nil
}

func (s *Server) handleGetBookmarkTranscript(ctx context.Context, input *BookmarkIDInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.GetForBookmark(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleGenerateTranscript(ctx context.Context, input *BookmarkIDInput) (*TranscriptOutput, error) {
	t, err := s.services.Transcript.Generate(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TranscriptOutput{Body: t}, nil
}

func (s *Server) handleSearchTranscript(ctx context.Context, input *SearchTranscriptInput) (*SearchTranscriptOutput, error) {
	segments, err := s.services.Transcript.Search(ctx, input.ID, input.Query)
	if err != nil {
		return nil, err
	}
	return &SearchTranscriptOutput{Body: SearchTranscriptResponse{Segments: segments}}, nil
}
