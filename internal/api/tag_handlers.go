package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags for the current user",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag. Names are unique per user.",
		Tags:          []string{"Tags"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "findOrCreateTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags/find-or-create",
		Summary:     "Find or create tag",
		Description: "Returns the tag with this name, creating it when missing",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleFindOrCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag with the number of bookmarks carrying it",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Updates a tag",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and removes it from every bookmark",
		Tags:        []string{"Tags"},
		Security:    bearer,
	}, s.handleDeleteTag)
}

// === DTOs ===

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []*domain.Tag `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body service.CreateTagRequest
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body *domain.Tag
}

// TagWithCountOutput wraps a tag and its bookmark count for Huma.
type TagWithCountOutput struct {
	Body *domain.TagWithCount
}

// FindOrCreateTagRequest is the request body for find-or-create.
type FindOrCreateTagRequest struct {
	Name  string `json:"name" doc:"Tag name"`
	Color string `json:"color,omitempty" doc:"Hex color used only when the tag is created"`
}

// FindOrCreateTagInput wraps the find-or-create request for Huma.
type FindOrCreateTagInput struct {
	Body FindOrCreateTagRequest
}

// FindOrCreateTagResponse reports the tag and whether it was just created.
type FindOrCreateTagResponse struct {
	Tag     *domain.Tag `json:"tag" doc:"The tag"`
	Created bool        `json:"created" doc:"True when the tag did not exist before"`
}

// FindOrCreateTagOutput wraps the find-or-create response for Huma.
type FindOrCreateTagOutput struct {
	Body FindOrCreateTagResponse
}

// TagIDInput identifies a tag.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body service.UpdateTagRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: tags}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: t}, nil
}

func (s *Server) handleFindOrCreateTag(ctx context.Context, input *FindOrCreateTagInput) (*FindOrCreateTagOutput, error) {
	t, created, err := s.services.Tag.FindOrCreate(ctx, service.CreateTagRequest{Name: input.Body.Name, Color: input.Body.Color})
	if err != nil {
		return nil, err
	}
	return &FindOrCreateTagOutput{Body: FindOrCreateTagResponse{Tag: t, Created: created}}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagWithCountOutput, error) {
	t, err := s.services.Tag.GetWithCount(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagWithCountOutput{Body: t}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: t}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*MessageOutput, error) {
	if err := s.services.Tag.Remove(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Tag deleted"), nil
}
