package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/service"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns the children of parent_id (root collections when empty) in manual order, or every collection with all=true",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCollection",
		Method:        http.MethodPost,
		Path:          "/api/v1/collections",
		Summary:       "Create collection",
		Tags:          []string{"Collections"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Get collection",
		Description: "Returns a collection with its bookmark count",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleGetCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCollection",
		Method:      http.MethodPatch,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Update collection",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleUpdateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCollection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Delete collection",
		Description: "Deletes a collection. Its bookmarks lose their collection and its children become root collections.",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleDeleteCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/move",
		Summary:     "Move collection",
		Description: "Re-parents a collection, or makes it a root collection when parent_id is empty",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleMoveCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/reorder",
		Summary:     "Reorder collection",
		Tags:        []string{"Collections"},
		Security:    bearer,
	}, s.handleReorderCollection)
}

// === DTOs ===

// ListCollectionsInput contains parameters for listing collections.
type ListCollectionsInput struct {
	ParentID string `query:"parent_id" doc:"Parent collection; empty lists root collections"`
	All      bool   `query:"all" doc:"Return every collection regardless of parent"`
}

// ListCollectionsResponse contains a list of collections.
type ListCollectionsResponse struct {
	Collections []*domain.Collection `json:"collections" doc:"Collections"`
}

// ListCollectionsOutput wraps the list collections response for Huma.
type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

// CreateCollectionInput wraps the create collection request for Huma.
type CreateCollectionInput struct {
	Body service.CreateCollectionRequest
}

// CollectionOutput wraps a collection for Huma.
type CollectionOutput struct {
	Body *domain.Collection
}

// CollectionWithCountOutput wraps a collection and its bookmark count for Huma.
type CollectionWithCountOutput struct {
	Body *domain.CollectionWithCount
}

// CollectionIDInput identifies a collection.
type CollectionIDInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

// UpdateCollectionInput wraps the update collection request for Huma.
type UpdateCollectionInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body service.UpdateCollectionRequest
}

// MoveCollectionRequest is the request body for re-parenting a collection.
type MoveCollectionRequest struct {
	ParentID string `json:"parent_id,omitempty" doc:"New parent; empty makes it a root collection"`
}

// MoveCollectionInput wraps the move collection request for Huma.
type MoveCollectionInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body MoveCollectionRequest
}

// ReorderCollectionInput wraps the reorder request for Huma.
type ReorderCollectionInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body ReorderRequest
}

// === Handlers ===

func (s *Server) handleListCollections(ctx context.Context, input *ListCollectionsInput) (*ListCollectionsOutput, error) {
	var (
		collections []*domain.Collection
		err         error
	)
	if input.All {
		collections, err = s.services.Collection.ListAll(ctx)
	} else {
		collections, err = s.services.Collection.List(ctx, input.ParentID)
	}
	if err != nil {
		return nil, err
	}
	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: collections}}, nil
}

func (s *Server) handleCreateCollection(ctx context.Context, input *CreateCollectionInput) (*CollectionOutput, error) {
	c, err := s.services.Collection.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CollectionOutput{Body: c}, nil
}

func (s *Server) handleGetCollection(ctx context.Context, input *CollectionIDInput) (*CollectionWithCountOutput, error) {
	c, err := s.services.Collection.GetWithCount(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CollectionWithCountOutput{Body: c}, nil
}

func (s *Server) handleUpdateCollection(ctx context.Context, input *UpdateCollectionInput) (*CollectionOutput, error) {
	c, err := s.services.Collection.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CollectionOutput{Body: c}, nil
}

func (s *Server) handleDeleteCollection(ctx context.Context, input *CollectionIDInput) (*MessageOutput, error) {
	if err := s.services.Collection.Remove(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Collection deleted"), nil
}

func (s *Server) handleMoveCollection(ctx context.Context, input *MoveCollectionInput) (*CollectionOutput, error) {
	c, err := s.services.Collection.MoveToParent(ctx, input.ID, input.Body.ParentID)
	if err != nil {
		return nil, err
	}
	return &CollectionOutput{Body: c}, nil
}

func (s *Server) handleReorderCollection(ctx context.Context, input *ReorderCollectionInput) (*CollectionOutput, error) {
	c, err := s.services.Collection.Reorder(ctx, input.ID, input.Body.Order)
	if err != nil {
		return nil, err
	}
	return &CollectionOutput{Body: c}, nil
}
