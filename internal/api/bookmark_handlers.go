package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/service"
)

func (s *Server) registerBookmarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBookmarks",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks",
		Summary:     "List bookmarks",
		Description: "Returns the caller's bookmarks, optionally filtered by collection or tag",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleListBookmarks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBookmark",
		Method:        http.MethodPost,
		Path:          "/api/v1/bookmarks",
		Summary:       "Create bookmark",
		Description:   "Saves a URL. A user cannot save the same URL twice.",
		Tags:          []string{"Bookmarks"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookmark",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Get bookmark",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleGetBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBookmark",
		Method:      http.MethodPatch,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Update bookmark",
		Description: "Patches bookmark fields. An empty string clears a field; tag_ids replaces the tag set.",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleUpdateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBookmark",
		Method:      http.MethodDelete,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Delete bookmark",
		Description: "Deletes a bookmark with its tag links and transcript",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleDeleteBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveBookmark",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/{id}/move",
		Summary:     "Move bookmark",
		Description: "Moves a bookmark into a collection, or out of any collection when collection_id is empty",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleMoveBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderBookmark",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/{id}/reorder",
		Summary:     "Reorder bookmark",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleReorderBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshBookmark",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/{id}/refresh",
		Summary:     "Refresh bookmark metadata",
		Description: "Re-fetches the page and updates title, description, image and favicon",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleRefreshBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookmarkTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{id}/tags",
		Summary:     "Get bookmark tags",
		Tags:        []string{"Bookmarks"},
		Security:    bearer,
	}, s.handleGetBookmarkTags)
}

// === DTOs ===

// ListBookmarksInput contains parameters for listing bookmarks.
type ListBookmarksInput struct {
	CollectionID string `query:"collection_id" doc:"Only bookmarks in this collection, in manual order"`
	TagID        string `query:"tag_id" doc:"Only bookmarks carrying this tag"`
	NoCollection bool   `query:"no_collection" doc:"Only bookmarks outside every collection"`
}

// ListBookmarksResponse contains a list of bookmarks.
type ListBookmarksResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks" doc:"Bookmarks"`
}

// ListBookmarksOutput wraps the list bookmarks response for Huma.
type ListBookmarksOutput struct {
	Body ListBookmarksResponse
}

// CreateBookmarkInput wraps the create bookmark request for Huma.
type CreateBookmarkInput struct {
	Body service.CreateBookmarkRequest
}

// BookmarkOutput wraps a bookmark for Huma.
type BookmarkOutput struct {
	Body *domain.Bookmark
}

// BookmarkIDInput identifies a bookmark.
type BookmarkIDInput struct {
	ID string `path:"id" doc:"Bookmark ID"`
}

// UpdateBookmarkInput wraps the update bookmark request for Huma.
type UpdateBookmarkInput struct {
	ID   string `path:"id" doc:"Bookmark ID"`
	Body service.UpdateBookmarkRequest
}

// MoveBookmarkRequest is the request body for moving a bookmark.
type MoveBookmarkRequest struct {
	CollectionID string `json:"collection_id,omitempty" doc:"Target collection; empty removes the bookmark from its collection"`
}

// MoveBookmarkInput wraps the move bookmark request for Huma.
type MoveBookmarkInput struct {
	ID   string `path:"id" doc:"Bookmark ID"`
	Body MoveBookmarkRequest
}

// ReorderRequest is the request body for setting a manual sort key.
type ReorderRequest struct {
	Order int `json:"order" doc:"New sort key, zero or greater"`
}

// ReorderBookmarkInput wraps the reorder request for Huma.
type ReorderBookmarkInput struct {
	ID   string `path:"id" doc:"Bookmark ID"`
	Body ReorderRequest
}

// === Handlers ===

func (s *Server) handleListBookmarks(ctx context.Context, input *ListBookmarksInput) (*ListBookmarksOutput, error) {
	bookmarks, err := s.services.Bookmark.List(ctx, service.ListBookmarksFilter{
		CollectionID: input.CollectionID,
		TagID:        input.TagID,
		NoCollection: input.NoCollection,
	})
	if err != nil {
		return nil, err
	}
	return &ListBookmarksOutput{Body: ListBookmarksResponse{Bookmarks: bookmarks}}, nil
}

func (s *Server) handleCreateBookmark(ctx context.Context, input *CreateBookmarkInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

func (s *Server) handleGetBookmark(ctx context.Context, input *BookmarkIDInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

func (s *Server) handleUpdateBookmark(ctx context.Context, input *UpdateBookmarkInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

func (s *Server) handleDeleteBookmark(ctx context.Context, input *BookmarkIDInput) (*MessageOutput, error) {
	if err := s.services.Bookmark.Remove(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Bookmark deleted"), nil
}

func (s *Server) handleMoveBookmark(ctx context.Context, input *MoveBookmarkInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.MoveToCollection(ctx, input.ID, input.Body.CollectionID)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

func (s *Server) handleReorderBookmark(ctx context.Context, input *ReorderBookmarkInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.Reorder(ctx, input.ID, input.Body.Order)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

// handleRefreshBookmark runs the metadata refresh workflow:
// processing, then completed with the fetched fields, or failed.
func (s *Server) handleRefreshBookmark(ctx context.Context, input *BookmarkIDInput) (*BookmarkOutput, error) {
	b, err := s.services.Bookmark.UpdateMetadataStatus(ctx, input.ID, domain.MetadataProcessing, nil)
	if err != nil {
		return nil, err
	}

	if s.services.Extractor == nil {
		b, err = s.services.Bookmark.UpdateMetadataStatus(ctx, b.ID, domain.MetadataFailed, nil)
		if err != nil {
			return nil, err
		}
		return &BookmarkOutput{Body: b}, nil
	}

	md, fetchErr := s.services.Extractor.Fetch(ctx, b.URL)
	if fetchErr != nil {
		s.logger.Warn("bookmark refresh failed", "bookmark_id", b.ID, "url", b.URL, "error", fetchErr)
		// The request context may be the reason the fetch failed.
		b, err = s.services.Bookmark.UpdateMetadataStatus(context.WithoutCancel(ctx), b.ID, domain.MetadataFailed, nil)
		if err != nil {
			return nil, err
		}
		return &BookmarkOutput{Body: b}, nil
	}

	b, err = s.services.Bookmark.UpdateMetadataStatus(ctx, b.ID, domain.MetadataCompleted, metadataFields(md))
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: b}, nil
}

func (s *Server) handleGetBookmarkTags(ctx context.Context, input *BookmarkIDInput) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.GetForBookmark(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: tags}}, nil
}
