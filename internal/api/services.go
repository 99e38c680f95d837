package api

import (
	"github.com/listenupapp/linkstash/internal/metadata"
	"github.com/listenupapp/linkstash/internal/service"
)

// Services groups the business logic used by the API server.
type Services struct {
	Bookmark   *service.BookmarkService
	Collection *service.CollectionService
	Tag        *service.TagService
	Transcript *service.TranscriptService
	Todo       *service.TodoService
	Extractor  *metadata.Extractor // Page metadata for /extract and bookmark refresh
}
