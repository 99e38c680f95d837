package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/logger"
	"github.com/listenupapp/linkstash/internal/service"
	"github.com/listenupapp/linkstash/internal/transcribe"
	"github.com/listenupapp/linkstash/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideBookmarkService provides the bookmark service.
func ProvideBookmarkService(i do.Injector) (*service.BookmarkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookmarkService(storeHandle.Store, v, log.Logger), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, v, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, v, log.Logger), nil
}

// ProvideTranscriptService provides the transcript service.
func ProvideTranscriptService(i do.Injector) (*service.TranscriptService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	transcriber := do.MustInvoke[transcribe.Transcriber](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTranscriptService(storeHandle.Store, transcriber, v, log.Logger), nil
}

// ProvideTodoService provides the todo service.
func ProvideTodoService(i do.Injector) (*service.TodoService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTodoService(storeHandle.Store, v, log.Logger), nil
}
