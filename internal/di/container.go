// Package di provides dependency injection configuration for the LinkStash server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line flags handed to the config loader.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ConfigProvider(args))
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideVerifier)

	// Metadata and transcription
	do.Provide(injector, providers.ProvideExtractor)
	do.Provide(injector, providers.ProvideTranscriber)
	do.Provide(injector, providers.ProvideExtractLimiter)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideBookmarkService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideTranscriptService)
	do.Provide(injector, providers.ProvideTodoService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// Configuration and storage errors are returned rather than panicking.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
