// Package providers contains dependency injection providers for the LinkStash server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
)

// ConfigProvider returns a provider that loads the configuration from args,
// the environment and the .env file.
func ConfigProvider(args []string) func(do.Injector) (*config.Config, error) {
	return func(do.Injector) (*config.Config, error) {
		return config.LoadConfig(args)
	}
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
		Component:   "server",
	})

	log.Info("Starting LinkStash server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"store", cfg.Store.Driver,
	)

	return log, nil
}
