package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/store/badgerstore"
	"github.com/listenupapp/linkstash/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.ShutdownerWithError.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// HealthCheck implements do.HealthcheckerWithContext.
func (h *StoreHandle) HealthCheck(ctx context.Context) error {
	return h.Ping(ctx)
}

// ProvideStore opens the configured storage backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := OpenStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", cfg.Store.Driver, "dsn", cfg.Store.DSN)

	return &StoreHandle{Store: st}, nil
}

// OpenStore opens the backend named by cfg.Driver.
func OpenStore(cfg config.StoreConfig, log *logger.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN, log.Logger)
	case config.DriverBadger, "":
		return badgerstore.New(cfg.DSN, log.Logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
