package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/api"
	"github.com/listenupapp/linkstash/internal/auth"
	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
	"github.com/listenupapp/linkstash/internal/metadata"
	"github.com/listenupapp/linkstash/internal/service"
)

// shutdownTimeout bounds how long in-flight requests may drain on shutdown.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	listener net.Listener
	errc     chan error
}

// ListenAddr is the address the server is bound to.
func (h *HTTPServerHandle) ListenAddr() net.Addr {
	return h.listener.Addr()
}

// Err delivers the error that stopped the server when it stops serving
// for any reason other than Shutdown.
func (h *HTTPServerHandle) Err() <-chan error {
	return h.errc
}

// Shutdown implements do.ShutdownerWithError.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideAPIServer provides the HTTP handler for the REST API.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	verifier := do.MustInvoke[auth.Verifier](i)
	limiter := do.MustInvoke[*ExtractLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Bookmark:   do.MustInvoke[*service.BookmarkService](i),
		Collection: do.MustInvoke[*service.CollectionService](i),
		Tag:        do.MustInvoke[*service.TagService](i),
		Transcript: do.MustInvoke[*service.TranscriptService](i),
		Todo:       do.MustInvoke[*service.TodoService](i),
		Extractor:  do.MustInvoke[*metadata.Extractor](i),
	}

	return api.NewServer(storeHandle.Store, services, api.Options{
		Verifier:          verifier,
		ExtractLimiter:    limiter.KeyedRateLimiter,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		TrustProxyHeaders: cfg.Server.TrustProxy,
	}, log.Logger), nil
}

// ProvideHTTPServer binds the listen address and serves in the background.
// A bind failure is returned; later serve failures arrive on Err.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	h := &HTTPServerHandle{Server: srv, listener: ln, errc: make(chan error, 1)}

	go func() {
		log.Info("HTTP server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
			h.errc <- err
		}
	}()

	return h, nil
}
