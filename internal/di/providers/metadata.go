package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
	"github.com/listenupapp/linkstash/internal/metadata"
	"github.com/listenupapp/linkstash/internal/ratelimit"
	"github.com/listenupapp/linkstash/internal/transcribe"
)

// ProvideExtractor provides the page metadata extractor.
func ProvideExtractor(i do.Injector) (*metadata.Extractor, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Extract.AllowPrivate {
		log.Warn("Metadata extraction may fetch private addresses")
	}

	return metadata.New(metadata.Config{
		UserAgent:    cfg.Extract.UserAgent,
		Timeout:      cfg.Extract.Timeout,
		AllowPrivate: cfg.Extract.AllowPrivate,
	}, log.Logger), nil
}

// ProvideTranscriber provides the transcription client. Without an endpoint
// every request fails as unavailable.
func ProvideTranscriber(i do.Injector) (transcribe.Transcriber, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Transcribe.Endpoint == "" {
		log.Info("Transcription service not configured")
		return transcribe.Unavailable{}, nil
	}

	log.Info("Transcription service configured", "endpoint", cfg.Transcribe.Endpoint)
	return transcribe.NewHTTPTranscriber(cfg.Transcribe.Endpoint, cfg.Transcribe.Timeout, log.Logger), nil
}

// ExtractLimiterHandle wraps the extract rate limiter so its sweeper stops on shutdown.
type ExtractLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.ShutdownerWithError.
func (h *ExtractLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideExtractLimiter provides the per-client limiter for POST /extract.
func ProvideExtractLimiter(i do.Injector) (*ExtractLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &ExtractLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.Extract.RateLimit, cfg.Extract.Burst),
	}, nil
}
