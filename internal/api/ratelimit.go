package api

import (
	"net"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/auth"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
)

// rateLimitExtract is a huma operation middleware that throttles callers
// by subject, falling back to client IP for anonymous requests.
// Returns 429 RATE_LIMITED when the limit is exceeded.
func (s *Server) rateLimitExtract(ctx huma.Context, next func(huma.Context)) {
	if s.extractLimiter == nil {
		next(ctx)
		return
	}

	key := rateLimitKey(ctx)
	if !s.extractLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded",
			"key", key,
			"path", ctx.URL().Path,
		)
		_ = huma.WriteErr(s.api, ctx, domainerrors.CodeRateLimited.HTTPStatus(),
			"too many requests, please try again later")
		return
	}

	next(ctx)
}

func rateLimitKey(ctx huma.Context) string {
	if subject, ok := auth.SubjectFrom(ctx.Context()); ok {
		return "sub:" + subject
	}
	return "ip:" + clientIP(ctx.RemoteAddr())
}

// clientIP strips the port from a remote address. The address reflects
// proxy headers only when the server trusts them.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
