package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/listenupapp/linkstash/internal/auth"
	"github.com/listenupapp/linkstash/internal/http/response"
)

// authMiddleware resolves the bearer token to a subject and stores it in
// the request context. Requests without an Authorization header continue
// anonymously; services decide what anonymous callers may see.
// A header that is present but malformed or not accepted is rejected.
func authMiddleware(verifier auth.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				response.Unauthorized(w, "invalid authorization header format", logger)
				return
			}

			if verifier == nil {
				response.Unauthorized(w, "invalid or expired token", logger)
				return
			}

			subject, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				response.Unauthorized(w, "invalid or expired token", logger)
				return
			}

			ctx := auth.WithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
