package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/auth"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/metadata"
)

func (s *Server) registerExtractRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "extractMetadata",
		Method:      http.MethodPost,
		Path:        "/api/v1/extract",
		Summary:     "Extract page metadata",
		Description: "Fetches a URL and returns its title, description, image and favicon. Fetch failures yield a degraded result derived from the URL.",
		Tags:        []string{"Extract"},
		Security:    bearer,
		Middlewares: huma.Middlewares{s.rateLimitExtract},
	}, s.handleExtract)
}

// ExtractRequest is the request body for metadata extraction.
type ExtractRequest struct {
	URL string `json:"url" doc:"Page URL; https:// is assumed when no scheme is given"`
}

// ExtractInput wraps the extract request for Huma.
type ExtractInput struct {
	Body ExtractRequest
}

// ExtractOutput wraps the extracted metadata for Huma.
type ExtractOutput struct {
	Body *metadata.Metadata
}

func (s *Server) handleExtract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if _, ok := auth.SubjectFrom(ctx); !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}

	raw := strings.TrimSpace(input.Body.URL)
	if raw == "" {
		return nil, domainerrors.ValidationWithDetails("url is required", map[string]string{"url": "is required"})
	}
	u, err := url.Parse(metadata.NormalizeURL(raw))
	if err != nil || u.Host == "" {
		return nil, domainerrors.ValidationWithDetails("url is not valid", map[string]string{"url": "must be a valid URL"})
	}

	if s.services.Extractor == nil {
		return &ExtractOutput{Body: metadata.Degraded(raw)}, nil
	}
	return &ExtractOutput{Body: s.services.Extractor.Extract(ctx, raw)}, nil
}
