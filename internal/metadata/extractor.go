// Package metadata fetches web pages and recovers bookmark metadata from them.
//
// Extract never fails: any fetch or parse problem yields a degraded result
// built from the URL alone, logged at warn level.
package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/metadata/video"
)

const (
	// DefaultTimeout bounds one extraction, redirects included.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the fetcher to remote sites.
	DefaultUserAgent = "Mozilla/5.0 (compatible; LinkStash/1.0; +https://github.com/listenupapp/linkstash)"

	// maxBodyBytes caps how much of a document is read.
	maxBodyBytes = 5 << 20
)

// Metadata is what the extractor recovered for a URL.
type Metadata struct {
	URL         string           `json:"url" yaml:"url"`
	Title       string           `json:"title,omitempty" yaml:"title,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	FaviconURL  string           `json:"favicon_url,omitempty" yaml:"favicon_url,omitempty"`
	VideoType   domain.VideoType `json:"video_type,omitempty" yaml:"video_type,omitempty"`
	IsVideo     bool             `json:"is_video" yaml:"is_video"`
}

// Config configures an Extractor.
type Config struct {
	UserAgent string
	Timeout   time.Duration

	// AllowPrivate disables the private-address guard. Local testing only.
	AllowPrivate bool
}

// Extractor fetches pages and parses their metadata.
type Extractor struct {
	client    *http.Client
	logger    *slog.Logger
	userAgent string
}

// New creates an Extractor. Zero config values select the defaults.
func New(cfg Config, logger *slog.Logger) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	if !cfg.AllowPrivate {
		dialer.Control = guardControl
	}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if cfg.AllowPrivate {
		// Proxied dials bypass the guard, so proxies are honored only here.
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &Extractor{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger:    logger,
		userAgent: cfg.UserAgent,
	}
}

// Extract normalizes rawURL, fetches it and parses its metadata.
// On any failure it returns Degraded(rawURL).
func (e *Extractor) Extract(ctx context.Context, rawURL string) *Metadata {
	md, err := e.Fetch(ctx, rawURL)
	if err != nil {
		e.logger.Warn("metadata extraction degraded",
			"url", rawURL,
			"error", err,
		)
		return Degraded(rawURL)
	}
	return md
}

// Fetch is Extract without the fallback. It reports why extraction failed.
func (e *Extractor) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	return e.extract(ctx, NormalizeURL(rawURL))
}

func (e *Extractor) extract(ctx context.Context, normalized string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			e.logger.Debug("close response body", "url", normalized, "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := parsePage(doc, resp.Request.URL)

	videoType, isVideo := video.Classify(normalized)
	md := &Metadata{
		URL:         normalized,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		FaviconURL:  p.FaviconURL,
		IsVideo:     isVideo,
		VideoType:   videoType,
	}
	if md.Title == "" {
		md.Title = HostTitle(normalized)
	}
	if md.FaviconURL == "" {
		md.FaviconURL = DefaultFavicon(normalized)
	}

	e.logger.Debug("metadata extracted",
		"url", normalized,
		"final_url", resp.Request.URL.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return md, nil
}

// Degraded builds the fallback result for rawURL without any network
// access. Host-derived fields come from the trimmed rawURL, or from its
// normalized form when it has no scheme. URL keeps rawURL as given.
func Degraded(rawURL string) *Metadata {
	source := strings.TrimSpace(rawURL)
	if DefaultFavicon(source) == "" {
		source = NormalizeURL(source)
	}

	videoType, isVideo := video.Classify(rawURL)
	return &Metadata{
		URL:        rawURL,
		Title:      HostTitle(source),
		FaviconURL: DefaultFavicon(source),
		IsVideo:    isVideo,
		VideoType:  videoType,
	}
}
