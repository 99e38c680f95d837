package metadata

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/linkstash/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExtractor() *Extractor {
	return New(Config{Timeout: 2 * time.Second, AllowPrivate: true}, testLogger())
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_OpenGraphWinsOverTwitter(t *testing.T) {
	srv := serveHTML(t, `<html><head>
		<meta name="twitter:title" content="Twitter Title">
		<meta property="og:title" content="OG Title">
		<meta name="twitter:description" content="Twitter description">
		<meta property="og:description" content="OG description">
		<meta name="twitter:image" content="/twitter.png">
		<meta property="og:image" content="/og.png">
		<title>Document Title</title>
	</head><body></body></html>`)

	md := newTestExtractor().Extract(context.Background(), srv.URL+"/article")

	assert.Equal(t, srv.URL+"/article", md.URL)
	assert.Equal(t, "OG Title", md.Title)
	assert.Equal(t, "OG description", md.Description)
	assert.Equal(t, srv.URL+"/og.png", md.ImageURL)
	assert.Equal(t, srv.URL+"/favicon.ico", md.FaviconURL)
	assert.False(t, md.IsVideo)
}

func TestExtract_FallbackChain(t *testing.T) {
	srv := serveHTML(t, `<html><head>
		<title>  Plain Title  </title>
		<meta name="description" content="Plain description">
		<link rel="shortcut icon" href="/static/icon.png">
	</head></html>`)

	md := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.Equal(t, "Plain Title", md.Title)
	assert.Equal(t, "Plain description", md.Description)
	assert.Empty(t, md.ImageURL)
	assert.Equal(t, srv.URL+"/static/icon.png", md.FaviconURL)
}

func TestExtract_HostnameFallback(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>no head at all</p></body></html>`)

	md := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.Equal(t, "127.0.0.1", md.Title)
	assert.Empty(t, md.Description)
	assert.Empty(t, md.ImageURL)
}

func TestExtract_NonSuccessStatusDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<html><head><meta property="og:title" content="Not Found Page"></head></html>`)
	}))
	defer srv.Close()

	md := newTestExtractor().Extract(context.Background(), srv.URL+"/missing")

	assert.Equal(t, srv.URL+"/missing", md.URL)
	assert.Equal(t, "127.0.0.1", md.Title)
	assert.Empty(t, md.Description)
	assert.Empty(t, md.ImageURL)
	assert.Equal(t, srv.URL+"/favicon.ico", md.FaviconURL)
}

func TestExtract_RedirectToErrorDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/gone", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	md := newTestExtractor().Extract(context.Background(), srv.URL+"/old")

	assert.Equal(t, "127.0.0.1", md.Title)
	assert.Empty(t, md.Description)
}

func TestExtract_RedirectResolvesAgainstFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts/1/", http.StatusFound)
	})
	mux.HandleFunc("/posts/1/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<meta property="og:image" content="cover.jpg">`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	md := newTestExtractor().Extract(context.Background(), srv.URL+"/start")

	assert.Equal(t, srv.URL+"/posts/1/cover.jpg", md.ImageURL)
}

func TestExtract_DecodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<title>Caf\xe9</title>"))
	}))
	defer srv.Close()

	md := newTestExtractor().Extract(context.Background(), srv.URL)

	assert.Equal(t, "Café", md.Title)
}

func TestExtract_DecodesEntitiesOnce(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"meta content", `<meta property="og:title" content="Tom &amp;amp; Jerry &amp;quot;Live&amp;quot;">`, `Tom &amp; Jerry &quot;Live&quot;`},
		{"title text", `<title>Escaping &amp;lt;div&amp;gt; and &amp;amp; in HTML</title>`, `Escaping &lt;div&gt; and &amp; in HTML`},
		{"single encoding", `<title>Tom &amp; Jerry &#39;s &lt;b&gt;</title>`, `Tom & Jerry 's <b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveHTML(t, tt.html)

			md := newTestExtractor().Extract(context.Background(), srv.URL)

			assert.Equal(t, tt.want, md.Title)
		})
	}
}

func TestExtract_ClassifiesVideo(t *testing.T) {
	md := Degraded("https://www.youtube.com/watch?v=abc")
	assert.True(t, md.IsVideo)
	assert.Equal(t, domain.VideoTypeYouTube, md.VideoType)
}

func TestExtract_GuardRefusesLoopback(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		_, _ = io.WriteString(w, `<title>internal</title>`)
	}))
	defer srv.Close()

	ex := New(Config{Timeout: 2 * time.Second}, testLogger())
	md := ex.Extract(context.Background(), srv.URL)

	assert.False(t, hit)
	assert.Equal(t, "127.0.0.1", md.Title)
}

func TestExtract_CanceledContextDegrades(t *testing.T) {
	srv := serveHTML(t, `<title>never</title>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	md := newTestExtractor().Extract(ctx, srv.URL)
	assert.Equal(t, "127.0.0.1", md.Title)
}

func TestExtract_PaddedURLDegradesToHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	raw := "  " + srv.URL + "/x "
	md := newTestExtractor().Extract(context.Background(), raw)

	assert.Equal(t, raw, md.URL)
	assert.Equal(t, "127.0.0.1", md.Title)
	assert.Equal(t, srv.URL+"/favicon.ico", md.FaviconURL)
}

func TestDegraded(t *testing.T) {
	tests := []struct {
		raw         string
		wantTitle   string
		wantFavicon string
	}{
		{"https://www.example.com/a?b=c", "example.com", "https://www.example.com/favicon.ico"},
		{"http://blog.example.org", "blog.example.org", "http://blog.example.org/favicon.ico"},
		{"www.example.com/page", "example.com", "https://www.example.com/favicon.ico"},
		{"  https://www.example.com/page  ", "example.com", "https://www.example.com/favicon.ico"},
		{" www.example.com/page\t", "example.com", "https://www.example.com/favicon.ico"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			md := Degraded(tt.raw)
			assert.Equal(t, tt.raw, md.URL)
			assert.Equal(t, tt.wantTitle, md.Title)
			assert.Equal(t, tt.wantFavicon, md.FaviconURL)
			assert.Empty(t, md.Description)
			assert.Empty(t, md.ImageURL)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"example.com":              "https://example.com",
		"  example.com/path  ":     "https://example.com/path",
		"http://example.com":       "http://example.com",
		"HTTPS://Example.com":      "HTTPS://Example.com",
		"https://example.com/?q=1": "https://example.com/?q=1",
		"ftp.example.com/file.txt": "https://ftp.example.com/file.txt",
	}

	for in, want := range tests {
		got := NormalizeURL(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, NormalizeURL(got), "normalization is idempotent")
		assert.Equal(t, 1, strings.Count(strings.ToLower(got), "://"))
	}
}

func TestPublicAddr(t *testing.T) {
	blocked := []string{
		"127.0.0.1", "10.1.2.3", "172.16.0.1", "192.168.1.1", "169.254.169.254",
		"0.0.0.0", "100.64.0.1", "224.0.0.1", "::1", "fe80::1", "fc00::1", "::ffff:127.0.0.1",
	}
	for _, s := range blocked {
		assert.ErrorIs(t, guardControl("tcp", net.JoinHostPort(s, "80"), nil), ErrForbiddenAddress, s)
	}

	require.NoError(t, guardControl("tcp", "93.184.216.34:443", nil))
	require.NoError(t, guardControl("tcp", "[2606:2800:220:1::1]:443", nil))
}
