package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newPretty(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}, false))
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			New(Config{Environment: tt.environment, Level: slog.LevelInfo, Writer: &buf}).Info("bookmark created")

			out := buf.String()
			assert.Contains(t, out, "bookmark created")
			assert.Equal(t, tt.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}

func TestNew_ExplicitFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Environment: "development", Format: formatJSON, Writer: &buf}).Info("extract", "url", "https://example.com")

	assert.Contains(t, buf.String(), `"url":"https://example.com"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newPretty(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WRN")
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	newPretty(&buf, slog.LevelInfo).
		With("user_id", "user-1").
		Info("tag deleted", "tag_id", "tag-9", "bookmarks", 3, "name", "machine learning")

	out := buf.String()
	assert.Contains(t, out, "user_id=user-1")
	assert.Contains(t, out, "tag_id=tag-9")
	assert.Contains(t, out, "bookmarks=3")
	assert.Contains(t, out, `name="machine learning"`)
	assert.True(t, strings.Index(out, "user_id=") < strings.Index(out, "tag_id="))
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, nil, false)
	assert.Equal(t, handler, handler.WithGroup(""))

	slog.New(handler).WithGroup("http").With("method", "GET").Info("request", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "http.method=GET")
	assert.Contains(t, out, "http.status=200")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}, false)).Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatValue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, `"two words"`, formatValue(slog.StringValue("two words")))
	assert.Equal(t, `""`, formatValue(slog.StringValue("")))
	assert.Equal(t, "2025-03-01T12:00:00Z", formatValue(slog.TimeValue(now)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: formatJSON, Writer: &buf, Level: slog.LevelDebug, Component: "server"})

	log.WithError(errors.New("dial refused")).Warn("extraction degraded", "url", "https://example.com")
	out := buf.String()
	assert.Contains(t, out, `"error":"dial refused"`)
	assert.Contains(t, out, `"url":"https://example.com"`)
	assert.Contains(t, out, `"component":"server"`)

	assert.Same(t, log, log.WithError(nil))
}

func TestPrettyHandler_FlattensGroupValues(t *testing.T) {
	var buf bytes.Buffer
	newPretty(&buf, slog.LevelInfo).Info("fetched",
		slog.Group("resp", slog.Int("status", 200), slog.Group("timing", slog.Int64("ms", 12))),
	)

	out := buf.String()
	assert.Contains(t, out, "resp.status=200")
	assert.Contains(t, out, "resp.timing.ms=12")
}

func TestPrettyHandler_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	slog.New(NewPrettyHandler(&plain, nil, false)).Info("saved", "id", "bm_1")
	slog.New(NewPrettyHandler(&colored, nil, true)).Info("saved", "id", "bm_1")

	assert.NotContains(t, plain.String(), "\033[")
	assert.Contains(t, plain.String(), "INF saved id=bm_1")
	assert.Contains(t, colored.String(), ansiGreen+"INF"+ansiReset)
}

func TestNew_NoColor(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Environment: "development", Writer: &buf, NoColor: true, Component: "cli"}).Info("seeded")

	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "component=cli")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing happens")
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
}
