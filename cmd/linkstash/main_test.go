package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/linkstash/internal/metadata"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalFlags = storeFlags{}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// dataArgs points the offline commands at a fresh data directory.
func dataArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{"--data-path", dir, "--env-file", filepath.Join(dir, "missing.env")}
}

func TestExtract_JSONKeepsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><head><title>page %s</title></head></html>`, strings.TrimPrefix(r.URL.Path, "/"))
	}))
	defer srv.Close()

	out, err := execute(t, "extract", "--allow-private", "-o", "json", "-c", "2",
		srv.URL+"/one", srv.URL+"/two", srv.URL+"/three")
	require.NoError(t, err)

	var results []metadata.Metadata
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "page one", results[0].Title)
	assert.Equal(t, "page two", results[1].Title)
	assert.Equal(t, "page three", results[2].Title)
}

func TestExtract_YAMLDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := execute(t, "extract", "--allow-private", srv.URL)
	require.NoError(t, err)

	var results []metadata.Metadata
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "127.0.0.1", results[0].Title)
}

func TestExtract_UnknownFormat(t *testing.T) {
	_, err := execute(t, "extract", "-o", "xml", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestToken_IsStableForDataPath(t *testing.T) {
	args := dataArgs(t)

	first, err := execute(t, append(args, "token", "alice")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "v4.local."))

	// The key is generated once and reused.
	key, err := os.ReadFile(filepath.Join(args[1], "auth.key"))
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(string(key)), 64)

	_, err = execute(t, append(args, "token", "alice")...)
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(args[1], "auth.key"))
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestSeedThenInspect(t *testing.T) {
	args := dataArgs(t)

	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
user: alice
collections:
  - name: Go
    children:
      - name: Concurrency
bookmarks:
  - url: https://go.dev/blog
    collection: Concurrency
    tags: [reading, go]
  - url: https://go.dev/blog
    tags: [reading]
  - url: https://pkg.go.dev
todos:
  - title: Write the post
`), 0o600))

	out, err := execute(t, append(args, "seed", seedPath)...)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded alice: 2 collections, 2 tags, 2 bookmarks (1 already present), 1 todos")

	out, err = execute(t, append(args, "inspect", "-o", "json")...)
	require.NoError(t, err)

	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "badger", report.Driver)
	assert.Equal(t, 2, report.Counts["bookmarks"])
	assert.Equal(t, 2, report.Counts["collections"])
	assert.Equal(t, 2, report.Counts["tags"])
	assert.Equal(t, 2, report.Counts["bookmark_tags"])
	assert.Equal(t, 1, report.Counts["todos"])
}

func TestSeed_RequiresUser(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte("todos:\n  - title: x\n"), 0o600))

	_, err := execute(t, append(dataArgs(t), "seed", seedPath)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user given")
}

func TestDecodeSeed_RejectsUnknownFields(t *testing.T) {
	_, err := decodeSeed(strings.NewReader("user: alice\nbookmark: []\n"))
	assert.Error(t, err)
}
