// Package badgerstore implements store.Store on an embedded Badger database.
package badgerstore

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/store"
)

// Key prefixes.
const (
	prefixBookmark    = "bm:"
	prefixCollection  = "coll:"
	prefixTag         = "tag:"
	prefixBookmarkTag = "bmtag:"
	prefixTranscript  = "tr:"
	prefixTodo        = "todo:"
)

var _ store.Store = (*Store)(nil)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	bookmarks    *Entity[domain.Bookmark]
	collections  *Entity[domain.Collection]
	tags         *Entity[domain.Tag]
	bookmarkTags *Entity[domain.BookmarkTag]
	transcripts  *Entity[domain.Transcript]
	todos        *Entity[domain.Todo]
}

// New opens a Badger database at path. An empty path opens an in-memory database.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = path != "" // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	s.initEntities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}
	return s, nil
}

func (s *Store) initEntities() {
	s.bookmarks = NewEntity[domain.Bookmark](s.db, prefixBookmark).
		WithIndex("user", func(b *domain.Bookmark) []string {
			return []string{indexValue(b.UserID)}
		}).
		WithIndex("url", func(b *domain.Bookmark) []string {
			return []string{indexValue(b.UserID, b.URL)}
		}).
		WithIndex("collection", func(b *domain.Bookmark) []string {
			return []string{indexValue(b.UserID, b.CollectionID)}
		})

	s.collections = NewEntity[domain.Collection](s.db, prefixCollection).
		WithIndex("user", func(c *domain.Collection) []string {
			return []string{indexValue(c.UserID)}
		}).
		WithIndex("parent", func(c *domain.Collection) []string {
			return []string{indexValue(c.UserID, c.ParentID)}
		})

	s.tags = NewEntity[domain.Tag](s.db, prefixTag).
		WithIndex("user", func(t *domain.Tag) []string {
			return []string{indexValue(t.UserID)}
		}).
		WithIndex("name", func(t *domain.Tag) []string {
			return []string{indexValue(t.UserID, t.Name)}
		})

	s.bookmarkTags = NewEntity[domain.BookmarkTag](s.db, prefixBookmarkTag).
		WithIndex("bookmark", func(r *domain.BookmarkTag) []string {
			return []string{indexValue(r.BookmarkID)}
		}).
		WithIndex("tag", func(r *domain.BookmarkTag) []string {
			return []string{indexValue(r.TagID)}
		})

	s.transcripts = NewEntity[domain.Transcript](s.db, prefixTranscript).
		WithIndex("bookmark", func(t *domain.Transcript) []string {
			return []string{indexValue(t.BookmarkID)}
		})

	s.todos = NewEntity[domain.Todo](s.db, prefixTodo).
		WithIndex("user", func(t *domain.Todo) []string {
			return []string{indexValue(t.UserID)}
		})
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("badger db is closed")
	}
	return nil
}

// Stats returns the number of records per entity, keyed by entity name.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	counters := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"bookmarks", s.bookmarks.Count},
		{"collections", s.collections.Count},
		{"tags", s.tags.Count},
		{"bookmark_tags", s.bookmarkTags.Count},
		{"transcripts", s.transcripts.Count},
		{"todos", s.todos.Count},
	}

	stats := make(map[string]int, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		stats[c.name] = n
	}
	return stats, nil
}

// newestFirst sorts items by creation time descending, breaking ties by id
// so listings are stable.
func newestFirst[T any](items []*T, created func(*T) time.Time, id func(*T) string) {
	slices.SortFunc(items, func(a, b *T) int {
		if c := created(b).Compare(created(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}
