package badgerstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/store/storetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return setupTestStore(t)
	})
}

func TestInMemoryStore(t *testing.T) {
	s, err := New("", nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.CreateTodo(context.Background(), &domain.Todo{
		ID: "todo-1", UserID: "user-1", Title: "x", Status: domain.TodoPending, CreatedAt: time.Now(),
	}))
}

func TestIndexValue_EscapesSeparators(t *testing.T) {
	// Without escaping, ("a:b", "c") and ("a", "b:c") would share an index key.
	assert.NotEqual(t, indexValue("a:b", "c"), indexValue("a", "b:c"))
	assert.Equal(t, "user-1:", indexValue("user-1", ""))
	assert.Equal(t, "u:https%3A%2F%2Fexample.com%2F%3Fq%3D1", indexValue("u", "https://example.com/?q=1"))
}

func TestURLIndex_NoPrefixCollision(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	short := &domain.Bookmark{ID: "bm-1", UserID: "user-1", URL: "https://a.example", CreatedAt: time.Now()}
	long := &domain.Bookmark{ID: "bm-2", UserID: "user-1", URL: "https://a.example/page", CreatedAt: time.Now()}
	require.NoError(t, s.CreateBookmark(ctx, short))
	require.NoError(t, s.CreateBookmark(ctx, long))

	found, err := s.FindBookmarksByURL(ctx, "user-1", "https://a.example")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "bm-1", found[0].ID)
}

func TestStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-1", UserID: "user-1", Name: "go", CreatedAt: time.Now()}))
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-2", UserID: "user-1", Name: "rust", CreatedAt: time.Now()}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["tags"])
	assert.Equal(t, 0, stats["bookmarks"])
}

func TestEntity_ContextCanceled(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetBookmark(ctx, "bm-1")
	assert.ErrorIs(t, err, context.Canceled)
}
