// Package storetest holds the behavioral suite every store.Store backend must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/store"
)

// Factory returns a fresh, empty store. The factory owns cleanup.
type Factory func(t *testing.T) store.Store

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Bookmarks", func(t *testing.T) { testBookmarks(t, newStore(t)) })
	t.Run("BookmarkListings", func(t *testing.T) { testBookmarkListings(t, newStore(t)) })
	t.Run("Collections", func(t *testing.T) { testCollections(t, newStore(t)) })
	t.Run("Tags", func(t *testing.T) { testTags(t, newStore(t)) })
	t.Run("BookmarkTags", func(t *testing.T) { testBookmarkTags(t, newStore(t)) })
	t.Run("Transcripts", func(t *testing.T) { testTranscripts(t, newStore(t)) })
	t.Run("Todos", func(t *testing.T) { testTodos(t, newStore(t)) })
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func bookmark(id, userID, url, collectionID string, created time.Time) *domain.Bookmark {
	return &domain.Bookmark{
		ID:             id,
		UserID:         userID,
		URL:            url,
		CollectionID:   collectionID,
		MetadataStatus: domain.MetadataPending,
		TagIDs:         []string{},
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func ids[T any](items []*T, id func(*T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func bookmarkIDs(items []*domain.Bookmark) []string {
	return ids(items, func(b *domain.Bookmark) string { return b.ID })
}

func testBookmarks(t *testing.T, s store.Store) {
	ctx := context.Background()

	b := bookmark("bm-1", "user-1", "https://example.com/a", "", at(0))
	b.Title = "Example"
	b.TagIDs = []string{"tag-1"}
	b.IsVideo = true
	b.VideoType = domain.VideoTypeYouTube
	b.Order = 3
	require.NoError(t, s.CreateBookmark(ctx, b))

	err := s.CreateBookmark(ctx, b)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.GetBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Equal(t, "Example", got.Title)
	assert.Equal(t, []string{"tag-1"}, got.TagIDs)
	assert.True(t, got.IsVideo)
	assert.Equal(t, domain.VideoTypeYouTube, got.VideoType)
	assert.Equal(t, 3, got.Order)
	assert.True(t, got.CreatedAt.Equal(b.CreatedAt))
	assert.Empty(t, got.CollectionID)

	got.Title = "Renamed"
	got.CollectionID = "coll-1"
	require.NoError(t, s.UpdateBookmark(ctx, got))

	got, err = s.GetBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "coll-1", got.CollectionID)

	missing := bookmark("bm-missing", "user-1", "https://example.com/x", "", at(1))
	assert.ErrorIs(t, s.UpdateBookmark(ctx, missing), store.ErrNotFound)

	require.NoError(t, s.DeleteBookmark(ctx, "bm-1"))
	require.NoError(t, s.DeleteBookmark(ctx, "bm-1"))

	_, err = s.GetBookmark(ctx, "bm-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testBookmarkListings(t *testing.T, s store.Store) {
	ctx := context.Background()

	fixtures := []*domain.Bookmark{
		bookmark("bm-1", "user-1", "https://a.example", "", at(0)),
		bookmark("bm-2", "user-1", "https://b.example", "coll-1", at(1)),
		bookmark("bm-3", "user-1", "https://c.example", "coll-1", at(2)),
		bookmark("bm-4", "user-2", "https://a.example", "", at(3)),
		bookmark("bm-5", "user-1", "https://a.example", "", at(4)),
	}
	for _, b := range fixtures {
		require.NoError(t, s.CreateBookmark(ctx, b))
	}

	all, err := s.ListBookmarks(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-5", "bm-3", "bm-2", "bm-1"}, bookmarkIDs(all))

	none, err := s.ListBookmarks(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, none)

	inColl, err := s.ListBookmarksInCollection(ctx, "user-1", "coll-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-3", "bm-2"}, bookmarkIDs(inColl))

	unfiled, err := s.ListBookmarksInCollection(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-5", "bm-1"}, bookmarkIDs(unfiled))

	byURL, err := s.FindBookmarksByURL(ctx, "user-1", "https://a.example")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bm-1", "bm-5"}, bookmarkIDs(byURL))

	byURL, err = s.FindBookmarksByURL(ctx, "user-2", "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-4"}, bookmarkIDs(byURL))

	// Moving a bookmark must move it between collection listings.
	moved, err := s.GetBookmark(ctx, "bm-1")
	require.NoError(t, err)
	moved.CollectionID = "coll-1"
	require.NoError(t, s.UpdateBookmark(ctx, moved))

	inColl, err = s.ListBookmarksInCollection(ctx, "user-1", "coll-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-3", "bm-2", "bm-1"}, bookmarkIDs(inColl))

	unfiled, err = s.ListBookmarksInCollection(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-5"}, bookmarkIDs(unfiled))
}

func testCollections(t *testing.T, s store.Store) {
	ctx := context.Background()

	mk := func(id, userID, parentID string, minute int) *domain.Collection {
		return &domain.Collection{
			ID:        id,
			UserID:    userID,
			Name:      id,
			ParentID:  parentID,
			CreatedAt: at(minute),
			UpdatedAt: at(minute),
		}
	}
	for _, c := range []*domain.Collection{
		mk("coll-1", "user-1", "", 0),
		mk("coll-2", "user-1", "coll-1", 1),
		mk("coll-3", "user-1", "coll-1", 2),
		mk("coll-4", "user-2", "", 3),
	} {
		require.NoError(t, s.CreateCollection(ctx, c))
	}

	collIDs := func(items []*domain.Collection) []string {
		return ids(items, func(c *domain.Collection) string { return c.ID })
	}

	all, err := s.ListCollections(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"coll-3", "coll-2", "coll-1"}, collIDs(all))

	roots, err := s.ListChildCollections(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"coll-1"}, collIDs(roots))

	children, err := s.ListChildCollections(ctx, "user-1", "coll-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"coll-3", "coll-2"}, collIDs(children))

	c, err := s.GetCollection(ctx, "coll-3")
	require.NoError(t, err)
	c.ParentID = ""
	c.Color = "#ff0000"
	require.NoError(t, s.UpdateCollection(ctx, c))

	children, err = s.ListChildCollections(ctx, "user-1", "coll-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"coll-2"}, collIDs(children))

	c, err = s.GetCollection(ctx, "coll-3")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Color)
	assert.True(t, c.IsRoot())

	require.NoError(t, s.DeleteCollection(ctx, "coll-3"))
	_, err = s.GetCollection(ctx, "coll-3")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTags(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-1", UserID: "user-1", Name: "go", CreatedAt: at(0)}))
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-2", UserID: "user-1", Name: "rust", CreatedAt: at(1)}))
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag-3", UserID: "user-2", Name: "go", CreatedAt: at(2)}))

	found, err := s.FindTagsByName(ctx, "user-1", "go")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "tag-1", found[0].ID)

	found, err = s.FindTagsByName(ctx, "user-1", "python")
	require.NoError(t, err)
	assert.Empty(t, found)

	list, err := s.ListTags(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-2", "tag-1"}, ids(list, func(t *domain.Tag) string { return t.ID }))

	tag, err := s.GetTag(ctx, "tag-2")
	require.NoError(t, err)
	tag.Name = "zig"
	require.NoError(t, s.UpdateTag(ctx, tag))

	found, err = s.FindTagsByName(ctx, "user-1", "rust")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = s.FindTagsByName(ctx, "user-1", "zig")
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, s.DeleteTag(ctx, "tag-2"))
	_, err = s.GetTag(ctx, "tag-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testBookmarkTags(t *testing.T, s store.Store) {
	ctx := context.Background()

	relTags := func(rels []*domain.BookmarkTag) []string {
		return ids(rels, func(r *domain.BookmarkTag) string { return r.TagID })
	}
	relBookmarks := func(rels []*domain.BookmarkTag) []string {
		return ids(rels, func(r *domain.BookmarkTag) string { return r.BookmarkID })
	}

	rel := &domain.BookmarkTag{BookmarkID: "bm-1", TagID: "tag-1", UserID: "user-1", CreatedAt: at(0)}
	require.NoError(t, s.AddBookmarkTag(ctx, rel))
	require.NoError(t, s.AddBookmarkTag(ctx, rel))
	require.NoError(t, s.AddBookmarkTag(ctx, &domain.BookmarkTag{BookmarkID: "bm-2", TagID: "tag-1", UserID: "user-1", CreatedAt: at(1)}))

	forBookmark, err := s.ListBookmarkTagsForBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-1"}, relTags(forBookmark))

	forTag, err := s.ListBookmarkTagsForTag(ctx, "tag-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bm-1", "bm-2"}, relBookmarks(forTag))

	require.NoError(t, s.SetBookmarkTags(ctx, "user-1", "bm-1", []string{"tag-2", "tag-3", "tag-2"}))

	forBookmark, err = s.ListBookmarkTagsForBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tag-2", "tag-3"}, relTags(forBookmark))

	forTag, err = s.ListBookmarkTagsForTag(ctx, "tag-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bm-2"}, relBookmarks(forTag))

	require.NoError(t, s.RemoveBookmarkTag(ctx, "bm-1", "tag-2"))
	require.NoError(t, s.RemoveBookmarkTag(ctx, "bm-1", "tag-missing"))

	forBookmark, err = s.ListBookmarkTagsForBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-3"}, relTags(forBookmark))

	require.NoError(t, s.DeleteBookmarkTagsForBookmark(ctx, "bm-1"))
	forBookmark, err = s.ListBookmarkTagsForBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Empty(t, forBookmark)

	forTag, err = s.ListBookmarkTagsForTag(ctx, "tag-3")
	require.NoError(t, err)
	assert.Empty(t, forTag)
}

func testTranscripts(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetTranscriptForBookmark(ctx, "bm-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	tr := &domain.Transcript{
		ID:         "tr-1",
		UserID:     "user-1",
		BookmarkID: "bm-1",
		FullText:   "hello world",
		Language:   "en",
		Status:     domain.TranscriptCompleted,
		Segments: []domain.Segment{
			{Timestamp: 0, Text: "hello", StartTime: 0, EndTime: 1.5},
			{Timestamp: 1.5, Text: "world", StartTime: 1.5, EndTime: 3},
		},
		Duration:  3,
		CreatedAt: at(0),
		UpdatedAt: at(0),
	}
	require.NoError(t, s.CreateTranscript(ctx, tr))
	assert.ErrorIs(t, s.CreateTranscript(ctx, tr), store.ErrAlreadyExists)

	got, err := s.GetTranscriptForBookmark(ctx, "bm-1")
	require.NoError(t, err)
	assert.Equal(t, "tr-1", got.ID)
	assert.Equal(t, tr.Segments, got.Segments)
	assert.InDelta(t, 3.0, got.Duration, 0.0001)

	got.Status = domain.TranscriptFailed
	got.Segments = nil
	require.NoError(t, s.UpdateTranscript(ctx, got))

	got, err = s.GetTranscript(ctx, "tr-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TranscriptFailed, got.Status)
	assert.Empty(t, got.Segments)

	require.NoError(t, s.DeleteTranscript(ctx, "tr-1"))
	_, err = s.GetTranscript(ctx, "tr-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTranscriptForBookmark(ctx, "bm-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTodos(t *testing.T, s store.Store) {
	ctx := context.Background()

	first := &domain.Todo{ID: "todo-1", UserID: "user-1", Title: "read", Status: domain.TodoPending, CreatedAt: at(0)}
	second := &domain.Todo{ID: "todo-2", UserID: "user-1", Title: "write", Status: domain.TodoPending, CreatedAt: at(1)}
	require.NoError(t, s.CreateTodo(ctx, first))
	require.NoError(t, s.CreateTodo(ctx, second))

	list, err := s.ListTodos(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"todo-2", "todo-1"}, ids(list, func(t *domain.Todo) string { return t.ID }))

	done := at(5)
	first.Status = domain.TodoCompleted
	first.CompletedAt = &done
	require.NoError(t, s.UpdateTodo(ctx, first))

	got, err := s.GetTodo(ctx, "todo-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TodoCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))

	got.Status = domain.TodoPending
	got.CompletedAt = nil
	require.NoError(t, s.UpdateTodo(ctx, got))

	got, err = s.GetTodo(ctx, "todo-1")
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, s.DeleteTodo(ctx, "todo-2"))
	list, err = s.ListTodos(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
