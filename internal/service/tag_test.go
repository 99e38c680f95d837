package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tagcolor "github.com/listenupapp/linkstash/internal/color"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
)

func TestTagService_Create_UniquePerUser(t *testing.T) {
	svc := setupServices(t, nil)

	tag, err := svc.tags.Create(userCtx("user-1"), CreateTagRequest{Name: "  machine   learning ", Color: "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "machine learning", tag.Name)
	assert.Equal(t, "#00ff00", tag.Color)

	_, err = svc.tags.Create(userCtx("user-1"), CreateTagRequest{Name: "machine learning"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// Names compare exactly after normalization, so case differs.
	_, err = svc.tags.Create(userCtx("user-1"), CreateTagRequest{Name: "Machine Learning"})
	assert.NoError(t, err)

	_, err = svc.tags.Create(userCtx("user-2"), CreateTagRequest{Name: "machine learning"})
	assert.NoError(t, err)

	_, err = svc.tags.Create(userCtx("user-1"), CreateTagRequest{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagService_FindOrCreate_Idempotent(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	first, created, err := svc.tags.FindOrCreate(ctx, CreateTagRequest{Name: "golang"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, tagcolor.ForName("golang"), first.Color)

	second, created, err := svc.tags.FindOrCreate(ctx, CreateTagRequest{Name: " golang "})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	tags, err := svc.tags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_FindOrCreate_Color(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	tag, created, err := svc.tags.FindOrCreate(ctx, CreateTagRequest{Name: "video", Color: "#FF0000"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "#FF0000", tag.Color)

	_, _, err = svc.tags.FindOrCreate(ctx, CreateTagRequest{Name: "audio", Color: "red"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagService_Update(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	a, err := svc.tags.Create(ctx, CreateTagRequest{Name: "a"})
	require.NoError(t, err)
	_, err = svc.tags.Create(ctx, CreateTagRequest{Name: "b"})
	require.NoError(t, err)

	_, err = svc.tags.Update(ctx, a.ID, UpdateTagRequest{Name: ptr("b")})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// Keeping the same name is not a conflict.
	updated, err := svc.tags.Update(ctx, a.ID, UpdateTagRequest{Name: ptr("a"), Color: ptr("#123456")})
	require.NoError(t, err)
	assert.Equal(t, "#123456", updated.Color)

	renamed, err := svc.tags.Update(ctx, a.ID, UpdateTagRequest{Name: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, "c", renamed.Name)
	assert.Equal(t, "#123456", renamed.Color)

	found, created, err := svc.tags.FindOrCreate(ctx, CreateTagRequest{Name: "c", Color: "#abcdef"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, "#123456", found.Color)
}

func TestTagService_GetForBookmarkAndCount(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	tag, err := svc.tags.Create(ctx, CreateTagRequest{Name: "shared"})
	require.NoError(t, err)
	b, err := svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: "https://1.example", TagIDs: []string{tag.ID}})
	require.NoError(t, err)
	_, err = svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: "https://2.example", TagIDs: []string{tag.ID}})
	require.NoError(t, err)

	tags, err := svc.tags.GetForBookmark(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)

	withCount, err := svc.tags.GetWithCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, withCount.BookmarkCount)

	_, err = svc.tags.GetForBookmark(userCtx("user-2"), b.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTagService_Remove_Cascades(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	doomed, err := svc.tags.Create(ctx, CreateTagRequest{Name: "doomed"})
	require.NoError(t, err)
	kept, err := svc.tags.Create(ctx, CreateTagRequest{Name: "kept"})
	require.NoError(t, err)

	var ids []string
	for _, u := range []string{"https://1.example", "https://2.example", "https://3.example"} {
		b, err := svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: u, TagIDs: []string{doomed.ID, kept.ID}})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	require.NoError(t, svc.tags.Remove(ctx, doomed.ID))

	_, err = svc.tags.Get(ctx, doomed.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	rels, err := svc.store.ListBookmarkTagsForTag(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, rels)

	for _, id := range ids {
		b, err := svc.bookmarks.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{kept.ID}, b.TagIDs)
	}

	keptRels, err := svc.store.ListBookmarkTagsForTag(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, keptRels, 3)
}
