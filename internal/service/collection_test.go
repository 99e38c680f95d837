package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/linkstash/internal/errors"
)

func TestCollectionService_CreateAndList(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	parent, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "  Work  ", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "Work", parent.Name)
	assert.Equal(t, 1, parent.Order)

	a, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "A", ParentID: parent.ID})
	require.NoError(t, err)
	b, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "B", ParentID: parent.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)

	roots, err := svc.collections.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, parent.ID, roots[0].ID)

	_, err = svc.collections.Reorder(ctx, a.ID, 3)
	require.NoError(t, err)

	children, err := svc.collections.List(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, b.ID, children[0].ID)
	assert.Equal(t, a.ID, children[1].ID)

	all, err := svc.collections.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.collections.Create(ctx, CreateCollectionRequest{Name: "Bad", Color: "red"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.collections.Create(ctx, CreateCollectionRequest{Name: "Orphan", ParentID: "coll-missing"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCollectionService_Update(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	c, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "Old", Description: "desc", Icon: "book"})
	require.NoError(t, err)

	updated, err := svc.collections.Update(ctx, c.ID, UpdateCollectionRequest{
		Name:        ptr("New"),
		Description: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Equal(t, "book", updated.Icon)

	_, err = svc.collections.Update(ctx, c.ID, UpdateCollectionRequest{Name: ptr("   ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.collections.Update(userCtx("user-2"), c.ID, UpdateCollectionRequest{Name: ptr("Mine")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCollectionService_GetWithCount(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	c, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "Counted"})
	require.NoError(t, err)
	for _, u := range []string{"https://1.example", "https://2.example"} {
		_, err := svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: u, CollectionID: c.ID})
		require.NoError(t, err)
	}

	withCount, err := svc.collections.GetWithCount(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, withCount.BookmarkCount)
	assert.Equal(t, c.ID, withCount.ID)
}

func TestCollectionService_Remove_Flattens(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	parent, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "Child", ParentID: parent.ID})
	require.NoError(t, err)
	grandchild, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "Grandchild", ParentID: child.ID})
	require.NoError(t, err)

	b1, err := svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: "https://1.example", CollectionID: parent.ID})
	require.NoError(t, err)
	b2, err := svc.bookmarks.Create(ctx, CreateBookmarkRequest{URL: "https://2.example", CollectionID: parent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.collections.Remove(ctx, parent.ID))

	_, err = svc.collections.Get(ctx, parent.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	for _, id := range []string{b1.ID, b2.ID} {
		b, err := svc.bookmarks.Get(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, b.CollectionID)
	}

	gotChild, err := svc.collections.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, gotChild.ParentID)

	// Only direct children are promoted.
	gotGrandchild, err := svc.collections.Get(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, gotGrandchild.ParentID)
}

func TestCollectionService_MoveToParent(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	a, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "B", ParentID: a.ID})
	require.NoError(t, err)
	c, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "C", ParentID: b.ID})
	require.NoError(t, err)
	d, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "D"})
	require.NoError(t, err)

	moved, err := svc.collections.MoveToParent(ctx, d.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, moved.ParentID)
	assert.Equal(t, 1, moved.Order)

	root, err := svc.collections.MoveToParent(ctx, d.ID, "")
	require.NoError(t, err)
	assert.Empty(t, root.ParentID)

	_, err = svc.collections.MoveToParent(ctx, a.ID, "coll-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCollectionService_MoveToParent_RejectsCycles(t *testing.T) {
	svc := setupServices(t, nil)
	ctx := userCtx("user-1")

	a, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "B", ParentID: a.ID})
	require.NoError(t, err)
	c, err := svc.collections.Create(ctx, CreateCollectionRequest{Name: "C", ParentID: b.ID})
	require.NoError(t, err)

	_, err = svc.collections.MoveToParent(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRelationship)

	_, err = svc.collections.MoveToParent(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRelationship)

	// Nothing changed.
	gotA, err := svc.collections.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, gotA.ParentID)
	assert.Equal(t, a.Order, gotA.Order)

	gotC, err := svc.collections.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, gotC.ParentID)
}
