package domain

import (
	"context"
	"errors"
)

// Hierarchy errors.
var (
	ErrSelfParent = errors.New("collection cannot be its own parent")
	ErrCycle      = errors.New("collection cannot be moved under one of its descendants")
)

// ParentLookup resolves the parent of a collection.
type ParentLookup interface {
	// ParentOf returns the parent ID of a collection ("" for root).
	// found is false when the collection does not exist.
	ParentOf(ctx context.Context, collectionID string) (parentID string, found bool, err error)
}

// CheckReparent verifies that collectionID may be placed under newParentID.
// It walks the ancestor chain upward from newParentID and rejects the move if
// collectionID appears in it. A missing ancestor ends the walk as if it were
// the root, and a loop that does not contain collectionID ends it as well.
func CheckReparent(ctx context.Context, lookup ParentLookup, collectionID, newParentID string) error {
	if newParentID == "" {
		return nil
	}
	if newParentID == collectionID {
		return ErrSelfParent
	}

	visited := make(map[string]struct{})
	for current := newParentID; current != ""; {
		if current == collectionID {
			return ErrCycle
		}
		if _, seen := visited[current]; seen {
			return nil
		}
		visited[current] = struct{}{}

		if err := ctx.Err(); err != nil {
			return err
		}

		parent, found, err := lookup.ParentOf(ctx, current)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		current = parent
	}

	return nil
}
