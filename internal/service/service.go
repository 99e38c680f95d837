// Package service enforces the bookmark manager's consistency rules
// (ownership, uniqueness, ordering and cascades) over a store.Store.
//
// Every operation resolves the caller from the request context. Anonymous
// list reads return empty results; anonymous writes fail with Unauthorized.
// Multi-record rules are read-then-write sequences without a cross-record
// transaction, so two concurrent writers can both pass a uniqueness check.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/listenupapp/linkstash/internal/auth"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/store"
)

// requireSubject returns the authenticated subject or an Unauthorized error.
func requireSubject(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	userID, ok := auth.SubjectFrom(ctx)
	if !ok {
		return "", domainerrors.Unauthorized("authentication required")
	}
	return userID, nil
}

// ownable is implemented by every user-scoped domain record.
type ownable interface {
	comparable
	OwnedBy(userID string) bool
}

// loadOwned fetches a record and hides it unless userID owns it.
// Missing and foreign records are indistinguishable to the caller.
func loadOwned[T ownable](ctx context.Context, userID, kind, id string, get func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if id == "" {
		return zero, domainerrors.NotFoundf("%s not found", kind)
	}
	rec, err := get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return zero, domainerrors.NotFoundf("%s %s not found", kind, id)
	}
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", kind, err)
	}
	if rec == zero || !rec.OwnedBy(userID) {
		return zero, domainerrors.NotFoundf("%s %s not found", kind, id)
	}
	return rec, nil
}

// translate maps storage sentinels to domain errors and wraps the rest.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.Wrap(err, domainerrors.CodeNotFound, op+": not found")
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Wrap(err, domainerrors.CodeAlreadyExists, op+": already exists")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// patch replaces *dst when v is non-nil.
func patch[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// dedupe returns ids with duplicates removed, preserving first occurrence.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
