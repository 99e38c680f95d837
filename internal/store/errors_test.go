package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/linkstash/internal/store"
)

func TestError_Error(t *testing.T) {
	err := &store.Error{Code: http.StatusNotFound, Message: "not found"}
	assert.Equal(t, "not found", err.Error())

	withCause := err.WithCause(errors.New("disk"))
	assert.Equal(t, "not found: disk", withCause.Error())
}

func TestError_IsMatchesCode(t *testing.T) {
	err := store.ErrNotFound.WithMessage("bookmark bm-1 not found")

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrAlreadyExists)
	assert.ErrorIs(t, fmt.Errorf("get bookmark: %w", err), store.ErrNotFound)
}

func TestError_UnwrapAndHTTPCode(t *testing.T) {
	cause := errors.New("underlying")
	err := store.ErrInvalidInput.WithCause(cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.Equal(t, "invalid input", err.Message)
}
