package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/validation"
)

type testCreateRequest struct {
	URL    string   `json:"url" validate:"required,max=32"`
	Color  string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	TagIDs []string `json:"tag_ids,omitempty" validate:"dive,required"`
}

type testPatchRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=10"`
}

func ptr[T any](v T) *T { return &v }

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(testCreateRequest{URL: "https://example.com", Color: "#3b82f6"}))
	assert.NoError(t, v.Validate(testCreateRequest{URL: "example.com", TagIDs: []string{"tag-1"}}))
	assert.NoError(t, v.Validate(testPatchRequest{}))
	assert.NoError(t, v.Validate(testPatchRequest{Name: ptr("reading")}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing required field",
			req:       testCreateRequest{},
			wantField: "url",
			wantMsg:   "is required",
		},
		{
			name:      "too long",
			req:       testCreateRequest{URL: "https://example.com/a/very/long/path"},
			wantField: "url",
			wantMsg:   "must not exceed 32 characters",
		},
		{
			name:      "bad color",
			req:       testCreateRequest{URL: "example.com", Color: "blue"},
			wantField: "color",
			wantMsg:   "must be a hex color such as #3b82f6",
		},
		{
			name:      "empty tag id",
			req:       testCreateRequest{URL: "example.com", TagIDs: []string{"tag-1", ""}},
			wantField: "tag_ids[1]",
			wantMsg:   "is required",
		},
		{
			name:      "patch pointer validated when set",
			req:       testPatchRequest{Name: ptr("")},
			wantField: "name",
			wantMsg:   "must be at least 1 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}
