package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/shared/validation"
)

type createInput struct {
	Name   string   `json:"name" validate:"required"`
	Price  *float64 `json:"price" validate:"required"`
	UserID uint     `json:"user_id" validate:"required"`
}

type updateInput struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Email *string `json:"email,omitempty" validate:"omitnil,min=1"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      any
		wantFields []string
	}{
		{
			name:  "success: all required fields present",
			input: createInput{Name: "Widget", Price: ptr(9.99), UserID: 1},
		},
		{
			name:  "success: zero price is a present price",
			input: createInput{Name: "Free", Price: ptr(0.0), UserID: 1},
		},
		{
			name:       "failure: every field missing",
			input:      createInput{},
			wantFields: []string{"name", "price", "user_id"},
		},
		{
			name:       "failure: only price missing",
			input:      createInput{Name: "Widget", UserID: 1},
			wantFields: []string{"price"},
		},
		{
			name:  "success: omitted optional fields",
			input: updateInput{},
		},
		{
			name:       "failure: optional fields present but empty",
			input:      updateInput{Name: ptr(""), Email: ptr("")},
			wantFields: []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validation.Struct(tt.input)

			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalid)
			assert.Equal(t, tt.wantFields, validation.Fields(err))
		})
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := validation.NewError("name", "email")

	assert.EqualError(t, err, "validation failed: name, email")
	assert.True(t, errors.Is(err, validation.ErrInvalid))
	assert.Nil(t, validation.Fields(errors.New("other")))
}
