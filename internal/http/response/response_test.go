package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"

	"github.com/visahelper/visa-helper/internal/apperr"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: apperr.ErrNotFound, expected: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("op: %w", apperr.ErrNotFound), expected: http.StatusNotFound},
		{name: "invalid argument", err: apperr.ErrInvalidArgument, expected: http.StatusBadRequest},
		{name: "conflict", err: apperr.ErrConflict, expected: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeForError(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := validator.New().Struct(request{})
	assert.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email is a required field")
	assert.Contains(t, resp.Error, "field Name is a required field")
}
