package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrNotReady, http.StatusBadRequest},
		{ErrUpstream, http.StatusBadGateway},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := MapError(tc.err)
		assert.Equal(t, tc.code, got.Code, "error: %v", tc.err)
	}
}

func TestMapErrorKeepsAppError(t *testing.T) {
	orig := NewAppError(http.StatusBadRequest, "analysis not yet performed (status: uploaded)", ErrNotReady)
	got := MapError(fmt.Errorf("handler: %w", orig))

	assert.Same(t, orig, got)
	assert.Equal(t, "analysis not yet performed (status: uploaded)", got.Message)
}

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	appErr := NewAppError(http.StatusNotFound, "upload not found", ErrNotFound)
	assert.ErrorIs(t, appErr, ErrNotFound)
	assert.Contains(t, appErr.Error(), "upload not found")
}
