package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("row not found")
	appErr := NewNotFoundError(cause, "Pokemon not found")

	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "Pokemon not found: row not found", appErr.Error())
	assert.ErrorIs(t, appErr, cause)
}

func TestGetAppErrorFindsWrapped(t *testing.T) {
	appErr := NewConflictError(errors.New("dup"), "Pokemon already guessed")
	wrapped := fmt.Errorf("submit guess: %w", appErr)

	found, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, found.StatusCode)
	assert.Equal(t, "Pokemon already guessed", found.Message)
}

func TestGetAppErrorMissesPlainErrors(t *testing.T) {
	_, ok := GetAppError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = GetAppError(nil)
	assert.False(t, ok)
}
