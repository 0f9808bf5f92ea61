package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIErrorUsesServerMessage(t *testing.T) {
	err := NewAPIError(400, "name is required")
	assert.Equal(t, "name is required", err.Error())
	assert.Equal(t, ErrCodeAPIError, err.Code)
	assert.Equal(t, 400, err.StatusCode)
}

func TestNewAPIErrorFallsBackToStatus(t *testing.T) {
	err := NewAPIError(503, "")
	assert.Equal(t, "API error: 503", err.Error())
}

func TestNewAPIErrorMaps404ToNotFound(t *testing.T) {
	err := NewAPIError(404, "business not found")
	assert.Equal(t, ErrCodeNotFound, err.Code)
	assert.True(t, IsNotFound(err))
}

func TestNetworkErrorUnwrapsCause(t *testing.T) {
	err := NewNetworkError(io.ErrUnexpectedEOF)
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, ErrCodeNetworkError, CodeOf(err))
}

func TestCodeOfSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch page: %w", NewValidationFailed("limit out of range"))
	assert.Equal(t, ErrCodeValidationFailed, CodeOf(wrapped))
	assert.True(t, IsValidation(wrapped))
}

func TestCodeOfOnPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}
