package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'kiosk init' to create one")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Config file not found", err.Message)
	assert.Equal(t, "Run 'kiosk init' to create one", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "Could not reach the spin server")

	assert.Equal(t, ErrFetch, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.ErrorIs(t, err, cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := fmt.Errorf("invalid duration")
	err := WrapWithCode(cause, ErrConfig, "Bad cadence value", "Use a Go duration like 10s")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "Use a Go duration like 10s", err.Suggestion)
}

func TestError_Format(t *testing.T) {
	err := New(ErrSignal, "Trigger socket unavailable", "Check the socket directory exists")
	out := err.Error()

	assert.Contains(t, out, "✗ Trigger socket unavailable")
	assert.Contains(t, out, "Check the socket directory exists")
}

func TestError_FormatWithCause(t *testing.T) {
	err := Wrap(fmt.Errorf("timeout after 10s"), "Weather fetch failed")
	out := err.Error()

	assert.Contains(t, out, "✗ Weather fetch failed")
	assert.Contains(t, out, "timeout after 10s")
}

func TestIsCode(t *testing.T) {
	err := New(ErrLayout, "Child bounds exceed parent", "")

	assert.True(t, IsCode(err, ErrLayout))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrLayout))
	assert.False(t, IsCode(errors.New("plain"), ErrLayout))
}

func TestIsCode_Wrapped(t *testing.T) {
	inner := New(ErrFetch, "Stream status fetch failed", "")
	outer := fmt.Errorf("during update: %w", inner)

	assert.True(t, IsCode(outer, ErrFetch))
}
