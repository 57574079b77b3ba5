package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	t.Run("new carries code and message", func(t *testing.T) {
		err := New(CodeNotFound, "person not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.Equal(t, "person not found", err.Error())
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("wrap keeps cause reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to load person")
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to load person: connection reset", err.Error())
		assert.Equal(t, "failed to load person", MessageOf(err))
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("tx: %w", New(CodeConcurrentModification, "stale version"))
		assert.True(t, Is(err, CodeConcurrentModification))
	})

	t.Run("plain errors default to internal", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.False(t, HasCode(err, CodeInternal))
		assert.Empty(t, MessageOf(err))
	})
	t.Run("field errors travel with the error", func(t *testing.T) {
		err := NewFields(CodeBadRequest, "request validation failed", []FieldError{
			{Field: "last_name", Message: "is required"},
		})
		require.Len(t, FieldsOf(err), 1)
		assert.Equal(t, "last_name", FieldsOf(err)[0].Field)
		assert.Nil(t, FieldsOf(errors.New("plain")))
	})
}
