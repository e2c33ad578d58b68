package custom_error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	err := WrapDBError("Duplicate asset id", "23505")
	_, ok := err.(*UniqueViolationError)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "23505")

	err = WrapDBError("asset", "23503")
	_, ok = err.(*ForeignKeyViolationError)
	assert.True(t, ok)

	err = WrapDBError("boom", "42P01")
	assert.Contains(t, err.Error(), "uncategorized")
}

func TestNewBackendError(t *testing.T) {
	assert.Nil(t, NewBackendError("list", nil))

	err := NewBackendError("list assets", errors.New("connection refused"))
	assert.True(t, IsBackendError(err))
	assert.Contains(t, err.Error(), "list assets")

	again := NewBackendError("outer", err)
	assert.Same(t, err, again, "already classified errors are not wrapped twice")

	notFound := NewBackendError("find", fmt.Errorf("asset 7: %w", ErrNotFound))
	assert.False(t, IsBackendError(notFound))
	assert.ErrorIs(t, notFound, ErrNotFound)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("name is required")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: name is required", err.Error())
}
