package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	assert.True(t, IsValidation(Validation("quantity is required")))
	assert.True(t, IsNotFound(NotFound("customer not found")))
	assert.True(t, IsConflict(Conflict("already registered")))
	assert.True(t, IsStorage(Storage(errors.New("boom"), "insert user")))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindStorage, KindOf(errors.New("plain")))
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("register customer: %w", Validation("name required"))

	assert.True(t, IsValidation(err))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "name required", Message(err))
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage(cause, "insert entry")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert entry", Message(err))
	assert.Contains(t, err.Error(), "connection reset")
}
