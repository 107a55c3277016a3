package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("create area: %w", NewConflictError("area exists"))

	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrResourceNotFound))
	assert.Equal(t, "create area: area exists", err.Error())
}

func TestIsMatchesAnyTarget(t *testing.T) {
	assert.True(t, Is(ErrZoneNotFound, ErrPermissionDenied, ErrValidationFailed, ErrResourceNotFound))
	assert.False(t, Is(ErrDivision, ErrConflict, ErrInvalidState))
}

func TestCustomErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "invalid state", (&CustomError{Err: ErrInvalidState}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	assert.Equal(t, "supervisor not part of zone", ErrSupervisorNotInZone.Error())
}
