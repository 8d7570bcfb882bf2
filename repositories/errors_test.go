package repositories

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationError(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, IsUniqueViolationError(uniqueViolation))
	assert.True(t, IsUniqueViolationError(errors.Wrap(uniqueViolation, "insert audit event")))
	assert.False(t, IsUniqueViolationError(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, IsUniqueViolationError(errors.New("not a pg error")))
	assert.False(t, IsUniqueViolationError(nil))
}

func TestIsSerializationFailureError(t *testing.T) {
	assert.True(t, IsSerializationFailureError(
		&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.False(t, IsSerializationFailureError(
		&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
}

func TestIsDeadlockError(t *testing.T) {
	deadlock := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}

	assert.True(t, IsDeadlockError(deadlock))
	assert.True(t, IsDeadlockError(errors.Wrap(deadlock, "insert audit event")))
	assert.False(t, IsDeadlockError(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
}
