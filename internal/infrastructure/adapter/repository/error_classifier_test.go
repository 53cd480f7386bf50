package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	t.Run("Duplicate key errors", func(t *testing.T) {
		assert.True(t, c.IsDuplicateKeyError(errors.New(`duplicate key value violates unique constraint "idx_ledger_entries_external_id"`)))
		assert.True(t, c.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: ledger_entries.external_id")))
		assert.False(t, c.IsDuplicateKeyError(errors.New("connection refused")))
		assert.False(t, c.IsDuplicateKeyError(nil))
	})

	t.Run("Serialization errors are distinct from connectivity", func(t *testing.T) {
		serialization := errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")
		assert.True(t, c.IsSerializationError(serialization))
		assert.False(t, c.IsConnectionError(serialization))

		deadlock := errors.New("deadlock detected")
		assert.True(t, c.IsSerializationError(deadlock))

		assert.False(t, c.IsSerializationError(errors.New("duplicate key value")))
		assert.False(t, c.IsSerializationError(nil))
	})

	t.Run("Connection errors", func(t *testing.T) {
		assert.True(t, c.IsConnectionError(errors.New("dial tcp 127.0.0.1:5432: connection refused")))
		assert.True(t, c.IsConnectionError(errors.New("write: broken pipe")))
		assert.False(t, c.IsConnectionError(errors.New("could not serialize access")))
		assert.False(t, c.IsConnectionError(nil))
	})
}
