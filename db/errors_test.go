package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "purchases_user_course_key"}

		constraint, ok := UniqueViolation(fmt.Errorf("insert: %w", pgErr))

		assert.True(t, ok)
		assert.Equal(t, "purchases_user_course_key", constraint)
	})

	t.Run("ignores other sqlstates", func(t *testing.T) {
		_, ok := UniqueViolation(&pgconn.PgError{Code: "23503"})
		assert.False(t, ok)
	})

	t.Run("ignores non postgres errors", func(t *testing.T) {
		_, ok := UniqueViolation(errors.New("duplicate key value"))
		assert.False(t, ok)
	})
}

func TestForeignKeyViolation(t *testing.T) {
	constraint, ok := ForeignKeyViolation(&pgconn.PgError{Code: "23503", ConstraintName: "purchases_course_id_fkey"})

	assert.True(t, ok)
	assert.Equal(t, "purchases_course_id_fkey", constraint)

	_, ok = ForeignKeyViolation(nil)
	assert.False(t, ok)
}
