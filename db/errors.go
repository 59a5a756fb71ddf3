package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint name.
func UniqueViolation(err error) (string, bool) {
	return violation(err, pgerrcode.UniqueViolation)
}

// ForeignKeyViolation reports whether err is a foreign key violation and
// returns the violated constraint name.
func ForeignKeyViolation(err error) (string, bool) {
	return violation(err, pgerrcode.ForeignKeyViolation)
}

func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
