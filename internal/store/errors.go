package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports an id or unique-field lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness constraint violation.
	ErrConflict = errors.New("conflict")
)

const pgUniqueViolation = "23505"

// wrap translates driver errors into the package sentinels and tags them
// with the failing operation.
func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
