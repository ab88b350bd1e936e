package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/booklist-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	stringTooLongCode       = "22001"
)

// Unique constraint names declared by the migrations.
const (
	constraintAccountUsername = "account_username_key"
	constraintAccountEmail    = "account_email_key"
	constraintAccountPhone    = "account_phone_key"
	constraintBookISBN        = "books_isbn13_key"
)

// uniqueConstraintErrors maps a constraint name to the store error it means.
var uniqueConstraintErrors = map[string]error{
	constraintAccountUsername: store.ErrUsernameExists,
	constraintAccountEmail:    store.ErrEmailExists,
	constraintAccountPhone:    store.ErrPhoneExists,
	constraintBookISBN:        store.ErrISBNExists,
}

// MapError maps a database error to the matching store error while keeping
// the original error in the chain for logging.
// Unique violations on a known constraint map to the entity specific error
// (store.ErrEmailExists, store.ErrISBNExists, ...); other unique violations
// map to store.ErrDuplicate.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		if specific, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %w", specific, err)
		}
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	case stringTooLongCode:
		return fmt.Errorf("%w: value too long: %w", store.ErrInvalidEntity, err)
	}

	return err
}

// CheckRowsAffected returns notFound when result reports no affected rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
