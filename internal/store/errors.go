package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants (ErrAccountNotFound, ErrBookNotFound) wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint, e.g. an account with an email that is already registered.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// database check constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot be started or committed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrAccountNotFound indicates that no account matched the lookup.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrCredentialNotFound indicates that an account has no stored credential.
	ErrCredentialNotFound = fmt.Errorf("%w: credential", ErrNotFound)

	// ErrBookNotFound indicates that no book matched the lookup.
	ErrBookNotFound = fmt.Errorf("%w: book", ErrNotFound)

	// ErrUsernameExists indicates that the username is already registered.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrEmailExists indicates that the email is already registered.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPhoneExists indicates that the phone number is already registered.
	ErrPhoneExists = fmt.Errorf("%w: phone", ErrDuplicate)

	// ErrISBNExists indicates that a book with the same ISBN is already in the catalog.
	ErrISBNExists = fmt.Errorf("%w: isbn", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
