package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/booklist-api/internal/domain"
)

// AccountStore persists accounts and their credentials.
type AccountStore interface {
	// Create inserts the account and its credential. Both IDs are filled in
	// on success. Callers run it inside a transaction so a failed credential
	// insert never leaves a dangling account.
	// Returns ErrUsernameExists, ErrEmailExists or ErrPhoneExists on conflicts.
	Create(ctx context.Context, account *domain.Account, credential *domain.Credential) error

	// GetByEmail returns the account registered with email together with its credential.
	// Returns ErrAccountNotFound if there is none.
	GetByEmail(ctx context.Context, email string) (*domain.AccountWithCredential, error)

	// GetByID returns the account with the given ID together with its credential.
	// Returns ErrAccountNotFound if there is none.
	GetByID(ctx context.Context, id int64) (*domain.AccountWithCredential, error)

	// FindByIdentity returns the account whose username, email and phone all match.
	// Returns ErrAccountNotFound if no account matches every field.
	FindByIdentity(ctx context.Context, username, email, phone string) (*domain.Account, error)

	// UpdateCredential replaces the salted hash and salt of credential.AccountID.
	// Returns ErrCredentialNotFound if the account has no credential row.
	UpdateCredential(ctx context.Context, credential *domain.Credential) error

	// WithTx returns a new AccountStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
