package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/platform/logger"
	"github.com/phrazzld/booklist-api/internal/store"
)

const (
	insertAccountQuery = `
		INSERT INTO account (firstname, lastname, username, email, phone, account_role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING account_id`

	insertCredentialQuery = `
		INSERT INTO account_credential (account_id, salted_hash, salt)
		VALUES ($1, $2, $3)`

	selectAccountWithCredential = `
		SELECT a.account_id, a.firstname, a.lastname, a.username, a.email, a.phone, a.account_role,
		       c.salted_hash, c.salt
		FROM account a
		INNER JOIN account_credential c ON c.account_id = a.account_id`

	selectAccountByIdentityQuery = `
		SELECT account_id, firstname, lastname, username, email, phone, account_role
		FROM account
		WHERE username = $1 AND email = $2 AND phone = $3`

	updateCredentialQuery = `
		UPDATE account_credential
		SET salted_hash = $1, salt = $2
		WHERE account_id = $3`
)

// PostgresAccountStore implements store.AccountStore.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates an account store on db, which may be a
// pool or a transaction. A nil logger falls back to slog.Default.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
func (s *PostgresAccountStore) Create(
	ctx context.Context,
	account *domain.Account,
	credential *domain.Credential,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create", slog.String("error", err.Error()))
		return err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, insertAccountQuery,
		account.FirstName,
		account.LastName,
		account.Username,
		account.Email,
		account.Phone,
		account.Role,
	).Scan(&id)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate account identity", slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to insert account", slog.String("error", err.Error()))
		return mapped
	}

	if _, err := s.db.ExecContext(ctx, insertCredentialQuery, id, credential.SaltedHash, credential.Salt); err != nil {
		log.Error("failed to insert credential",
			slog.String("error", err.Error()),
			slog.Int64("account_id", id))
		return MapError(err)
	}

	account.ID = id
	credential.AccountID = id

	log.Info("account created", slog.Int64("account_id", id))
	return nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *PostgresAccountStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.AccountWithCredential, error) {
	return s.getOne(ctx, selectAccountWithCredential+" WHERE a.email = $1", email)
}

// GetByID implements store.AccountStore.GetByID.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id int64) (*domain.AccountWithCredential, error) {
	return s.getOne(ctx, selectAccountWithCredential+" WHERE a.account_id = $1", id)
}

func (s *PostgresAccountStore) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*domain.AccountWithCredential, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result domain.AccountWithCredential
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&result.Account.ID,
		&result.Account.FirstName,
		&result.Account.LastName,
		&result.Account.Username,
		&result.Account.Email,
		&result.Account.Phone,
		&result.Account.Role,
		&result.Credential.SaltedHash,
		&result.Credential.Salt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to load account", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	result.Credential.AccountID = result.Account.ID
	return &result, nil
}

// FindByIdentity implements store.AccountStore.FindByIdentity.
func (s *PostgresAccountStore) FindByIdentity(
	ctx context.Context,
	username, email, phone string,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var a domain.Account
	err := s.db.QueryRowContext(ctx, selectAccountByIdentityQuery, username, email, phone).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Username,
		&a.Email,
		&a.Phone,
		&a.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no account matches identity")
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to look up account by identity", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &a, nil
}

// UpdateCredential implements store.AccountStore.UpdateCredential.
func (s *PostgresAccountStore) UpdateCredential(ctx context.Context, credential *domain.Credential) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, updateCredentialQuery,
		credential.SaltedHash,
		credential.Salt,
		credential.AccountID,
	)
	if err != nil {
		log.Error("failed to update credential",
			slog.String("error", err.Error()),
			slog.Int64("account_id", credential.AccountID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCredentialNotFound); err != nil {
		log.Warn("credential update matched no rows", slog.Int64("account_id", credential.AccountID))
		return err
	}

	log.Info("credential updated", slog.Int64("account_id", credential.AccountID))
	return nil
}

// WithTx implements store.AccountStore.WithTx.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}
