package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testAccount() *domain.Account {
	return &domain.Account{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Phone:     "2065550100",
		Role:      domain.RoleReader,
	}
}

var accountColumns = []string{
	"account_id", "firstname", "lastname", "username", "email", "phone", "account_role",
	"salted_hash", "salt",
}

func TestAccountStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts account and credential", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery("INSERT INTO account \\(").
			WithArgs("Ada", "Lovelace", "ada", "ada@example.com", "2065550100", 1).
			WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(7))
		mock.ExpectExec("INSERT INTO account_credential").
			WithArgs(int64(7), "hash", "salt").
			WillReturnResult(sqlmock.NewResult(0, 1))

		account := testAccount()
		credential := &domain.Credential{SaltedHash: "hash", Salt: "salt"}

		require.NoError(t, s.Create(context.Background(), account, credential))
		assert.Equal(t, int64(7), account.ID)
		assert.Equal(t, int64(7), credential.AccountID)
	})

	t.Run("maps duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery("INSERT INTO account \\(").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"})

		err := s.Create(context.Background(), testAccount(), &domain.Credential{SaltedHash: "h", Salt: "s"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects invalid account before touching the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		account := testAccount()
		account.Email = "bad"

		err := s.Create(context.Background(), account, &domain.Credential{})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestAccountStoreGetByEmail(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery("WHERE a.email = \\$1").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(3, "Ada", "Lovelace", "ada", "ada@example.com", "2065550100", 5, "hash", "salt"))

		got, err := s.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Account.ID)
		assert.Equal(t, 5, got.Account.Role)
		assert.Equal(t, int64(3), got.Credential.AccountID)
		assert.Equal(t, "hash", got.Credential.SaltedHash)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery("WHERE a.email = \\$1").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := s.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestAccountStoreFindByIdentity(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectQuery("WHERE username = \\$1 AND email = \\$2 AND phone = \\$3").
		WithArgs("ada", "ada@example.com", "2065550100").
		WillReturnRows(sqlmock.NewRows(accountColumns[:7]).
			AddRow(3, "Ada", "Lovelace", "ada", "ada@example.com", "2065550100", 1))
	mock.ExpectQuery("WHERE username = \\$1").
		WillReturnRows(sqlmock.NewRows(accountColumns[:7]))

	got, err := s.FindByIdentity(context.Background(), "ada", "ada@example.com", "2065550100")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)

	_, err = s.FindByIdentity(context.Background(), "ada", "ada@example.com", "0000000000")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountStoreUpdateCredential(t *testing.T) {
	t.Parallel()

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectExec("UPDATE account_credential").
			WithArgs("newhash", "newsalt", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateCredential(context.Background(),
			&domain.Credential{AccountID: 3, SaltedHash: "newhash", Salt: "newsalt"})
		assert.NoError(t, err)
	})

	t.Run("no credential row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectExec("UPDATE account_credential").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateCredential(context.Background(), &domain.Credential{AccountID: 99})
		assert.ErrorIs(t, err, store.ErrCredentialNotFound)
	})

	t.Run("database failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectExec("UPDATE account_credential").
			WillReturnError(errors.New("connection reset"))

		err := s.UpdateCredential(context.Background(), &domain.Credential{AccountID: 3})
		assert.EqualError(t, err, "connection reset")
	})
}

func TestAccountStoreWithTx(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE account_credential").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := s.WithTx(tx)
	require.NoError(t, txStore.UpdateCredential(context.Background(), &domain.Credential{AccountID: 1}))
	require.NoError(t, tx.Commit())
}
