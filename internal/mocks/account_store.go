package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/store"
)

// MockAccountStore implements store.AccountStore for testing.
type MockAccountStore struct {
	CreateFn           func(ctx context.Context, account *domain.Account, credential *domain.Credential) error
	GetByEmailFn       func(ctx context.Context, email string) (*domain.AccountWithCredential, error)
	GetByIDFn          func(ctx context.Context, id int64) (*domain.AccountWithCredential, error)
	FindByIdentityFn   func(ctx context.Context, username, email, phone string) (*domain.Account, error)
	UpdateCredentialFn func(ctx context.Context, credential *domain.Credential) error

	// Default values used when the functions above are nil.
	// Create assigns NextID to the account and its credential.
	NextID int64
	Found  *domain.AccountWithCredential
	Err    error

	mu            sync.Mutex
	created       []domain.Account
	updatedCreds  []domain.Credential
	withTxInvoked int
}

// Create implements store.AccountStore.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account, credential *domain.Credential) error {
	m.mu.Lock()
	m.created = append(m.created, *account)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, account, credential)
	}
	if m.Err != nil {
		return m.Err
	}
	account.ID = m.NextID
	credential.AccountID = m.NextID
	return nil
}

// GetByEmail implements store.AccountStore.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.AccountWithCredential, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.lookup()
}

// GetByID implements store.AccountStore.
func (m *MockAccountStore) GetByID(ctx context.Context, id int64) (*domain.AccountWithCredential, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.lookup()
}

func (m *MockAccountStore) lookup() (*domain.AccountWithCredential, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Found == nil {
		return nil, store.ErrAccountNotFound
	}
	return m.Found, nil
}

// FindByIdentity implements store.AccountStore.
func (m *MockAccountStore) FindByIdentity(ctx context.Context, username, email, phone string) (*domain.Account, error) {
	if m.FindByIdentityFn != nil {
		return m.FindByIdentityFn(ctx, username, email, phone)
	}
	found, err := m.lookup()
	if err != nil {
		return nil, err
	}
	return &found.Account, nil
}

// UpdateCredential implements store.AccountStore.
func (m *MockAccountStore) UpdateCredential(ctx context.Context, credential *domain.Credential) error {
	m.mu.Lock()
	m.updatedCreds = append(m.updatedCreds, *credential)
	m.mu.Unlock()

	if m.UpdateCredentialFn != nil {
		return m.UpdateCredentialFn(ctx, credential)
	}
	return m.Err
}

// WithTx returns the same mock; transactions are asserted through sqlmock.
func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	m.mu.Lock()
	m.withTxInvoked++
	m.mu.Unlock()
	return m
}

// Created returns copies of every account passed to Create.
func (m *MockAccountStore) Created() []domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Account(nil), m.created...)
}

// UpdatedCredentials returns copies of every credential passed to UpdateCredential.
func (m *MockAccountStore) UpdatedCredentials() []domain.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Credential(nil), m.updatedCreds...)
}

// WithTxCalls reports how many times WithTx was called.
func (m *MockAccountStore) WithTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.withTxInvoked
}

// compile-time check
var _ store.AccountStore = (*MockAccountStore)(nil)
