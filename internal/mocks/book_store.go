package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockBookStore is a testify mock of store.BookStore.
// WithTx returns the mock itself unless an expectation says otherwise.
type MockBookStore struct {
	mock.Mock
}

// List is a mock implementation of store.BookStore.List.
func (m *MockBookStore) List(ctx context.Context, filter store.BookFilter, page domain.Page) (*domain.PageResult, error) {
	args := m.Called(ctx, filter, page)
	result, _ := args.Get(0).(*domain.PageResult)
	return result, args.Error(1)
}

// GetByISBN is a mock implementation of store.BookStore.GetByISBN.
func (m *MockBookStore) GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	book, _ := args.Get(0).(*domain.Book)
	return book, args.Error(1)
}

// Create is a mock implementation of store.BookStore.Create.
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// CreateBatch is a mock implementation of store.BookStore.CreateBatch.
func (m *MockBookStore) CreateBatch(ctx context.Context, books []domain.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

// Rate is a mock implementation of store.BookStore.Rate.
func (m *MockBookStore) Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error) {
	args := m.Called(ctx, id, inc)
	book, _ := args.Get(0).(*domain.Book)
	return book, args.Error(1)
}

// DeleteByISBN is a mock implementation of store.BookStore.DeleteByISBN.
func (m *MockBookStore) DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	book, _ := args.Get(0).(*domain.Book)
	return book, args.Error(1)
}

// DeleteBySeries is a mock implementation of store.BookStore.DeleteBySeries.
func (m *MockBookStore) DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error) {
	args := m.Called(ctx, series)
	books, _ := args.Get(0).([]domain.Book)
	return books, args.Error(1)
}

// ExistingISBNs is a mock implementation of store.BookStore.ExistingISBNs.
func (m *MockBookStore) ExistingISBNs(ctx context.Context, isbns []int64) (map[int64]bool, error) {
	args := m.Called(ctx, isbns)
	existing, _ := args.Get(0).(map[int64]bool)
	return existing, args.Error(1)
}

// WithTx is a mock implementation of store.BookStore.WithTx. It does not
// record a call, so tests need no expectation for it.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return m
}
