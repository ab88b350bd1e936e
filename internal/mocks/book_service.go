package mocks

import (
	"context"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service"
)

// MockBookService implements service.BookService for handler tests.
type MockBookService struct {
	ListFn           func(ctx context.Context, page domain.Page) (*domain.PageResult, error)
	SearchByAuthorFn func(ctx context.Context, author string, page domain.Page) (*domain.PageResult, error)
	SearchByTitleFn  func(ctx context.Context, title string, page domain.Page) (*domain.PageResult, error)
	SearchByYearFn   func(ctx context.Context, year int, page domain.Page) (*domain.PageResult, error)
	SearchByRatingFn func(ctx context.Context, rating float64, page domain.Page) (*domain.PageResult, error)
	GetByISBNFn      func(ctx context.Context, isbn int64) (*domain.Book, error)
	CreateFn         func(ctx context.Context, book domain.Book) (*domain.Book, error)
	RateFn           func(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error)
	DeleteByISBNFn   func(ctx context.Context, isbn int64) (*domain.Book, error)
	DeleteBySeriesFn func(ctx context.Context, series string) ([]domain.Book, error)
	ImportBooksFn    func(ctx context.Context, books []domain.Book) (*service.ImportSummary, error)

	// Default values used when the functions above are nil
	Page  *domain.PageResult
	Book  *domain.Book
	Books []domain.Book
	Err   error

	// LastPage records the page passed to the most recent listing call
	LastPage domain.Page
}

// compile-time check
var _ service.BookService = (*MockBookService)(nil)

// List implements service.BookService.
func (m *MockBookService) List(ctx context.Context, page domain.Page) (*domain.PageResult, error) {
	m.LastPage = page
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return m.Page, m.Err
}

// SearchByAuthor implements service.BookService.
func (m *MockBookService) SearchByAuthor(ctx context.Context, author string, page domain.Page) (*domain.PageResult, error) {
	m.LastPage = page
	if m.SearchByAuthorFn != nil {
		return m.SearchByAuthorFn(ctx, author, page)
	}
	return m.Page, m.Err
}

// SearchByTitle implements service.BookService.
func (m *MockBookService) SearchByTitle(ctx context.Context, title string, page domain.Page) (*domain.PageResult, error) {
	m.LastPage = page
	if m.SearchByTitleFn != nil {
		return m.SearchByTitleFn(ctx, title, page)
	}
	return m.Page, m.Err
}

// SearchByYear implements service.BookService.
func (m *MockBookService) SearchByYear(ctx context.Context, year int, page domain.Page) (*domain.PageResult, error) {
	m.LastPage = page
	if m.SearchByYearFn != nil {
		return m.SearchByYearFn(ctx, year, page)
	}
	return m.Page, m.Err
}

// SearchByRating implements service.BookService.
func (m *MockBookService) SearchByRating(ctx context.Context, rating float64, page domain.Page) (*domain.PageResult, error) {
	m.LastPage = page
	if m.SearchByRatingFn != nil {
		return m.SearchByRatingFn(ctx, rating, page)
	}
	return m.Page, m.Err
}

// GetByISBN implements service.BookService.
func (m *MockBookService) GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	if m.GetByISBNFn != nil {
		return m.GetByISBNFn(ctx, isbn)
	}
	return m.Book, m.Err
}

// Create implements service.BookService.
func (m *MockBookService) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	return m.Book, m.Err
}

// Rate implements service.BookService.
func (m *MockBookService) Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error) {
	if m.RateFn != nil {
		return m.RateFn(ctx, id, inc)
	}
	return m.Book, m.Err
}

// DeleteByISBN implements service.BookService.
func (m *MockBookService) DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	if m.DeleteByISBNFn != nil {
		return m.DeleteByISBNFn(ctx, isbn)
	}
	return m.Book, m.Err
}

// DeleteBySeries implements service.BookService.
func (m *MockBookService) DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error) {
	if m.DeleteBySeriesFn != nil {
		return m.DeleteBySeriesFn(ctx, series)
	}
	return m.Books, m.Err
}

// ImportBooks implements service.BookService.
func (m *MockBookService) ImportBooks(ctx context.Context, books []domain.Book) (*service.ImportSummary, error) {
	if m.ImportBooksFn != nil {
		return m.ImportBooksFn(ctx, books)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &service.ImportSummary{Inserted: len(books)}, nil
}
