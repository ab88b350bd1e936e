package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/store"
)

// Bounds accepted by the rating search.
const (
	MinSearchRating = 1.0
	MaxSearchRating = 5.0
)

// ImportSummary reports what ImportBooks did.
type ImportSummary struct {
	Inserted int
	// Skipped holds the ISBNs that were already catalogued.
	Skipped []int64
}

// BookService provides the catalog operations.
type BookService interface {
	// List returns one page of the whole catalog ordered by id. An empty
	// page is not an error.
	List(ctx context.Context, page domain.Page) (*domain.PageResult, error)

	// SearchByAuthor, SearchByTitle, SearchByYear and SearchByRating return
	// one page of matches. They return store.ErrBookNotFound when nothing
	// matches at all.
	SearchByAuthor(ctx context.Context, author string, page domain.Page) (*domain.PageResult, error)
	SearchByTitle(ctx context.Context, title string, page domain.Page) (*domain.PageResult, error)
	SearchByYear(ctx context.Context, year int, page domain.Page) (*domain.PageResult, error)
	SearchByRating(ctx context.Context, rating float64, page domain.Page) (*domain.PageResult, error)

	GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error)

	// Create validates book, recomputes its aggregates and stores it.
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)

	// Rate adds inc to the star buckets of the book with the given id.
	Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error)

	DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error)
	DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error)

	// ImportBooks inserts books in one transaction, skipping ISBNs that
	// are already catalogued. Every book must already be valid.
	ImportBooks(ctx context.Context, books []domain.Book) (*ImportSummary, error)
}

type bookService struct {
	books  store.BookStore
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewBookService creates a BookService. db is only used by ImportBooks.
func NewBookService(books store.BookStore, db *sql.DB, logger *slog.Logger) BookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookService{
		books:  books,
		db:     db,
		logger: logger.With("component", "book_service"),
		now:    time.Now,
	}
}

func (s *bookService) List(ctx context.Context, page domain.Page) (*domain.PageResult, error) {
	result, err := s.books.List(ctx, store.BookFilter{}, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return result, nil
}

// search runs a filtered listing and turns an empty match set into ErrBookNotFound.
// A page past the end of a non-empty match set is not an error.
func (s *bookService) search(ctx context.Context, filter store.BookFilter, page domain.Page) (*domain.PageResult, error) {
	result, err := s.books.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	if result.Total == 0 {
		return nil, store.ErrBookNotFound
	}
	return result, nil
}

func (s *bookService) SearchByAuthor(ctx context.Context, author string, page domain.Page) (*domain.PageResult, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "is required", domain.ErrEmptyContent)
	}
	return s.search(ctx, store.BookFilter{Author: author}, page)
}

func (s *bookService) SearchByTitle(ctx context.Context, title string, page domain.Page) (*domain.PageResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required", domain.ErrEmptyContent)
	}
	return s.search(ctx, store.BookFilter{Title: title}, page)
}

func (s *bookService) SearchByYear(ctx context.Context, year int, page domain.Page) (*domain.PageResult, error) {
	if year < 1 || year > s.now().Year() {
		return nil, domain.NewValidationError("year", "must be between 1 and the current year", domain.ErrInvalidYear)
	}
	return s.search(ctx, store.BookFilter{Year: year}, page)
}

func (s *bookService) SearchByRating(ctx context.Context, rating float64, page domain.Page) (*domain.PageResult, error) {
	if rating < MinSearchRating || rating > MaxSearchRating {
		return nil, domain.NewValidationError("rating", "must be between 1 and 5", domain.ErrInvalidRating)
	}
	return s.search(ctx, store.BookFilter{MinRating: rating}, page)
}

func (s *bookService) GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	if !domain.IsValidISBN13(isbn) {
		return nil, domain.NewValidationError("isbn", "must be a 13-digit number", domain.ErrInvalidISBN)
	}
	return s.books.GetByISBN(ctx, isbn)
}

func (s *bookService) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	book.ID = 0
	created, err := domain.NewBook(book)
	if err != nil {
		return nil, err
	}

	if err := s.books.Create(ctx, created); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("book rejected: ISBN already catalogued", "isbn13", created.ISBN13)
			return nil, err
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Info("book created", "book_id", created.ID, "isbn13", created.ISBN13)
	return created, nil
}

func (s *bookService) Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer", domain.ErrInvalidID)
	}
	if err := inc.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Rate(ctx, id, inc)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to rate book: %w", err)
	}
	return book, nil
}

func (s *bookService) DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	if !domain.IsValidISBN13(isbn) {
		return nil, domain.NewValidationError("isbn", "must be a 13-digit number", domain.ErrInvalidISBN)
	}

	book, err := s.books.DeleteByISBN(ctx, isbn)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	s.logger.Info("book deleted", "book_id", book.ID, "isbn13", isbn)
	return book, nil
}

func (s *bookService) DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error) {
	series = strings.TrimSpace(series)
	if series == "" {
		return nil, domain.NewValidationError("seriesName", "is required", domain.ErrEmptyContent)
	}

	books, err := s.books.DeleteBySeries(ctx, series)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete series: %w", err)
	}

	s.logger.Info("series deleted", "series", series, "count", len(books))
	return books, nil
}

func (s *bookService) ImportBooks(ctx context.Context, books []domain.Book) (*ImportSummary, error) {
	summary := &ImportSummary{}
	if len(books) == 0 {
		return summary, nil
	}

	isbns := make([]int64, len(books))
	for i := range books {
		isbns[i] = books[i].ISBN13
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.books.WithTx(tx)

		existing, err := txStore.ExistingISBNs(ctx, isbns)
		if err != nil {
			return err
		}

		fresh := make([]domain.Book, 0, len(books))
		for _, b := range books {
			if existing[b.ISBN13] {
				summary.Skipped = append(summary.Skipped, b.ISBN13)
				continue
			}
			fresh = append(fresh, b)
		}

		if err := txStore.CreateBatch(ctx, fresh); err != nil {
			return err
		}
		summary.Inserted = len(fresh)
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrISBNExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to import books: %w", err)
	}

	s.logger.Info("catalog imported",
		"inserted", summary.Inserted,
		"skipped", len(summary.Skipped))
	return summary, nil
}
