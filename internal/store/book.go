package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/booklist-api/internal/domain"
)

// BookFilter narrows a catalog listing. The zero value matches every book.
// At most one field is expected to be set.
type BookFilter struct {
	// Author matches a case-insensitive substring of authors.
	Author string
	// Title matches a case-insensitive substring of title or original_title.
	Title string
	// Year matches publication_year exactly.
	Year int
	// MinRating keeps books whose average is at least this value and
	// orders them by average, highest first.
	MinRating float64
}

// BookStore persists the catalog.
type BookStore interface {
	// List returns one page of the books matching filter and the total
	// number of matches. Results are ordered by id unless MinRating is set.
	List(ctx context.Context, filter BookFilter, page domain.Page) (*domain.PageResult, error)

	// GetByISBN returns the book with the given ISBN.
	// Returns ErrBookNotFound if there is none.
	GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error)

	// Create inserts book and fills in its ID.
	// Returns ErrISBNExists if the ISBN is already catalogued.
	Create(ctx context.Context, book *domain.Book) error

	// CreateBatch inserts every book. It stops at the first failure, so it
	// is meant to run inside a transaction.
	CreateBatch(ctx context.Context, books []domain.Book) error

	// Rate adds inc to the star buckets of book id and recomputes the
	// aggregates in a single statement, returning the updated book.
	// Returns ErrBookNotFound if the id is unknown.
	Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error)

	// DeleteByISBN removes the book with the given ISBN and returns it.
	// Returns ErrBookNotFound if there is none.
	DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error)

	// DeleteBySeries removes every book whose title carries the series
	// annotation "(<series>, #n)" and returns them.
	// Returns ErrBookNotFound if nothing matched.
	DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error)

	// ExistingISBNs returns which of the given ISBNs are already catalogued.
	ExistingISBNs(ctx context.Context, isbns []int64) (map[int64]bool, error)

	// WithTx returns a new BookStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BookStore
}
