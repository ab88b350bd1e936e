package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/platform/logger"
	"github.com/phrazzld/booklist-api/internal/store"
)

// PostgresBookStore implements store.BookStore.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a book store on db, which may be a pool or a
// transaction. A nil logger falls back to slog.Default.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

var _ store.BookStore = (*PostgresBookStore)(nil)

// queryBooks runs a query returning book rows and scans them by db tag.
func (s *PostgresBookStore) queryBooks(ctx context.Context, query string, args []any) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]domain.Book, 0)
	if err := sqlx.StructScan(rows, &books); err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}
	return books, nil
}

// List implements store.BookStore.List.
func (s *PostgresBookStore) List(
	ctx context.Context,
	filter store.BookFilter,
	page domain.Page,
) (*domain.PageResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	countSQL, countArgs, err := buildCountQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count books", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	listSQL, listArgs, err := buildListQuery(filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	books, err := s.queryBooks(ctx, listSQL, listArgs)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed books",
		slog.Int("returned", len(books)),
		slog.Int64("total", total),
		slog.Int("limit", page.Limit),
		slog.Int("offset", page.Offset))

	return &domain.PageResult{Books: books, Total: total, Page: page}, nil
}

// GetByISBN implements store.BookStore.GetByISBN.
func (s *PostgresBookStore) GetByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	query, args, err := buildGetByISBNQuery(isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.getOne(ctx, query, args, slog.Int64("isbn13", isbn))
}

func (s *PostgresBookStore) getOne(ctx context.Context, query string, args []any, key slog.Attr) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	books, err := s.queryBooks(ctx, query, args)
	if err != nil {
		log.Error("failed to load book", slog.String("error", err.Error()), key)
		return nil, err
	}
	if len(books) == 0 {
		log.Debug("book not found", key)
		return nil, store.ErrBookNotFound
	}
	return &books[0], nil
}

// Create implements store.BookStore.Create.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := buildInsertQuery(*book)
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&book.ID); err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate isbn", slog.Int64("isbn13", book.ISBN13))
		} else {
			log.Error("failed to insert book",
				slog.String("error", err.Error()),
				slog.Int64("isbn13", book.ISBN13))
		}
		return mapped
	}

	log.Info("book created", slog.Int64("book_id", book.ID), slog.Int64("isbn13", book.ISBN13))
	return nil
}

// CreateBatch implements store.BookStore.CreateBatch.
func (s *PostgresBookStore) CreateBatch(ctx context.Context, books []domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for start := 0; start < len(books); start += insertBatchSize {
		end := min(start+insertBatchSize, len(books))

		query, args, err := buildInsertQuery(books[start:end]...)
		if err != nil {
			return fmt.Errorf("failed to build insert query: %w", err)
		}

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to insert book batch",
				slog.String("error", err.Error()),
				slog.Int("batch_start", start),
				slog.Int("batch_size", end-start))
			return MapError(err)
		}
	}

	log.Info("books inserted", slog.Int("count", len(books)))
	return nil
}

// Rate implements store.BookStore.Rate.
func (s *PostgresBookStore) Rate(ctx context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := inc.Validate(); err != nil {
		return nil, err
	}

	// Nothing to add: return the row as stored so the aggregates stay untouched.
	if inc.IsZero() {
		query, args, err := buildGetByIDQuery(id)
		if err != nil {
			return nil, fmt.Errorf("failed to build query: %w", err)
		}
		return s.getOne(ctx, query, args, slog.Int64("book_id", id))
	}

	query, args, err := buildRateQuery(id, inc)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate query: %w", err)
	}

	books, err := s.queryBooks(ctx, query, args)
	if err != nil {
		log.Error("failed to rate book", slog.String("error", err.Error()), slog.Int64("book_id", id))
		return nil, err
	}
	if len(books) == 0 {
		return nil, store.ErrBookNotFound
	}

	log.Info("book rated",
		slog.Int64("book_id", id),
		slog.Int64("rating_count", books[0].Count),
		slog.Float64("rating_avg", books[0].Average))
	return &books[0], nil
}

// DeleteByISBN implements store.BookStore.DeleteByISBN.
func (s *PostgresBookStore) DeleteByISBN(ctx context.Context, isbn int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := buildDeleteByISBNQuery(isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	books, err := s.queryBooks(ctx, query, args)
	if err != nil {
		log.Error("failed to delete book", slog.String("error", err.Error()), slog.Int64("isbn13", isbn))
		return nil, err
	}
	if len(books) == 0 {
		return nil, store.ErrBookNotFound
	}

	log.Info("book deleted", slog.Int64("book_id", books[0].ID), slog.Int64("isbn13", isbn))
	return &books[0], nil
}

// DeleteBySeries implements store.BookStore.DeleteBySeries.
func (s *PostgresBookStore) DeleteBySeries(ctx context.Context, series string) ([]domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := buildDeleteBySeriesQuery(series)
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	books, err := s.queryBooks(ctx, query, args)
	if err != nil {
		log.Error("failed to delete series", slog.String("error", err.Error()), slog.String("series", series))
		return nil, err
	}
	if len(books) == 0 {
		return nil, store.ErrBookNotFound
	}

	log.Info("series deleted", slog.String("series", series), slog.Int("count", len(books)))
	return books, nil
}

// ExistingISBNs implements store.BookStore.ExistingISBNs.
func (s *PostgresBookStore) ExistingISBNs(ctx context.Context, isbns []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool)

	for start := 0; start < len(isbns); start += insertBatchSize {
		end := min(start+insertBatchSize, len(isbns))

		query, args, err := buildExistingISBNsQuery(isbns[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to build isbn query: %w", err)
		}

		if err := s.collectISBNs(ctx, query, args, existing); err != nil {
			return nil, err
		}
	}

	return existing, nil
}

// collectISBNs runs one existing-ISBN query and marks every returned ISBN.
func (s *PostgresBookStore) collectISBNs(ctx context.Context, query string, args []any, into map[int64]bool) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var isbn int64
		if err := rows.Scan(&isbn); err != nil {
			return fmt.Errorf("failed to scan isbn: %w", err)
		}
		into[isbn] = true
	}
	if err := rows.Err(); err != nil {
		return MapError(err)
	}
	return nil
}

// WithTx implements store.BookStore.WithTx.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:     tx,
		logger: s.logger,
	}
}
