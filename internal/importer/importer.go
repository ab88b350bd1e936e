package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service"
)

// BookImporter is the part of service.BookService the importer needs.
type BookImporter interface {
	ImportBooks(ctx context.Context, books []domain.Book) (*service.ImportSummary, error)
}

// Report summarizes an import run.
type Report struct {
	Parsed   int
	Inserted int
	Skipped  []int64
	Repairs  Repairs
	Warnings []string
}

// Importer parses a books CSV and stores the result.
type Importer struct {
	books  BookImporter
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Importer.
func New(books BookImporter, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		books:  books,
		logger: logger.With("component", "importer"),
		now:    time.Now,
	}
}

// Run parses r and imports every valid row in one transaction. Nothing is
// stored when the insert fails.
func (i *Importer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	parsed, err := Parse(r, i.now())
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, w := range parsed.Warnings {
		i.logger.Warn("row skipped", "detail", w)
	}
	i.logger.Info("catalog parsed",
		"books", len(parsed.Books),
		"duplicate_isbns_repaired", len(parsed.Repairs.DuplicateISBNs),
		"negative_years_repaired", len(parsed.Repairs.NegativeYears),
		"original_titles_filled", len(parsed.Repairs.MissingOriginalTitles),
		"warnings", len(parsed.Warnings))

	summary, err := i.books.ImportBooks(ctx, parsed.Books)
	if err != nil {
		return nil, err
	}

	return &Report{
		Parsed:   len(parsed.Books),
		Inserted: summary.Inserted,
		Skipped:  summary.Skipped,
		Repairs:  parsed.Repairs,
		Warnings: parsed.Warnings,
	}, nil
}
