// Package main loads a books CSV export into the catalog. Rows whose ISBN is
// already stored are skipped, so the command can be re-run safely.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/booklist-api/internal/config"
	"github.com/phrazzld/booklist-api/internal/importer"
	"github.com/phrazzld/booklist-api/internal/platform/logger"
	"github.com/phrazzld/booklist-api/internal/platform/postgres"
	"github.com/phrazzld/booklist-api/internal/service"
)

func main() {
	file := flag.String("file", "books.csv", "path to the books CSV file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *file); err != nil {
		log.Printf("import-books: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	books := service.NewBookService(postgres.NewPostgresBookStore(db, l), db, l)

	report, err := importer.New(books, l).Run(ctx, f)
	if err != nil {
		return err
	}

	l.Info("import finished",
		slog.String("file", path),
		slog.Int("parsed", report.Parsed),
		slog.Int("inserted", report.Inserted),
		slog.Int("skipped", len(report.Skipped)))
	return nil
}
