package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/booklist-api/internal/config"
	"github.com/phrazzld/booklist-api/internal/platform/postgres"
	"github.com/phrazzld/booklist-api/internal/service"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"github.com/phrazzld/booklist-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	accountStore store.AccountStore
	bookStore    store.BookStore

	jwtService     auth.JWTService
	hasher         auth.PasswordHasher
	accountService service.AccountService
	bookService    service.BookService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewArgon2Hasher()

	app.accountStore = postgres.NewPostgresAccountStore(db, logger)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)

	app.accountService = service.NewAccountService(app.accountStore, app.hasher, app.jwtService, db, logger)
	app.bookService = service.NewBookService(app.bookStore, db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(routerDeps{
		logger:         app.logger,
		jwtService:     app.jwtService,
		accountService: app.accountService,
		bookService:    app.bookService,
		db:             app.db,
	})

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
