package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/booklist-api/internal/api"
	apiMiddleware "github.com/phrazzld/booklist-api/internal/api/middleware"
	"github.com/phrazzld/booklist-api/internal/service"
	"github.com/phrazzld/booklist-api/internal/service/auth"
)

// pinger reports database reachability for /health. *sql.DB satisfies it.
type pinger interface {
	PingContext(ctx context.Context) error
}

// routerDeps are the dependencies the routes need.
type routerDeps struct {
	logger         *slog.Logger
	jwtService     auth.JWTService
	accountService service.AccountService
	bookService    service.BookService
	// db is optional; when set /health also pings the database.
	db pinger
}

// newRouter creates the chi router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(deps.logger))

	authHandler := api.NewAuthHandler(deps.accountService)
	bookHandler := api.NewBookHandler(deps.bookService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.jwtService)

	// Open routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Put("/forgotPassword", authHandler.ForgotPassword)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Put("/changePassword", authHandler.ChangePassword)

		r.Route("/book", func(r chi.Router) {
			r.Get("/all", bookHandler.ListAll)
			r.Get("/author/{author}", bookHandler.GetByAuthor)
			r.Get("/title/{title}", bookHandler.GetByTitle)
			r.Get("/year/{year}", bookHandler.GetByYear)
			r.Get("/rating/{rating}", bookHandler.GetByRating)
			r.Get("/isbn/{isbn}", bookHandler.GetByISBN)
			r.Post("/", bookHandler.Create)
			r.Put("/rate/{id}", bookHandler.Rate)
			r.Delete("/isbn/{isbn}", bookHandler.DeleteByISBN)
			r.Delete("/series/{seriesName}", bookHandler.DeleteBySeries)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.db.PingContext(ctx); err != nil {
				deps.logger.Error("Health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
