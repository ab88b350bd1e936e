package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/booklist-api/internal/config"
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/mocks"
	"github.com/phrazzld/booklist-api/internal/service"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"github.com/phrazzld/booklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret-that-is-long-enough"

type routerFixture struct {
	handler  http.Handler
	jwt      auth.JWTService
	accounts *mocks.MockAccountService
	books    *mocks.MockBookService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)

	f := &routerFixture{
		jwt:      jwtService,
		accounts: &mocks.MockAccountService{},
		books:    &mocks.MockBookService{},
	}
	f.handler = newRouter(routerDeps{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		jwtService:     jwtService,
		accountService: f.accounts,
		bookService:    f.books,
	})
	return f
}

func (f *routerFixture) token(t *testing.T, accountID int64) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(context.Background(), auth.Subject{AccountID: accountID, Username: "ada", Role: 1})
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_AuthGate(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.books.Page = &domain.PageResult{Page: domain.NewPage("", "")}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer not.a.jwt", http.StatusForbidden},
		{"valid token", "Bearer " + f.token(t, 7), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/book/all", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				body := decodeBody(t, rec)
				assert.NotEmpty(t, body["message"])
				assert.NotEmpty(t, body["trace_id"])
			}
		})
	}
}

func TestRouter_Pagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  domain.Page
	}{
		{"", domain.Page{Limit: 10, Offset: 0}},
		{"?limit=abc&offset=-3", domain.Page{Limit: 10, Offset: 0}},
		{"?limit=0&offset=x", domain.Page{Limit: 10, Offset: 0}},
		{"?limit=25&offset=50", domain.Page{Limit: 25, Offset: 50}},
		{"?limit=500", domain.Page{Limit: 100, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			f := newRouterFixture(t)
			f.books.ListFn = func(ctx context.Context, page domain.Page) (*domain.PageResult, error) {
				return &domain.PageResult{Total: 42, Page: page}, nil
			}

			rec := f.do(t, http.MethodGet, "/book/all"+tt.query, "", f.token(t, 1))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, f.books.LastPage)

			pagination := decodeBody(t, rec)["pagination"].(map[string]any)
			assert.EqualValues(t, 42, pagination["totalRecords"])
			assert.EqualValues(t, tt.want.Limit, pagination["limit"])
			assert.EqualValues(t, tt.want.Offset, pagination["offset"])
			assert.EqualValues(t, tt.want.Limit+tt.want.Offset, pagination["nextPage"])
		})
	}
}

func TestRouter_OpenAccountRoutes(t *testing.T) {
	t.Parallel()

	t.Run("register", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.accounts.Result = &service.AuthResult{AccessToken: "tok", Account: domain.Account{ID: 3}}

		body := `{"firstname":"Ada","lastname":"Lovelace","email":"ada@example.com","password":"Passw0rd!",` +
			`"username":"ada","role":1,"phone":"+1 555 123 4567"}`
		rec := f.do(t, http.MethodPost, "/register", body, "")

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		got := decodeBody(t, rec)
		assert.Equal(t, "tok", got["accessToken"])
		assert.EqualValues(t, 3, got["id"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.accounts.Err = service.ErrInvalidCredentials

		rec := f.do(t, http.MethodPost, "/login", `{"email":"ada@example.com","password":"nope"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "Invalid Credentials", got["message"])
		assert.NotContains(t, got, "accessToken")
	})

	t.Run("forgot password without a match", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.accounts.Err = service.ErrIdentityNotFound

		body := `{"username":"ada","email":"ada@example.com","phone":"5551234567",` +
			`"newPassword":"NewPassw0rd#","confirmNewPassword":"NewPassw0rd#"}`
		rec := f.do(t, http.MethodPut, "/forgotPassword", body, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User does not exist within the database with the provided inputs", decodeBody(t, rec)["message"])
	})
}

func TestRouter_ChangePasswordUsesTokenAccount(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	var gotID int64
	f.accounts.ChangePasswordFn = func(ctx context.Context, accountID int64, in service.ChangePasswordInput) error {
		gotID = accountID
		return nil
	}

	body := `{"oldPassword":"Passw0rd!","newPassword":"NewPassw0rd#","confirmNewPassword":"NewPassw0rd#"}`
	rec := f.do(t, http.MethodPut, "/changePassword", body, f.token(t, 11))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(11), gotID)
	assert.Equal(t, "Password updated successfully", decodeBody(t, rec)["message"])
}

func TestRouter_BookRoutes(t *testing.T) {
	t.Parallel()

	book := &domain.Book{
		ID:              5,
		ISBN13:          9780439023480,
		Authors:         "Suzanne Collins",
		PublicationYear: 2008,
		Title:           "The Hunger Games (The Hunger Games, #1)",
		OriginalTitle:   "The Hunger Games",
	}

	t.Run("get by ISBN rejects short ISBN", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		rec := f.do(t, http.MethodGet, "/book/isbn/123", "", f.token(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ISBN must be a 13-digit number", decodeBody(t, rec)["message"])
	})

	t.Run("author search with no match", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		var gotAuthor string
		f.books.SearchByAuthorFn = func(ctx context.Context, author string, page domain.Page) (*domain.PageResult, error) {
			gotAuthor = author
			return nil, store.ErrBookNotFound
		}

		rec := f.do(t, http.MethodGet, "/book/author/J.%20R.%20R.%20Tolkien", "", f.token(t, 1))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Author not Found", decodeBody(t, rec)["message"])
		assert.Equal(t, "J. R. R. Tolkien", gotAuthor)
	})

	t.Run("create returns wire shape", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.books.Book = book

		body := `{"isbn13":9780439023480,"authors":"Suzanne Collins","title":"The Hunger Games",` +
			`"publication_year":2008,"ratings":{"rating_5":2}}`
		rec := f.do(t, http.MethodPost, "/book", body, f.token(t, 1))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		entry := decodeBody(t, rec)["entry"].(map[string]any)
		assert.EqualValues(t, 5, entry["id"])
		details := entry["IBook"].(map[string]any)
		assert.EqualValues(t, 2008, details["publication"])
		assert.Contains(t, details, "IRatings")
		assert.Contains(t, details, "IUrlIcon")
	})

	t.Run("create duplicate ISBN", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.books.Err = store.ErrISBNExists

		body := `{"isbn13":9780439023480,"authors":"A","title":"T","publication_year":2008}`
		rec := f.do(t, http.MethodPost, "/book", body, f.token(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Book with ISBN already exists", decodeBody(t, rec)["message"])
	})

	t.Run("rate with negative increment", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		rec := f.do(t, http.MethodPut, "/book/rate/5", `{"rating_1":-1}`, f.token(t, 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete missing ISBN", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.books.Err = store.ErrBookNotFound

		rec := f.do(t, http.MethodDelete, "/book/isbn/9780439023480", "", f.token(t, 1))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete series", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.books.Books = []domain.Book{*book}

		rec := f.do(t, http.MethodDelete, "/book/series/The%20Hunger%20Games", "", f.token(t, 1))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody(t, rec)["entries"], 1)
	})

	t.Run("unexpected failure hides details", func(t *testing.T) {
		t.Parallel()
		f := newRouterFixture(t)
		f.books.Err = errors.New("pq: connection refused to postgres://user:secret@db")

		rec := f.do(t, http.MethodGet, "/book/all", "", f.token(t, 1))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "server error - contact support", decodeBody(t, rec)["message"])
		assert.NotContains(t, rec.Body.String(), "secret")
	})
}
