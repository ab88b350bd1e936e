package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/mocks"
	"github.com/phrazzld/booklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testISBN int64 = 9780439023480

func testBook() *domain.Book {
	return &domain.Book{
		ID:              1,
		ISBN13:          testISBN,
		Authors:         "Suzanne Collins",
		PublicationYear: 2008,
		OriginalTitle:   "The Hunger Games",
		Title:           "The Hunger Games (The Hunger Games, #1)",
		Ratings:         domain.Ratings{Average: 4.5, Count: 2, FourStar: 1, FiveStar: 1},
	}
}

// bookRouter mounts the handler the same way the server does so URL
// parameters resolve.
func bookRouter(books *mocks.MockBookService) http.Handler {
	h := NewBookHandler(books)
	r := chi.NewRouter()
	r.Get("/book/all", h.ListAll)
	r.Get("/book/author/{author}", h.GetByAuthor)
	r.Get("/book/year/{year}", h.GetByYear)
	r.Get("/book/rating/{rating}", h.GetByRating)
	r.Get("/book/isbn/{isbn}", h.GetByISBN)
	r.Post("/book", h.Create)
	r.Put("/book/rate/{id}", h.Rate)
	r.Delete("/book/isbn/{isbn}", h.DeleteByISBN)
	r.Delete("/book/series/{seriesName}", h.DeleteBySeries)
	return r
}

func TestBookHandler_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantMessage string
	}{
		{"short isbn", http.MethodGet, "/book/isbn/12345", "", MsgInvalidISBN},
		{"non-numeric isbn", http.MethodDelete, "/book/isbn/abc", "", MsgInvalidISBN},
		{"rating too high", http.MethodGet, "/book/rating/6", "", "Rating must be a number between 1 and 5 inclusive"},
		{"rating not a number", http.MethodGet, "/book/rating/five", "", "Rating must be a number between 1 and 5 inclusive"},
		{"year not a number", http.MethodGet, "/book/year/soon", "", "Year must be a number"},
		{"rate bad id", http.MethodPut, "/book/rate/0", `{"rating_1":1}`, "Invalid or missing id - please refer to documentation"},
		{"rate negative bucket", http.MethodPut, "/book/rate/1", `{"rating_3":-1}`, "Invalid or missing rating_3 - please refer to documentation"},
		{"create without title", http.MethodPost, "/book", `{"isbn13":9780439023480,"authors":"A"}`, MsgMissingInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			books := &mocks.MockBookService{}
			rec := httptest.NewRecorder()
			bookRouter(books).ServeHTTP(rec, jsonRequest(tt.method, tt.target, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMessage, responseMessage(t, rec))
		})
	}
}

func TestBookHandler_ListAll(t *testing.T) {
	t.Parallel()

	books := &mocks.MockBookService{
		ListFn: func(_ context.Context, page domain.Page) (*domain.PageResult, error) {
			return &domain.PageResult{Books: []domain.Book{*testBook()}, Total: 25, Page: page}, nil
		},
	}
	rec := httptest.NewRecorder()
	bookRouter(books).ServeHTTP(rec, jsonRequest(http.MethodGet, "/book/all?limit=10&offset=10", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var body BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 1)
	assert.Equal(t, testISBN, body.Entries[0].Book.ISBN13)
	assert.Equal(t, int64(25), body.Pagination.TotalRecords)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Equal(t, 10, body.Pagination.Offset)
	assert.Equal(t, 20, body.Pagination.NextPage)
}

func TestBookHandler_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		target      string
		wantMessage string
	}{
		{"author", http.MethodGet, "/book/author/nobody", "Author not Found"},
		{"isbn", http.MethodGet, fmt.Sprintf("/book/isbn/%d", testISBN), "ISBN not Found"},
		{"delete isbn", http.MethodDelete, fmt.Sprintf("/book/isbn/%d", testISBN), "ISBN not Found"},
		{"series", http.MethodDelete, "/book/series/Nothing", "Series not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			books := &mocks.MockBookService{Err: store.ErrBookNotFound}
			rec := httptest.NewRecorder()
			bookRouter(books).ServeHTTP(rec, jsonRequest(tt.method, tt.target, ""))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.wantMessage, responseMessage(t, rec))
		})
	}
}

func TestBookHandler_Create(t *testing.T) {
	t.Parallel()

	var got domain.Book
	books := &mocks.MockBookService{
		CreateFn: func(_ context.Context, book domain.Book) (*domain.Book, error) {
			got = book
			created := *testBook()
			return &created, nil
		},
	}
	body := `{"isbn13":9780439023480,"authors":"Suzanne Collins","title":"The Hunger Games",` +
		`"original_title":"The Hunger Games","publication_year":2008,"ratings":{"rating_4":1,"rating_5":1}}`

	rec := httptest.NewRecorder()
	bookRouter(books).ServeHTTP(rec, jsonRequest(http.MethodPost, "/book", body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, testISBN, got.ISBN13)
	assert.Equal(t, int64(1), got.Ratings.FourStar)
	assert.Equal(t, int64(1), got.Ratings.FiveStar)

	var resp BookEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgBookAdded, resp.Message)
	assert.Equal(t, int64(1), resp.Entry.ID)

	t.Run("duplicate isbn", func(t *testing.T) {
		t.Parallel()
		books := &mocks.MockBookService{Err: store.ErrISBNExists}
		rec := httptest.NewRecorder()
		bookRouter(books).ServeHTTP(rec, jsonRequest(http.MethodPost, "/book", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Book with ISBN already exists", responseMessage(t, rec))
	})
}

func TestBookHandler_Rate(t *testing.T) {
	t.Parallel()

	var gotID int64
	var gotInc domain.RatingIncrement
	books := &mocks.MockBookService{
		RateFn: func(_ context.Context, id int64, inc domain.RatingIncrement) (*domain.Book, error) {
			gotID, gotInc = id, inc
			return testBook(), nil
		},
	}
	rec := httptest.NewRecorder()
	bookRouter(books).ServeHTTP(rec, jsonRequest(http.MethodPut, "/book/rate/1", `{"rating_5":2}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(1), gotID)
	assert.Equal(t, int64(2), gotInc.FiveStar)
	assert.Zero(t, gotInc.OneStar)
}

func TestBookHandler_DeleteBySeries(t *testing.T) {
	t.Parallel()

	var gotSeries string
	books := &mocks.MockBookService{
		DeleteBySeriesFn: func(_ context.Context, series string) ([]domain.Book, error) {
			gotSeries = series
			return []domain.Book{*testBook()}, nil
		},
	}
	rec := httptest.NewRecorder()
	bookRouter(books).ServeHTTP(rec, jsonRequest(http.MethodDelete, "/book/series/The%20Hunger%20Games", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The Hunger Games", gotSeries)

	var resp BookEntriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 1)
}
