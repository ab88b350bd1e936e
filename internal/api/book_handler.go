package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/booklist-api/internal/api/shared"
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service"
)

// BookHandler serves the /book routes.
type BookHandler struct {
	books service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(books service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// respondWithPage writes a paginated listing or maps err.
func respondWithPage(w http.ResponseWriter, r *http.Request, result *domain.PageResult, err error, notFound string) {
	if err != nil {
		HandleAPIError(w, r, err, notFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// ListAll handles GET /book/all.
func (h *BookHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.books.List(r.Context(), pageFromQuery(r))
	respondWithPage(w, r, result, err, "")
}

// GetByAuthor handles GET /book/author/{author}.
func (h *BookHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	author := pathParam(r, "author")
	if strings.TrimSpace(author) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Author is required")
		return
	}
	result, err := h.books.SearchByAuthor(r.Context(), author, pageFromQuery(r))
	respondWithPage(w, r, result, err, "Author not Found")
}

// GetByTitle handles GET /book/title/{title}.
func (h *BookHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")
	if strings.TrimSpace(title) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return
	}
	result, err := h.books.SearchByTitle(r.Context(), title, pageFromQuery(r))
	respondWithPage(w, r, result, err, "Title not Found")
}

// GetByYear handles GET /book/year/{year}.
func (h *BookHandler) GetByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(strings.TrimSpace(pathParam(r, "year")))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Year must be a number", err)
		return
	}
	result, err := h.books.SearchByYear(r.Context(), year, pageFromQuery(r))
	respondWithPage(w, r, result, err, "No books found for year")
}

// GetByRating handles GET /book/rating/{rating}.
func (h *BookHandler) GetByRating(w http.ResponseWriter, r *http.Request) {
	const msg = "Rating must be a number between 1 and 5 inclusive"

	raw := strings.TrimSpace(pathParam(r, "rating"))
	if !domain.IsNumberProvided(raw) {
		shared.RespondWithError(w, r, http.StatusBadRequest, msg)
		return
	}
	rating, _ := strconv.ParseFloat(raw, 64)
	if rating < service.MinSearchRating || rating > service.MaxSearchRating {
		shared.RespondWithError(w, r, http.StatusBadRequest, msg)
		return
	}

	result, err := h.books.SearchByRating(r.Context(), rating, pageFromQuery(r))
	respondWithPage(w, r, result, err, "Rating not Found")
}

// GetByISBN handles GET /book/isbn/{isbn}.
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn, err := domain.ParseISBN13(pathParam(r, "isbn"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.books.GetByISBN(r.Context(), isbn)
	if err != nil {
		HandleAPIError(w, r, err, "ISBN not Found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BookEntryResponse{Entry: bookToResponse(book)})
}

// Create handles POST /book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.books.Create(r.Context(), req.toBook())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, BookEntryResponse{
		Entry:   bookToResponse(book),
		Message: MsgBookAdded,
	})
}

// Rate handles PUT /book/rate/{id}.
func (h *BookHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req RatingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.books.Rate(r.Context(), id, req.toIncrement())
	if err != nil {
		HandleAPIError(w, r, err, "Book not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BookEntryResponse{Entry: bookToResponse(book)})
}

// DeleteByISBN handles DELETE /book/isbn/{isbn}.
func (h *BookHandler) DeleteByISBN(w http.ResponseWriter, r *http.Request) {
	isbn, err := domain.ParseISBN13(pathParam(r, "isbn"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.books.DeleteByISBN(r.Context(), isbn)
	if err != nil {
		HandleAPIError(w, r, err, "ISBN not Found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BookEntryResponse{Entry: bookToResponse(book)})
}

// DeleteBySeries handles DELETE /book/series/{seriesName}.
func (h *BookHandler) DeleteBySeries(w http.ResponseWriter, r *http.Request) {
	series := pathParam(r, "seriesName")
	if strings.TrimSpace(series) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgMissingInfo)
		return
	}

	books, err := h.books.DeleteBySeries(r.Context(), series)
	if err != nil {
		HandleAPIError(w, r, err, "Series not Found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BookEntriesResponse{Entries: booksToResponse(books)})
}
