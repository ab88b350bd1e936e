package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/booklist-api/internal/api/shared"
	"github.com/phrazzld/booklist-api/internal/domain"
)

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 response and returning false when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		msg := MsgMalformedJSON
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = MsgMissingInfo
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, validationMessage(err), err)
		return false
	}
	return true
}

// pathParam returns the unescaped value of a chi URL parameter.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

// pathInt parses a path parameter as a positive integer.
func pathInt(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(pathParam(r, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// pageFromQuery resolves the limit and offset query parameters.
func pageFromQuery(r *http.Request) domain.Page {
	q := r.URL.Query()
	return domain.NewPage(q.Get("limit"), q.Get("offset"))
}
