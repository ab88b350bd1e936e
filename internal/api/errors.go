package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/booklist-api/internal/api/shared"
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"github.com/phrazzld/booklist-api/internal/store"
)

// Client-facing messages shared by several handlers.
const (
	MsgMissingInfo     = "Missing required information"
	MsgMalformedJSON   = "malformed JSON in parameters"
	MsgServerError     = "server error - contact support"
	MsgInvalidCreds    = "Invalid Credentials"
	MsgInvalidISBN     = "ISBN must be a 13-digit number"
	MsgPasswordUpdated = "Password updated successfully"
	MsgBookAdded       = "Book added successfully"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Anything
// unrecognized is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflicts are reported as 400 like any other rejected input.
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrSamePassword),
		errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrIdentityNotFound):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Internal
// details never leak; unknown errors get the generic server error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgServerError
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidISBN):
		return MsgInvalidISBN
	case errors.As(err, &verr):
		return invalidFieldMessage(verr.Field)

	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCreds
	case errors.Is(err, service.ErrPasswordMismatch):
		return "New password and confirmation do not match"
	case errors.Is(err, service.ErrSamePassword):
		return "New password must be different from the old password"
	case errors.Is(err, service.ErrIncorrectPassword):
		return "Invalid or missing old password - please refer to documentation"
	case errors.Is(err, service.ErrIdentityNotFound):
		return "User does not exist within the database with the provided inputs"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username exists"
	case errors.Is(err, store.ErrEmailExists):
		return "Email exists"
	case errors.Is(err, store.ErrPhoneExists):
		return "Phone number exists"
	case errors.Is(err, store.ErrISBNExists):
		return "Book with ISBN already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, auth.ErrMissingToken):
		return "Auth token is not supplied"
	case MapErrorToStatusCode(err) == http.StatusForbidden:
		return "Token is not valid"

	default:
		return MsgServerError
	}
}

func invalidFieldMessage(field string) string {
	if field == "" {
		return MsgMissingInfo
	}
	return fmt.Sprintf("Invalid or missing %s - please refer to documentation", field)
}

// validationMessage turns a request validation failure into a client message.
// An absent required field reports the generic missing-information text.
func validationMessage(err error) string {
	field, tag := shared.ValidationField(err)
	if field == "" || tag == "required" {
		return MsgMissingInfo
	}
	return invalidFieldMessage(field)
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error. notFoundMessage, when set, replaces the message of a 404.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusNotFound && notFoundMessage != "" {
		message = notFoundMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
