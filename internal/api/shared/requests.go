package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/phrazzld/booklist-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// Global validator instance for reuse
	validate = newValidator()

	// ErrEmptyBody is returned by DecodeJSON for a request without a body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrMalformedJSON is returned by DecodeJSON for a body that is not
	// valid JSON or does not fit the target type.
	ErrMalformedJSON = errors.New("malformed JSON")
)

// newValidator registers the tags shared by the request DTOs: "phone" and
// "password" apply the domain rules, and field names in errors follow the
// json tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]func(string) bool{
		"phone":    domain.IsValidPhone,
		"password": domain.IsValidPassword,
	}
	for tag, rule := range rules {
		rule := rule
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}
	return v
}

// DecodeJSON decodes the request body into the given struct. The body is
// checked with Valid first because the decoder treats a truncated document
// as complete.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}
	if !json.Valid(data) {
		return ErrMalformedJSON
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

// ValidationField returns the json name of the first failing field and its
// tag, or empty strings when err is not a validator error.
func ValidationField(err error) (field, tag string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Tag()
	}
	return "", ""
}
