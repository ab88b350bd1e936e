package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Password rules shared by registration, password change and reset.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 24

	// PasswordSpecialChars lists the characters that count as "special".
	PasswordSpecialChars = "!@#$%^&*()_+=-"

	MinPhoneDigits = 10
	MaxPhoneDigits = 15
	// MaxPhoneLength bounds the formatted number, separators included.
	MaxPhoneLength = 32

	// MaxTextLength is the size of the account name and email columns.
	MaxTextLength = 255

	MinUsernameLength = 3
	MaxUsernameLength = 32

	minISBN13 = 1_000_000_000_000
	maxISBN13 = 9_999_999_999_999
)

var (
	validate = validator.New()

	phoneCharsRegex = regexp.MustCompile(`^\+?[0-9 ()\-]+$`)
)

// IsStringProvided reports whether s holds something other than whitespace.
func IsStringProvided(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether s has at most max characters.
func IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsNumberProvided reports whether s parses as a number.
func IsNumberProvided(s string) bool {
	if !IsStringProvided(s) {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// IsValidEmail reports whether email is a well formed address.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// IsValidPhone accepts digits with an optional leading '+' and the usual
// separators, as long as the number of digits is between 10 and 15 and the
// whole string fits in MaxPhoneLength.
func IsValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if len(phone) > MaxPhoneLength || !phoneCharsRegex.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= MinPhoneDigits && digits <= MaxPhoneDigits
}

// IsValidPassword requires 8 to 24 characters including at least one digit
// and one character from PasswordSpecialChars.
func IsValidPassword(password string) bool {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}
	return strings.ContainsAny(password, "0123456789") &&
		strings.ContainsAny(password, PasswordSpecialChars)
}

// IsValidUsername requires 3 to 32 characters without whitespace.
func IsValidUsername(username string) bool {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return false
	}
	return !strings.ContainsFunc(username, unicode.IsSpace)
}

// IsValidISBN13 reports whether isbn has exactly 13 digits.
func IsValidISBN13(isbn int64) bool {
	return isbn >= minISBN13 && isbn <= maxISBN13
}

// ParseISBN13 parses a path or query value into an ISBN.
func ParseISBN13(s string) (int64, error) {
	isbn, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || !IsValidISBN13(isbn) {
		return 0, NewValidationError("isbn", "must be a 13-digit number", ErrInvalidISBN)
	}
	return isbn, nil
}
