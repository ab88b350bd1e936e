package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStringProvided(t *testing.T) {
	assert.True(t, IsStringProvided("a"))
	assert.False(t, IsStringProvided(""))
	assert.False(t, IsStringProvided(" \t\n"))
}

func TestIsNumberProvided(t *testing.T) {
	assert.True(t, IsNumberProvided("42"))
	assert.True(t, IsNumberProvided(" 3.5 "))
	assert.False(t, IsNumberProvided(""))
	assert.False(t, IsNumberProvided("abc"))
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"secret1!", true},
		{"Longer-Passw0rd", true},
		{"short1!", false},
		{"nodigits!!", false},
		{"nospecial1", false},
		{"waytoolongpassword1234567!", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIsWithinLength(t *testing.T) {
	assert.True(t, IsWithinLength("", 3))
	assert.True(t, IsWithinLength("ééé", 3))
	assert.False(t, IsWithinLength("abcd", 3))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("2065550100"))
	assert.True(t, IsValidPhone("+44 (20) 7946-0958"))
	assert.False(t, IsValidPhone("555-0100"))
	assert.False(t, IsValidPhone("206555010a"))
	assert.False(t, IsValidPhone("1234567890123456"))
	assert.True(t, IsValidPhone("+1 (206) 555-0100"))
	assert.False(t, IsValidPhone("+1 (206) 555 - 0100 - - - - - - - -"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("reader@example.com"))
	assert.False(t, IsValidEmail("reader@"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("bookworm"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("book worm"))
}

func TestParseISBN13(t *testing.T) {
	isbn, err := ParseISBN13("9780439023480")
	assert.NoError(t, err)
	assert.Equal(t, int64(9780439023480), isbn)

	for _, raw := range []string{"", "978043902348", "97804390234801", "97804390234x0", "-978043902348"} {
		_, err := ParseISBN13(raw)
		assert.True(t, errors.Is(err, ErrInvalidISBN), "input %q", raw)
	}
}
