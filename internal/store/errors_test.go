package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrAccountNotFound", ErrAccountNotFound, true},
		{"ErrCredentialNotFound", ErrCredentialNotFound, true},
		{"wrapped ErrBookNotFound", fmt.Errorf("failed to find book: %w", ErrBookNotFound), true},
		{"ErrDuplicate", ErrDuplicate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"ErrDuplicate", ErrDuplicate, true},
		{"ErrUsernameExists", ErrUsernameExists, true},
		{"ErrEmailExists", ErrEmailExists, true},
		{"ErrPhoneExists", ErrPhoneExists, true},
		{"wrapped ErrISBNExists", fmt.Errorf("insert: %w", ErrISBNExists), true},
		{"ErrNotFound", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestEntityErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.Is(ErrEmailExists, ErrUsernameExists))
	assert.False(t, errors.Is(ErrBookNotFound, ErrAccountNotFound))
	assert.True(t, errors.Is(ErrISBNExists, ErrDuplicate))
}
