package mocks

import "github.com/phrazzld/booklist-api/internal/service/auth"

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash returns "hash:<password>" with salt "salt", and Compare
// accepts exactly those pairs.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, string, error)
	CompareFn func(saltedHash, salt, password string) error

	// HashErr is returned by the default Hash when set.
	HashErr error

	// HashCallCount and CompareCallCount track calls for verification.
	HashCallCount    int
	CompareCallCount int
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", "", m.HashErr
	}
	return "hash:" + password, "salt", nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(saltedHash, salt, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(saltedHash, salt, password)
	}
	if saltedHash != "hash:"+password || salt != "salt" {
		return auth.ErrPasswordMismatch
	}
	return nil
}
