package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// SaltBytes is the number of random bytes in a generated salt.
const SaltBytes = 32

// argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// bcryptPrefixes identify hashes written by older tooling, which stored a
// bcrypt hash and left the salt column empty.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// GenerateSalt returns n random bytes, hex encoded.
func GenerateSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateHash derives the salted hash stored for password, hex encoded.
func GenerateHash(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}

// PasswordHasher creates and verifies salted password hashes.
type PasswordHasher interface {
	// Hash returns a fresh salt and the salted hash of password.
	Hash(password string) (saltedHash, salt string, err error)

	// Compare returns nil when password produces saltedHash under salt,
	// ErrPasswordMismatch otherwise.
	Compare(saltedHash, salt, password string) error
}

// Argon2Hasher implements PasswordHasher with argon2id and accepts legacy
// bcrypt hashes on Compare.
type Argon2Hasher struct{}

var _ PasswordHasher = (*Argon2Hasher)(nil)

// NewArgon2Hasher creates a new Argon2Hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Hash implements PasswordHasher.
func (h *Argon2Hasher) Hash(password string) (string, string, error) {
	salt, err := GenerateSalt(SaltBytes)
	if err != nil {
		return "", "", err
	}
	return GenerateHash(password, salt), salt, nil
}

// Compare implements PasswordHasher.
func (h *Argon2Hasher) Compare(saltedHash, salt, password string) error {
	if isBcryptHash(saltedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(saltedHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}

	provided := GenerateHash(password, salt)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(saltedHash)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func isBcryptHash(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
