package auth

import (
	"context"
	"time"
)

// TokenTypeAccess marks tokens that grant access to the protected routes.
const TokenTypeAccess = "access"

// Subject identifies the account a token is issued for.
type Subject struct {
	AccountID int64
	Username  string
	Role      int
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for subject.
	GenerateToken(ctx context.Context, subject Subject) (string, error)

	// ValidateToken validates the access token and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	AccountID int64
	Username  string
	Role      int
	TokenType string

	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
