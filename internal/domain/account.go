package domain

import "strings"

// Account roles are stored as small integers in account_role.
const (
	MinRole = 1
	MaxRole = 5

	// RoleReader is assigned when registration does not specify a role.
	RoleReader = 1
	// RoleAdmin may manage the whole catalog.
	RoleAdmin = 5
)

// Account is a registered user of the catalog.
type Account struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      int    `json:"role"`
}

// Credential is the salted hash stored for an account, one per account.
type Credential struct {
	AccountID  int64
	SaltedHash string
	Salt       string
}

// AccountWithCredential is what a login lookup returns.
type AccountWithCredential struct {
	Account    Account
	Credential Credential
}

// NewAccount normalizes and validates the registration fields.
// The ID is assigned by the store.
func NewAccount(firstName, lastName, username, email, phone string, role int) (*Account, error) {
	a := &Account{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Username:  strings.TrimSpace(username),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Role:      role,
	}
	if a.Role == 0 {
		a.Role = RoleReader
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks every account field.
func (a *Account) Validate() error {
	switch {
	case !IsStringProvided(a.FirstName):
		return NewValidationError("firstname", "is required", ErrEmptyContent)
	case !IsWithinLength(a.FirstName, MaxTextLength):
		return NewValidationError("firstname", "must be at most 255 characters", ErrContentTooLong)
	case !IsStringProvided(a.LastName):
		return NewValidationError("lastname", "is required", ErrEmptyContent)
	case !IsWithinLength(a.LastName, MaxTextLength):
		return NewValidationError("lastname", "must be at most 255 characters", ErrContentTooLong)
	case !IsValidUsername(a.Username):
		return NewValidationError("username", "must be 3 to 32 characters without spaces", nil)
	case !IsValidEmail(a.Email) || !IsWithinLength(a.Email, MaxTextLength):
		return NewValidationError("email", "is not a valid email address", ErrInvalidEmail)
	case !IsValidPhone(a.Phone):
		return NewValidationError("phone", "must contain 10 to 15 digits", ErrInvalidPhone)
	case a.Role < MinRole || a.Role > MaxRole:
		return NewValidationError("role", "must be between 1 and 5", ErrInvalidRole)
	}
	return nil
}
