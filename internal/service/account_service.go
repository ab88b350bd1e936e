package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"github.com/phrazzld/booklist-api/internal/store"
)

// RegisterInput carries the registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
	Role      int
}

// ForgotPasswordInput identifies an account by all three unique fields and
// carries the replacement password.
type ForgotPasswordInput struct {
	Username           string
	Email              string
	Phone              string
	NewPassword        string
	ConfirmNewPassword string
}

// ChangePasswordInput carries the fields of a password change.
type ChangePasswordInput struct {
	OldPassword        string
	NewPassword        string
	ConfirmNewPassword string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	Account     domain.Account
}

// AccountService provides registration, login and password management.
type AccountService interface {
	// Register creates the account and its credential in one transaction
	// and returns an access token for it.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Login verifies email and password and returns an access token.
	// Returns ErrInvalidCredentials when either is wrong.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// ChangePassword replaces the password of accountID after verifying the old one.
	ChangePassword(ctx context.Context, accountID int64, in ChangePasswordInput) error

	// ForgotPassword resets the password of the account matching the
	// username, email and phone in the input.
	ForgotPassword(ctx context.Context, in ForgotPasswordInput) error
}

type accountService struct {
	accounts store.AccountStore
	hasher   auth.PasswordHasher
	tokens   auth.JWTService
	db       *sql.DB
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		db:       db,
		logger:   logger.With("component", "account_service"),
	}
}

func validatePassword(field, password string) error {
	if !domain.IsValidPassword(password) {
		return domain.NewValidationError(field,
			"must be 8 to 24 characters with at least one digit and one of "+domain.PasswordSpecialChars,
			domain.ErrInvalidPassword)
	}
	return nil
}

func (s *accountService) issueToken(ctx context.Context, account domain.Account) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(ctx, auth.Subject{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{AccessToken: token, Account: account}, nil
}

// Register implements AccountService.
func (s *accountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	account, err := domain.NewAccount(in.FirstName, in.LastName, in.Username, in.Email, in.Phone, in.Role)
	if err != nil {
		return nil, err
	}
	if err := validatePassword("password", in.Password); err != nil {
		return nil, err
	}

	saltedHash, salt, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	credential := &domain.Credential{SaltedHash: saltedHash, Salt: salt}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.accounts.WithTx(tx).Create(ctx, account, credential)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration rejected: identity already in use", "error", err)
			return nil, err
		}
		s.logger.Error("failed to register account", "error", err)
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("account registered", "account_id", account.ID, "role", account.Role)
	return s.issueToken(ctx, *account)
}

// Login implements AccountService.
func (s *accountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if !domain.IsStringProvided(email) || !domain.IsStringProvided(password) {
		return nil, domain.NewValidationError("credentials", "email and password are required", domain.ErrEmptyContent)
	}

	found, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.hasher.Compare(found.Credential.SaltedHash, found.Credential.Salt, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Debug("login failed: credentials did not match", "account_id", found.Account.ID)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.issueToken(ctx, found.Account)
}

// ChangePassword implements AccountService.
func (s *accountService) ChangePassword(ctx context.Context, accountID int64, in ChangePasswordInput) error {
	if !domain.IsStringProvided(in.OldPassword) {
		return domain.NewValidationError("oldPassword", "is required", domain.ErrEmptyContent)
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return ErrPasswordMismatch
	}
	if err := validatePassword("newPassword", in.NewPassword); err != nil {
		return err
	}
	if in.NewPassword == in.OldPassword {
		return ErrSamePassword
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)

		current, err := accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if err := s.hasher.Compare(current.Credential.SaltedHash, current.Credential.Salt, in.OldPassword); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return ErrIncorrectPassword
			}
			return fmt.Errorf("failed to verify password: %w", err)
		}

		saltedHash, salt, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		return accounts.UpdateCredential(ctx, &domain.Credential{
			AccountID:  accountID,
			SaltedHash: saltedHash,
			Salt:       salt,
		})
	})
	if err != nil {
		if errors.Is(err, ErrIncorrectPassword) || store.IsNotFoundError(err) {
			s.logger.Debug("password change rejected", "account_id", accountID, "error", err)
			return err
		}
		s.logger.Error("failed to change password", "account_id", accountID, "error", err)
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("password changed", "account_id", accountID)
	return nil
}

// ForgotPassword implements AccountService.
func (s *accountService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	switch {
	case !domain.IsStringProvided(in.Username):
		return domain.NewValidationError("username", "is required", domain.ErrEmptyContent)
	case !domain.IsValidEmail(strings.TrimSpace(in.Email)):
		return domain.NewValidationError("email", "is not a valid email address", domain.ErrInvalidEmail)
	case !domain.IsValidPhone(in.Phone):
		return domain.NewValidationError("phone", "must contain 10 to 15 digits", domain.ErrInvalidPhone)
	case in.NewPassword != in.ConfirmNewPassword:
		return ErrPasswordMismatch
	}
	if err := validatePassword("newPassword", in.NewPassword); err != nil {
		return err
	}

	var accountID int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)

		account, err := accounts.FindByIdentity(ctx,
			strings.TrimSpace(in.Username),
			strings.ToLower(strings.TrimSpace(in.Email)),
			strings.TrimSpace(in.Phone),
		)
		if err != nil {
			if errors.Is(err, store.ErrAccountNotFound) {
				return ErrIdentityNotFound
			}
			return err
		}
		accountID = account.ID

		saltedHash, salt, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		return accounts.UpdateCredential(ctx, &domain.Credential{
			AccountID:  account.ID,
			SaltedHash: saltedHash,
			Salt:       salt,
		})
	})
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			s.logger.Debug("password reset rejected: no matching account")
			return err
		}
		s.logger.Error("failed to reset password", "error", err)
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("password reset", "account_id", accountID)
	return nil
}
