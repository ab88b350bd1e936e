package mocks

import (
	"context"

	"github.com/phrazzld/booklist-api/internal/service"
)

// MockAccountService implements service.AccountService for handler tests.
type MockAccountService struct {
	RegisterFn       func(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	LoginFn          func(ctx context.Context, email, password string) (*service.AuthResult, error)
	ChangePasswordFn func(ctx context.Context, accountID int64, in service.ChangePasswordInput) error
	ForgotPasswordFn func(ctx context.Context, in service.ForgotPasswordInput) error

	// Default values used when the functions above are nil
	Result *service.AuthResult
	Err    error
}

// Register implements service.AccountService.
func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, in)
	}
	return m.Result, m.Err
}

// Login implements service.AccountService.
func (m *MockAccountService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.Result, m.Err
}

// ChangePassword implements service.AccountService.
func (m *MockAccountService) ChangePassword(ctx context.Context, accountID int64, in service.ChangePasswordInput) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, accountID, in)
	}
	return m.Err
}

// ForgotPassword implements service.AccountService.
func (m *MockAccountService) ForgotPassword(ctx context.Context, in service.ForgotPasswordInput) error {
	if m.ForgotPasswordFn != nil {
		return m.ForgotPasswordFn(ctx, in)
	}
	return m.Err
}

// compile-time check
var _ service.AccountService = (*MockAccountService)(nil)
