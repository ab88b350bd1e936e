package service

import "errors"

// Sentinel errors returned by the services. Callers check them with errors.Is.
var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch indicates the new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")

	// ErrSamePassword indicates the new password equals the current one.
	ErrSamePassword = errors.New("new password must differ from the old password")

	// ErrIncorrectPassword indicates the supplied current password is wrong.
	ErrIncorrectPassword = errors.New("old password is incorrect")

	// ErrIdentityNotFound indicates no account matches the username, email
	// and phone given to ForgotPassword.
	ErrIdentityNotFound = errors.New("no account matches the provided details")
)
