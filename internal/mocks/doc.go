// Package mocks provides hand-written test doubles for the store, auth and
// service interfaces.
//
// Most mocks expose one function field per method (GetByEmailFn, HashFn,
// ...) and fall back to the default values on the struct when the field is
// nil:
//
//	accounts := &mocks.MockAccountStore{
//	    GetByEmailFn: func(ctx context.Context, email string) (*domain.AccountWithCredential, error) {
//	        return nil, store.ErrAccountNotFound
//	    },
//	}
//
// MockBookStore is built on testify's mock.Mock instead, for tests that
// want to assert exact call arguments with On/AssertExpectations.
package mocks
