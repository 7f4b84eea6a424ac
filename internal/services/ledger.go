package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// Ledger is the persistence boundary for users and their accounts. All
// lookups are keyed by username.
//
// Infrastructure failures are returned as *StoreError (errors.Is(err,
// ErrStore)); everything else is one of the domain errors in errors.go.
type Ledger interface {
	UserExists(ctx context.Context, username string) (bool, error)
	// Authenticate compares password with the stored hash. An unknown
	// username is reported as (false, nil).
	Authenticate(ctx context.Context, username, password string) (bool, error)
	// CreateUserWithAccount stores the user and a zero-balance account
	// atomically. Returns ErrUsernameTaken on a duplicate.
	CreateUserWithAccount(ctx context.Context, firstName, lastName, username, passwordHash string) error
	FirstName(ctx context.Context, username string) (string, error)
	GetBalance(ctx context.Context, username string) (decimal.Decimal, error)
	SetBalance(ctx context.Context, username string, balance decimal.Decimal) error
	// DeleteUserAndAccount removes the account and then the user in one
	// transaction.
	DeleteUserAndAccount(ctx context.Context, username string) error
}
