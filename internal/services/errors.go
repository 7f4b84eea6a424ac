package services

import (
	"errors"
	"fmt"
)

// Domain errors. These describe a bad request from the session and are
// safe to show to the user.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrNegativeBalance = errors.New("balance cannot be negative")

	ErrNotANumber     = errors.New("amount is not a number")
	ErrNotPositive    = errors.New("amount must be greater than zero")
	ErrSubCent        = errors.New("amount has more than two decimal places")
	ErrExceedsBalance = errors.New("amount exceeds balance")
)

// ErrStore matches every infrastructure failure returned by a Ledger.
var ErrStore = errors.New("ledger unavailable")

// StoreError wraps a datastore failure with the ledger operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// isDomainError reports whether err is already classified for the caller.
func isDomainError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrNegativeBalance) ||
		errors.Is(err, ErrStore)
}
