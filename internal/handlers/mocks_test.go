package handlers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) UserExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Authenticate(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) CreateUserWithAccount(ctx context.Context, firstName, lastName, username, passwordHash string) error {
	args := m.Called(ctx, firstName, lastName, username, passwordHash)
	return args.Error(0)
}

func (m *MockLedger) FirstName(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) GetBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedger) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	args := m.Called(ctx, username, balance)
	return args.Error(0)
}

func (m *MockLedger) DeleteUserAndAccount(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}
