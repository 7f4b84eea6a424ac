package services

import (
	"context"
	"sync"

	"github.com/bankofray/atm/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryLedger keeps users and accounts in process memory. Nothing survives a
// restart; it backs db.driver=memory and the session tests.
type MemoryLedger struct {
	mu       sync.RWMutex
	hasher   PasswordHasher
	users    map[string]*models.User
	accounts map[int64]*models.Account
	nextID   int64
}

func NewMemoryLedger(hasher PasswordHasher) *MemoryLedger {
	return &MemoryLedger{
		hasher:   hasher,
		users:    make(map[string]*models.User),
		accounts: make(map[int64]*models.Account),
	}
}

func (m *MemoryLedger) UserExists(_ context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[username]
	return ok, nil
}

func (m *MemoryLedger) Authenticate(_ context.Context, username, password string) (bool, error) {
	m.mu.RLock()
	user, ok := m.users[username]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return m.hasher.Verify(password, user.HashedPassword), nil
}

func (m *MemoryLedger) CreateUserWithAccount(_ context.Context, firstName, lastName, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return ErrUsernameTaken
	}

	m.nextID++
	m.accounts[m.nextID] = &models.Account{ID: m.nextID, Balance: decimal.Zero}
	m.users[username] = &models.User{
		Username:       username,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: passwordHash,
		AccountID:      m.nextID,
	}
	return nil
}

func (m *MemoryLedger) FirstName(_ context.Context, username string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return user.FirstName, nil
}

func (m *MemoryLedger) GetBalance(_ context.Context, username string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, err := m.accountFor(username)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (m *MemoryLedger) SetBalance(_ context.Context, username string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	account, err := m.accountFor(username)
	if err != nil {
		return err
	}
	account.Balance = balance.Round(2)
	return nil
}

func (m *MemoryLedger) DeleteUserAndAccount(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return ErrUserNotFound
	}
	delete(m.accounts, user.AccountID)
	delete(m.users, username)
	return nil
}

// accountFor must be called with mu held.
func (m *MemoryLedger) accountFor(username string) (*models.Account, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	account, ok := m.accounts[user.AccountID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return account, nil
}
