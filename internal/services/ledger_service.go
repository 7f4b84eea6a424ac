package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/bankofray/atm/internal/database"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const (
	queryUserCount      = `SELECT COUNT(*) FROM users WHERE username = ?`
	queryHashedPassword = `SELECT hashed_password FROM users WHERE username = ?`
	queryFirstName      = `SELECT first_name FROM users WHERE username = ?`
	queryAccountID      = `SELECT account_id FROM users WHERE username = ?`
	queryBalance        = `SELECT balance FROM accounts WHERE id = (SELECT account_id FROM users WHERE username = ?)`
	insertAccount       = `INSERT INTO accounts (balance) VALUES (?) RETURNING id`
	insertUser          = `INSERT INTO users (first_name, last_name, username, hashed_password, account_id) VALUES (?, ?, ?, ?, ?)`
	updateBalance       = `UPDATE accounts SET balance = ? WHERE id = (SELECT account_id FROM users WHERE username = ?)`
	deleteAccount       = `DELETE FROM accounts WHERE id = ?`
	deleteUser          = `DELETE FROM users WHERE username = ?`
)

// LedgerService is the SQL-backed Ledger for Postgres and SQLite.
type LedgerService struct {
	db     *sql.DB
	driver database.Driver
	hasher PasswordHasher
}

func NewLedgerService(db *sql.DB, driver database.Driver, hasher PasswordHasher) *LedgerService {
	return &LedgerService{
		db:     db,
		driver: driver,
		hasher: hasher,
	}
}

func (s *LedgerService) UserExists(ctx context.Context, username string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, s.rebind(queryUserCount), username).Scan(&count); err != nil {
		return false, s.classify("user exists", err)
	}
	return count > 0, nil
}

func (s *LedgerService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hashedPassword string
	err := s.db.QueryRowContext(ctx, s.rebind(queryHashedPassword), username).Scan(&hashedPassword)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, s.classify("authenticate", err)
	}
	return s.hasher.Verify(password, hashedPassword), nil
}

func (s *LedgerService) CreateUserWithAccount(ctx context.Context, firstName, lastName, username, passwordHash string) error {
	return s.withTx(ctx, "create user", func(tx *sql.Tx) error {
		var accountID int64
		if err := tx.QueryRowContext(ctx, s.rebind(insertAccount), decimal.Zero).Scan(&accountID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, s.rebind(insertUser), firstName, lastName, username, passwordHash, accountID)
		if err != nil {
			return err
		}

		log.Printf("[LEDGER] created user %s with account %d", username, accountID)
		return nil
	})
}

func (s *LedgerService) FirstName(ctx context.Context, username string) (string, error) {
	var firstName string
	err := s.db.QueryRowContext(ctx, s.rebind(queryFirstName), username).Scan(&firstName)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", s.classify("first name", err)
	}
	return firstName, nil
}

func (s *LedgerService) GetBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx, s.rebind(queryBalance), username).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, s.classify("get balance", err)
	}
	return balance, nil
}

func (s *LedgerService) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}

	result, err := s.db.ExecContext(ctx, s.rebind(updateBalance), balance.Round(2), username)
	if err != nil {
		return s.classify("set balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return s.classify("set balance", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (s *LedgerService) DeleteUserAndAccount(ctx context.Context, username string) error {
	return s.withTx(ctx, "delete user", func(tx *sql.Tx) error {
		var accountID int64
		err := tx.QueryRowContext(ctx, s.rebind(queryAccountID), username).Scan(&accountID)
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, s.rebind(deleteAccount), accountID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.rebind(deleteUser), username); err != nil {
			return err
		}

		log.Printf("[LEDGER] deleted user %s and account %d", username, accountID)
		return nil
	})
}

// withTx runs fn inside a transaction that is rolled back unless fn and the
// commit both succeed.
func (s *LedgerService) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.classify(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return s.classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		return s.classify(op, err)
	}
	return nil
}

// classify maps a driver error onto the ledger's error kinds. Failures are
// logged by the caller.
func (s *LedgerService) classify(op string, err error) error {
	if isDomainError(err) {
		return err
	}
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return storeErr(op, err)
}

// rebind rewrites ? placeholders into $n for Postgres.
func (s *LedgerService) rebind(query string) string {
	if s.driver != database.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
