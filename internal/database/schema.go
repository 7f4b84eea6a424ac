package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// users.account_id is checked at commit so an account can be removed before
// its owner inside one transaction.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		balance NUMERIC(15, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(15) PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		account_id BIGINT NOT NULL UNIQUE REFERENCES accounts (id) DEFERRABLE INITIALLY DEFERRED
	)`,
}

// Balances are kept as TEXT in SQLite so they round-trip through
// decimal.Decimal without passing through a float.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		balance TEXT NOT NULL DEFAULT '0'
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		hashed_password TEXT NOT NULL,
		account_id INTEGER NOT NULL UNIQUE REFERENCES accounts (id) DEFERRABLE INITIALLY DEFERRED
	)`,
}

// EnsureSchema creates the users and accounts tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var statements []string
	switch driver {
	case DriverPostgres:
		statements = postgresSchema
	case DriverSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	log.Printf("[DB] schema ready (%s)", driver)
	return nil
}
