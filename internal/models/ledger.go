package models

import (
	"github.com/shopspring/decimal"
)

// Account is owned by exactly one User. Balance is never negative.
type Account struct {
	ID      int64           `json:"id" db:"id"`
	Balance decimal.Decimal `json:"balance" db:"balance"` // two decimal places
}
