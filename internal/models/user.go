package models

// User is a registered ATM customer. Names are stored upper-cased and the
// username is case-sensitive.
type User struct {
	Username       string `json:"username" db:"username"`
	FirstName      string `json:"first_name" db:"first_name"`
	LastName       string `json:"last_name" db:"last_name"`
	HashedPassword string `json:"-" db:"hashed_password"`
	AccountID      int64  `json:"account_id" db:"account_id"`
}
