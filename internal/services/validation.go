package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 15
	PasswordMinLength = 5
	PasswordMaxLength = 15
)

var (
	alphabeticPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
	letterPattern     = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern      = regexp.MustCompile(`[0-9]`)
)

// IsAlphabetic reports whether s is one or more ASCII letters.
func IsAlphabetic(s string) bool {
	return alphabeticPattern.MatchString(s)
}

// IsValidUsername checks the length rule only; any characters are allowed.
func IsValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= UsernameMinLength && n <= UsernameMaxLength
}

// IsValidPassword requires at least one letter, one digit and a length
// between 5 and 15. Other characters are permitted.
func IsValidPassword(s string) bool {
	if !letterPattern.MatchString(s) || !digitPattern.MatchString(s) {
		return false
	}
	n := utf8.RuneCountInString(s)
	return n >= PasswordMinLength && n <= PasswordMaxLength
}

// IsPositiveNumber reports whether s parses as a decimal greater than zero.
func IsPositiveNumber(s string) bool {
	d, err := parseNumber(s)
	return err == nil && d.IsPositive()
}

// ParseAmount parses a monetary amount typed at the ATM. The value is kept
// exactly as typed; more than two decimal places is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseNumber(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, ErrSubCent
	}
	return d, nil
}

func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// CheckWithdrawal rejects withdrawals larger than the current balance.
func CheckWithdrawal(amount, balance decimal.Decimal) error {
	if amount.GreaterThan(balance) {
		return ErrExceedsBalance
	}
	return nil
}

// SignupRequest is the fully collected signup form.
type SignupRequest struct {
	FirstName string `validate:"required,alpha"`
	LastName  string `validate:"required,alpha"`
	Username  string `validate:"required,min=3,max=15"`
	Password  string `validate:"required,atm_password"`
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("atm_password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	return &ValidationHelper{
		validator: v,
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// FieldErrors flattens validator errors into field -> failed tag messages.
// It returns nil for errors that did not come from the validator.
func FieldErrors(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		details[fe.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
	}
	return details
}
