package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength = 255
	MaxAmount     = "1000000000000" // 1 trillion
)

// ValidateHouseholdID validates the household grouping key.
func ValidateHouseholdID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingHousehold
	}

	return nil
}

// ValidateName validates a user-supplied name (savings account, category).
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateAmount validates a transaction or savings amount.
// Zero is allowed; sign carries no meaning and negatives are rejected.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateTransaction validates the invariants of a transaction record.
func ValidateTransaction(t *Transaction) error {
	if err := ValidateHouseholdID(t.HouseholdID); err != nil {
		return err
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, t.Type)
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.Type == TypeSavingDeposit && t.SavingsAccountID == "" {
		return ErrMissingSavingsAccount
	}

	return nil
}
