package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsAccount represents a named savings pot within a household.
type SavingsAccount struct {
	ID             string
	HouseholdID    string
	Name           string
	StartingAmount decimal.Decimal
	// CurrentValue is the latest manually asserted market value. When not
	// asserted it is treated as equal to contributed capital.
	CurrentValue decimal.NullDecimal
	CreatedAt    time.Time
}

// SavingsSnapshot is an append-only record of an account's capital and value
// at the moment of a mutation. Snapshots are never updated or deleted.
type SavingsSnapshot struct {
	ID          string
	HouseholdID string
	AccountID   string
	Capital     decimal.Decimal
	Value       decimal.Decimal
	CreatedAt   time.Time
}
