package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction's direction.
type TransactionType string

const (
	TypeIncome        TransactionType = "income"
	TypeExpense       TransactionType = "expense"
	TypeSavingDeposit TransactionType = "saving_deposit"
)

// Category labels applied during report grouping.
const (
	CategoryOther   = "Other"
	CategorySavings = "Savings"
)

// Transaction represents a single household money movement.
// Amount is always non-negative; direction is derived from Type.
type Transaction struct {
	ID               string
	HouseholdID      string
	Type             TransactionType
	Amount           decimal.Decimal
	Category         string
	Description      string
	Date             time.Time
	SavingsAccountID string
	CreatedAt        time.Time
}

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeSavingDeposit:
		return true
	}

	return false
}

// IsOutflow reports whether the type reduces the household balance.
// Saving deposits count as outflows, symmetrically with expenses.
func (t TransactionType) IsOutflow() bool {
	return t == TypeExpense || t == TypeSavingDeposit
}

// ReportCategory returns the category label used for breakdown grouping.
// Saving deposits always collapse into the fixed savings bucket regardless
// of their stored category; expenses without a category fall back to Other.
func (t *Transaction) ReportCategory() string {
	if t.Type == TypeSavingDeposit {
		return CategorySavings
	}

	if t.Category == "" {
		return CategoryOther
	}

	return t.Category
}
