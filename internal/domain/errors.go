package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrMissingSavingsAccount  = errors.New("saving deposit requires a savings account")
	ErrDeleteNotConfirmed     = errors.New("delete requires explicit confirmation")

	// Savings errors
	ErrSavingsAccountNotFound = errors.New("savings account not found")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")

	// Shared errors
	ErrMissingHousehold = errors.New("household id is required")
)
