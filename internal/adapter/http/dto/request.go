package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

func transactionType(s string) domain.TransactionType {
	return domain.TransactionType(s)
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category,omitempty"`
	Description      string          `json:"description,omitempty"`
	Date             *time.Time      `json:"date,omitempty"`
	SavingsAccountID string          `json:"savings_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(householdID string) usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		HouseholdID:      householdID,
		Type:             transactionType(r.Type),
		Amount:           r.Amount,
		Category:         r.Category,
		Description:      r.Description,
		SavingsAccountID: r.SavingsAccountID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// UpdateTransactionRequest represents a request to edit a transaction.
type UpdateTransactionRequest struct {
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category,omitempty"`
	Description      string          `json:"description,omitempty"`
	Date             *time.Time      `json:"date,omitempty"`
	SavingsAccountID string          `json:"savings_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(householdID, id string) usecase.UpdateTransactionInput {
	input := usecase.UpdateTransactionInput{
		ID:               id,
		HouseholdID:      householdID,
		Type:             transactionType(r.Type),
		Amount:           r.Amount,
		Category:         r.Category,
		Description:      r.Description,
		SavingsAccountID: r.SavingsAccountID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreateSavingsAccountRequest represents a request to create a savings account.
type CreateSavingsAccountRequest struct {
	Name           string          `json:"name"`
	StartingAmount decimal.Decimal `json:"starting_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSavingsAccountRequest) ToUseCaseInput(householdID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		HouseholdID:    householdID,
		Name:           r.Name,
		StartingAmount: r.StartingAmount,
	}
}

// UpdateSavingsAccountRequest represents a full savings account edit.
type UpdateSavingsAccountRequest struct {
	Name           string          `json:"name"`
	StartingAmount decimal.Decimal `json:"starting_amount"`
	CurrentValue   decimal.Decimal `json:"current_value"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSavingsAccountRequest) ToUseCaseInput(householdID, id string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:             id,
		HouseholdID:    householdID,
		Name:           r.Name,
		StartingAmount: r.StartingAmount,
		CurrentValue:   r.CurrentValue,
	}
}

// UpdateValueRequest represents a quick current-value assertion.
type UpdateValueRequest struct {
	Value decimal.Decimal `json:"value"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateValueRequest) ToUseCaseInput(householdID, id string) usecase.UpdateValueInput {
	return usecase.UpdateValueInput{
		ID:          id,
		HouseholdID: householdID,
		Value:       r.Value,
	}
}

// CreateCategoryRequest represents a request to add a custom category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(householdID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		HouseholdID: householdID,
		Name:        r.Name,
	}
}
