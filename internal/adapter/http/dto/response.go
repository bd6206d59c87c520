package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/report"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category,omitempty"`
	Description      string          `json:"description,omitempty"`
	Date             time.Time       `json:"date"`
	SavingsAccountID string          `json:"savings_account_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:               t.ID,
		Type:             string(t.Type),
		Amount:           t.Amount,
		Category:         t.Category,
		Description:      t.Description,
		Date:             t.Date,
		SavingsAccountID: t.SavingsAccountID,
		CreatedAt:        t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i := range txs {
		result[i] = TransactionFromDomain(&txs[i])
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// SavingsAccountResponse represents a savings account in API responses.
type SavingsAccountResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	StartingAmount decimal.Decimal  `json:"starting_amount"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// SavingsAccountFromDomain converts a domain savings account to a response.
func SavingsAccountFromDomain(a *domain.SavingsAccount) *SavingsAccountResponse {
	resp := &SavingsAccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		StartingAmount: a.StartingAmount,
		CreatedAt:      a.CreatedAt,
	}
	if a.CurrentValue.Valid {
		v := a.CurrentValue.Decimal
		resp.CurrentValue = &v
	}
	return resp
}

// SavingsStatsResponse represents an account with derived figures.
type SavingsStatsResponse struct {
	Account      *SavingsAccountResponse `json:"account"`
	Deposits     decimal.Decimal         `json:"deposits"`
	Capital      decimal.Decimal         `json:"capital"`
	CurrentValue decimal.Decimal         `json:"current_value"`
	Profit       decimal.Decimal         `json:"profit"`
	ProfitPct    float64                 `json:"profit_pct"`
}

// SavingsStatsFromReport converts derived savings stats to responses.
func SavingsStatsFromReport(stats []report.SavingsStats) []*SavingsStatsResponse {
	result := make([]*SavingsStatsResponse, len(stats))
	for i := range stats {
		s := stats[i]
		result[i] = &SavingsStatsResponse{
			Account:      SavingsAccountFromDomain(&s.Account),
			Deposits:     s.Deposits,
			Capital:      s.Capital,
			CurrentValue: s.CurrentValue,
			Profit:       s.Profit,
			ProfitPct:    s.ProfitPct,
		}
	}
	return result
}

// SnapshotResponse represents a savings snapshot in API responses.
type SnapshotResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Capital   decimal.Decimal `json:"capital"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// SnapshotsFromDomain converts domain snapshots to responses.
func SnapshotsFromDomain(snapshots []domain.SavingsSnapshot) []*SnapshotResponse {
	result := make([]*SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = &SnapshotResponse{
			ID:        s.ID,
			AccountID: s.AccountID,
			Capital:   s.Capital,
			Value:     s.Value,
			CreatedAt: s.CreatedAt,
		}
	}
	return result
}

// CategoryResponse represents a custom category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = &CategoryResponse{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
		}
	}
	return result
}

// CategoryOptionsResponse lists the category names offered in entry forms.
type CategoryOptionsResponse struct {
	Options []string `json:"options"`
}

// MonthGroupResponse represents one calendar month of transactions.
type MonthGroupResponse struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// MonthlyReportResponse bundles month groups with year filter options.
type MonthlyReportResponse struct {
	Groups []*MonthGroupResponse `json:"groups"`
	Years  []int                 `json:"years"`
}

// MonthlyReportFromReport converts month groups to a response.
func MonthlyReportFromReport(groups []report.MonthGroup, years []int) *MonthlyReportResponse {
	resp := &MonthlyReportResponse{
		Groups: make([]*MonthGroupResponse, len(groups)),
		Years:  years,
	}
	for i, g := range groups {
		resp.Groups[i] = &MonthGroupResponse{
			Year:         g.Year,
			Month:        int(g.Month),
			Transactions: TransactionsFromDomain(g.Transactions),
		}
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
