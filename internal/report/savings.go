package report

import (
	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
)

// SavingsStats is a savings account enriched with derived figures.
type SavingsStats struct {
	Account      domain.SavingsAccount `json:"account"`
	Deposits     decimal.Decimal       `json:"deposits"`
	Capital      decimal.Decimal       `json:"capital"`
	CurrentValue decimal.Decimal       `json:"current_value"`
	Profit       decimal.Decimal       `json:"profit"`
	ProfitPct    float64               `json:"profit_pct"`
}

// BuildSavingsStats derives deposits, capital and profit for each account
// from its linked saving-deposit transactions. An account with no asserted
// current value reports its capital as the value, and therefore zero profit,
// until one is set.
func BuildSavingsStats(accounts []domain.SavingsAccount, deposits []domain.Transaction) []SavingsStats {
	depositSums := make(map[string]decimal.Decimal)

	for i := range deposits {
		tx := &deposits[i]
		if tx.Type != domain.TypeSavingDeposit || tx.SavingsAccountID == "" {
			continue
		}

		depositSums[tx.SavingsAccountID] = depositSums[tx.SavingsAccountID].Add(tx.Amount)
	}

	stats := make([]SavingsStats, 0, len(accounts))

	for _, acc := range accounts {
		dep := depositSums[acc.ID]
		capital := acc.StartingAmount.Add(dep)

		value := capital
		if acc.CurrentValue.Valid {
			value = acc.CurrentValue.Decimal
		}

		profit := value.Sub(capital)

		pct := 0.0
		if capital.IsPositive() {
			pct, _ = profit.Div(capital).Mul(decimal.NewFromInt(100)).Float64()
		}

		stats = append(stats, SavingsStats{
			Account:      acc,
			Deposits:     dep,
			Capital:      capital,
			CurrentValue: value,
			Profit:       profit,
			ProfitPct:    pct,
		})
	}

	return stats
}
