package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
)

// Totals holds income, expense and net sums for one scope.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Summary holds current-month and all-time totals.
type Summary struct {
	Month   Totals `json:"month"`
	AllTime Totals `json:"all_time"`
}

// BuildSummary computes month-scoped and all-time income/expense/net totals
// in a single pass. The current month is the calendar year and month of now.
// Saving deposits count toward expense.
func BuildSummary(txs []domain.Transaction, now time.Time) Summary {
	var monthIncome, monthExpense, allIncome, allExpense decimal.Decimal

	for i := range txs {
		tx := &txs[i]
		current := sameMonth(tx.Date, now)

		switch {
		case tx.Type == domain.TypeIncome:
			allIncome = allIncome.Add(tx.Amount)
			if current {
				monthIncome = monthIncome.Add(tx.Amount)
			}
		case tx.Type.IsOutflow():
			allExpense = allExpense.Add(tx.Amount)
			if current {
				monthExpense = monthExpense.Add(tx.Amount)
			}
		}
	}

	return Summary{
		Month: Totals{
			Income:  monthIncome,
			Expense: monthExpense,
			Net:     monthIncome.Sub(monthExpense),
		},
		AllTime: Totals{
			Income:  allIncome,
			Expense: allExpense,
			Net:     allIncome.Sub(allExpense),
		},
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
