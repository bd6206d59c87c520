package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
)

// TrendPoint is one point of the cumulative balance series.
type TrendPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// BuildTrend produces the time-ordered cumulative balance series with one
// point per transaction. Transactions with equal dates keep their input
// order. An empty input yields an empty series.
func BuildTrend(txs []domain.Transaction) []TrendPoint {
	if len(txs) == 0 {
		return nil
	}

	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var balance decimal.Decimal
	points := make([]TrendPoint, 0, len(sorted))

	for i := range sorted {
		tx := &sorted[i]

		switch {
		case tx.Type == domain.TypeIncome:
			balance = balance.Add(tx.Amount)
		case tx.Type.IsOutflow():
			balance = balance.Sub(tx.Amount)
		}

		points = append(points, TrendPoint{Date: tx.Date, Value: balance})
	}

	return points
}
