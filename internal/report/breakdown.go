package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
)

// CategorySlice is one category's share of the current month's outflows.
type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Pct   float64         `json:"pct"`
}

// BuildCategoryBreakdown groups the current month's outflows (expenses and
// saving deposits) by category, with each group's percentage of the monthly
// outflow total. Saving deposits all land in the fixed Savings bucket;
// uncategorized expenses land in Other. Sorted by value descending; ties
// keep first-occurrence order.
func BuildCategoryBreakdown(txs []domain.Transaction, now time.Time) []CategorySlice {
	sums := make(map[string]decimal.Decimal)
	var order []string

	for i := range txs {
		tx := &txs[i]
		if !tx.Type.IsOutflow() || !sameMonth(tx.Date, now) {
			continue
		}

		name := tx.ReportCategory()
		if _, ok := sums[name]; !ok {
			order = append(order, name)
		}
		sums[name] = sums[name].Add(tx.Amount)
	}

	if len(order) == 0 {
		return nil
	}

	var total decimal.Decimal
	for _, name := range order {
		total = total.Add(sums[name])
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, name := range order {
		value := sums[name]

		pct := 0.0
		if total.IsPositive() {
			pct, _ = value.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}

		slices = append(slices, CategorySlice{Name: name, Value: value, Pct: pct})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})

	return slices
}
