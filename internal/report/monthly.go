package report

import (
	"sort"
	"time"

	"github.com/iho/homebudget/internal/domain"
)

// MonthGroup is one calendar month's transactions, newest first.
type MonthGroup struct {
	Year         int                  `json:"year"`
	Month        time.Month           `json:"month"`
	Transactions []domain.Transaction `json:"transactions"`
}

// GroupByMonth partitions the full transaction list into calendar-month
// groups regardless of the current date. Transactions within a group are
// sorted newest-first, and groups run from the most recent month backwards.
func GroupByMonth(txs []domain.Transaction) []MonthGroup {
	type key struct {
		year  int
		month time.Month
	}

	byMonth := make(map[key][]domain.Transaction)
	for i := range txs {
		k := key{year: txs[i].Date.Year(), month: txs[i].Date.Month()}
		byMonth[k] = append(byMonth[k], txs[i])
	}

	groups := make([]MonthGroup, 0, len(byMonth))
	for k, members := range byMonth {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Date.After(members[j].Date)
		})

		groups = append(groups, MonthGroup{
			Year:         k.year,
			Month:        k.month,
			Transactions: members,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}

		return groups[i].Month > groups[j].Month
	})

	return groups
}

// FilterGroupsByYear retains only the groups of one calendar year.
// Filtering happens after grouping, so month membership is unaffected.
func FilterGroupsByYear(groups []MonthGroup, year int) []MonthGroup {
	filtered := make([]MonthGroup, 0, len(groups))
	for _, g := range groups {
		if g.Year == year {
			filtered = append(filtered, g)
		}
	}

	return filtered
}

// Years returns the distinct calendar years present across all transactions,
// sorted descending, for use as filter options.
func Years(txs []domain.Transaction) []int {
	seen := make(map[int]struct{})

	var years []int

	for i := range txs {
		y := txs[i].Date.Year()
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	return years
}
