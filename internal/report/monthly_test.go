package report_test

import (
	"testing"
	"time"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/report"
)

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		tx(domain.TypeIncome, 100, date(2024, time.January, 5)),
		tx(domain.TypeExpense, 50, date(2024, time.January, 20)),
		tx(domain.TypeExpense, 30, date(2024, time.February, 1)),
		tx(domain.TypeIncome, 80, date(2023, time.December, 24)),
		tx(domain.TypeSavingDeposit, 10, date(2023, time.March, 8)),
	}
}

func TestGroupByMonth_Empty(t *testing.T) {
	if groups := report.GroupByMonth(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if years := report.Years(nil); len(years) != 0 {
		t.Errorf("expected no years, got %d", len(years))
	}
}

func TestGroupByMonth_EveryTransactionAppearsOnce(t *testing.T) {
	txs := sampleTransactions()
	groups := report.GroupByMonth(txs)

	total := 0
	for _, g := range groups {
		total += len(g.Transactions)
	}

	if total != len(txs) {
		t.Errorf("grouped %d transactions, want %d", total, len(txs))
	}
}

func TestGroupByMonth_Ordering(t *testing.T) {
	groups := report.GroupByMonth(sampleTransactions())

	wantMonths := []struct {
		year  int
		month time.Month
	}{
		{2024, time.February},
		{2024, time.January},
		{2023, time.December},
		{2023, time.March},
	}

	if len(groups) != len(wantMonths) {
		t.Fatalf("expected %d groups, got %d", len(wantMonths), len(groups))
	}

	for i, want := range wantMonths {
		if groups[i].Year != want.year || groups[i].Month != want.month {
			t.Errorf("group %d = %d-%s, want %d-%s",
				i, groups[i].Year, groups[i].Month, want.year, want.month)
		}
	}

	// Within January 2024: newest first.
	jan := groups[1]
	if jan.Transactions[0].Date.Day() != 20 || jan.Transactions[1].Date.Day() != 5 {
		t.Errorf("january group not sorted newest-first: days %d, %d",
			jan.Transactions[0].Date.Day(), jan.Transactions[1].Date.Day())
	}
}

func TestFilterGroupsByYear(t *testing.T) {
	txs := sampleTransactions()
	groups := report.GroupByMonth(txs)

	filtered := report.FilterGroupsByYear(groups, 2023)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 groups for 2023, got %d", len(filtered))
	}

	for _, g := range filtered {
		if g.Year != 2023 {
			t.Errorf("group year = %d, want 2023", g.Year)
		}
		for _, tr := range g.Transactions {
			if tr.Date.Year() != 2023 {
				t.Errorf("transaction year = %d, want 2023", tr.Date.Year())
			}
		}
	}

	if len(report.FilterGroupsByYear(groups, 2020)) != 0 {
		t.Error("expected no groups for a year with no transactions")
	}
}

func TestYears(t *testing.T) {
	years := report.Years(sampleTransactions())

	want := []int{2024, 2023}
	if len(years) != len(want) {
		t.Fatalf("expected %d years, got %d", len(want), len(years))
	}

	for i, y := range want {
		if years[i] != y {
			t.Errorf("years[%d] = %d, want %d", i, years[i], y)
		}
	}
}
