package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/infrastructure/metrics"
	"github.com/iho/homebudget/internal/report"
)

// ReportUseCase serves derived views over a household's transactions.
// Every report is recomputed from the full transaction list; the cache only
// short-circuits repeated reads between mutations.
type ReportUseCase struct {
	txRepo  TransactionRepository
	cache   Cache
	metrics *metrics.Metrics
	clock   func() time.Time
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(txRepo TransactionRepository, cache Cache, metrics *metrics.Metrics) *ReportUseCase {
	return NewReportUseCaseWithClock(txRepo, cache, metrics, time.Now)
}

// NewReportUseCaseWithClock creates a ReportUseCase with an injected clock.
func NewReportUseCaseWithClock(txRepo TransactionRepository, cache Cache, metrics *metrics.Metrics, clock func() time.Time) *ReportUseCase {
	return &ReportUseCase{
		txRepo:  txRepo,
		cache:   cache,
		metrics: metrics,
		clock:   clock,
	}
}

// ReportCacheKeys returns the cache keys holding a household's report
// payloads, for invalidation after mutations.
func ReportCacheKeys(householdID string) []string {
	return []string{
		reportCacheKey(householdID, "summary"),
		reportCacheKey(householdID, "trend"),
		reportCacheKey(householdID, "breakdown"),
	}
}

func reportCacheKey(householdID, name string) string {
	return fmt.Sprintf("reports:%s:%s", householdID, name)
}

// Summary computes current-month and all-time income/expense/net totals.
func (uc *ReportUseCase) Summary(ctx context.Context, householdID string) (report.Summary, error) {
	var summary report.Summary

	err := uc.cached(ctx, householdID, "summary", &summary, func(txs []domain.Transaction) any {
		return report.BuildSummary(txs, uc.clock())
	})

	return summary, err
}

// Trend computes the cumulative balance series across all transactions.
func (uc *ReportUseCase) Trend(ctx context.Context, householdID string) ([]report.TrendPoint, error) {
	var points []report.TrendPoint

	err := uc.cached(ctx, householdID, "trend", &points, func(txs []domain.Transaction) any {
		return report.BuildTrend(txs)
	})

	return points, err
}

// CategoryBreakdown computes the current month's per-category outflow shares.
func (uc *ReportUseCase) CategoryBreakdown(ctx context.Context, householdID string) ([]report.CategorySlice, error) {
	var slices []report.CategorySlice

	err := uc.cached(ctx, householdID, "breakdown", &slices, func(txs []domain.Transaction) any {
		return report.BuildCategoryBreakdown(txs, uc.clock())
	})

	return slices, err
}

// MonthlyReport bundles month groups with the year filter options.
type MonthlyReport struct {
	Groups []report.MonthGroup `json:"groups"`
	Years  []int               `json:"years"`
}

// MonthlyGroups partitions the household's transactions into calendar-month
// groups. A non-zero year keeps only that year's groups; the offered years
// always reflect the full unfiltered list.
func (uc *ReportUseCase) MonthlyGroups(ctx context.Context, householdID string, year int) (MonthlyReport, error) {
	if err := domain.ValidateHouseholdID(householdID); err != nil {
		return MonthlyReport{}, err
	}

	txs, err := uc.txRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return MonthlyReport{}, err
	}

	groups := report.GroupByMonth(txs)
	if year != 0 {
		groups = report.FilterGroupsByYear(groups, year)
	}

	return MonthlyReport{
		Groups: groups,
		Years:  report.Years(txs),
	}, nil
}

// cached runs build over the household's transactions, going through the
// report cache. Cache errors degrade to a recompute.
func (uc *ReportUseCase) cached(ctx context.Context, householdID, name string, out any, build func([]domain.Transaction) any) error {
	if err := domain.ValidateHouseholdID(householdID); err != nil {
		return err
	}

	key := reportCacheKey(householdID, name)

	if data, err := uc.cache.Get(ctx, key); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err == nil {
			if uc.metrics != nil {
				uc.metrics.ReportCacheHits.WithLabelValues(name).Inc()
			}
			return nil
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReportCacheMisses.WithLabelValues(name).Inc()
	}

	txs, err := uc.txRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return err
	}

	result := build(txs)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return err
	}

	_ = uc.cache.Set(ctx, key, data, ReportCacheTTL)

	return nil
}
