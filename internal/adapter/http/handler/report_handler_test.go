package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/adapter/http/dto"
	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/report"
	"github.com/iho/homebudget/internal/usecase"
)

type reportServiceStub struct {
	summaryFn   func(ctx context.Context, householdID string) (report.Summary, error)
	trendFn     func(ctx context.Context, householdID string) ([]report.TrendPoint, error)
	breakdownFn func(ctx context.Context, householdID string) ([]report.CategorySlice, error)
	monthlyFn   func(ctx context.Context, householdID string, year int) (usecase.MonthlyReport, error)
}

func (s *reportServiceStub) Summary(ctx context.Context, householdID string) (report.Summary, error) {
	return s.summaryFn(ctx, householdID)
}

func (s *reportServiceStub) Trend(ctx context.Context, householdID string) ([]report.TrendPoint, error) {
	return s.trendFn(ctx, householdID)
}

func (s *reportServiceStub) CategoryBreakdown(ctx context.Context, householdID string) ([]report.CategorySlice, error) {
	return s.breakdownFn(ctx, householdID)
}

func (s *reportServiceStub) MonthlyGroups(ctx context.Context, householdID string, year int) (usecase.MonthlyReport, error) {
	return s.monthlyFn(ctx, householdID, year)
}

func TestReportHandler_Summary(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		summaryFn: func(ctx context.Context, householdID string) (report.Summary, error) {
			if householdID != "hh-1" {
				t.Fatalf("expected household hh-1, got %s", householdID)
			}
			return report.Summary{
				AllTime: report.Totals{Income: decimal.NewFromInt(1500), Expense: decimal.NewFromInt(400), Net: decimal.NewFromInt(1100)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/households/hh-1/reports/summary", nil)
	req = setChiURLParams(req, map[string]string{"householdID": "hh-1"})
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp report.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.AllTime.Net.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected net 1100, got %s", resp.AllTime.Net)
	}
}

func TestReportHandler_Summary_MissingHousehold(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		summaryFn: func(ctx context.Context, householdID string) (report.Summary, error) {
			return report.Summary{}, domain.ErrMissingHousehold
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/households//reports/summary", nil)
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_Trend_EmptyIsJSONArray(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		trendFn: func(ctx context.Context, householdID string) ([]report.TrendPoint, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/households/hh-1/reports/trend", nil)
	req = setChiURLParams(req, map[string]string{"householdID": "hh-1"})
	rec := httptest.NewRecorder()

	handler.Trend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestReportHandler_Monthly(t *testing.T) {
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	var capturedYear int
	handler := NewReportHandler(&reportServiceStub{
		monthlyFn: func(ctx context.Context, householdID string, year int) (usecase.MonthlyReport, error) {
			capturedYear = year
			return usecase.MonthlyReport{
				Groups: []report.MonthGroup{
					{Year: 2026, Month: time.March, Transactions: []domain.Transaction{{ID: "tx-1", Date: march}}},
				},
				Years: []int{2026},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/households/hh-1/reports/monthly?year=2026", nil)
	req = setChiURLParams(req, map[string]string{"householdID": "hh-1"})
	rec := httptest.NewRecorder()

	handler.Monthly(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedYear != 2026 {
		t.Fatalf("expected year filter 2026, got %d", capturedYear)
	}

	var resp dto.MonthlyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Groups) != 1 || resp.Groups[0].Month != 3 {
		t.Fatalf("expected one March group, got %+v", resp.Groups)
	}
}
