package fintrack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// reportService implements the ReportService interface
type reportService struct {
	client *Client
}

// MonthlySummary retrieves income and expense totals for a month
func (s *reportService) MonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error) {
	var summary MonthlySummary

	if err := s.client.execute(ctx, http.MethodGet, "/reports/monthly-summary", monthQuery(year, month), nil, &summary); err != nil {
		return nil, errors.Wrap(err, "failed to get monthly summary")
	}

	return &summary, nil
}

// ExpenseByCategory retrieves the expense breakdown for a month
func (s *reportService) ExpenseByCategory(ctx context.Context, year int, month time.Month) ([]*ExpenseByCategory, error) {
	var breakdown []*ExpenseByCategory

	if err := s.client.execute(ctx, http.MethodGet, "/reports/expense-by-category", monthQuery(year, month), nil, &breakdown); err != nil {
		return nil, errors.Wrap(err, "failed to get expense by category")
	}

	return breakdown, nil
}

// YearlySummary retrieves per-month totals for a year
func (s *reportService) YearlySummary(ctx context.Context, year int) (*YearlySummary, error) {
	var summary YearlySummary

	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	if err := s.client.execute(ctx, http.MethodGet, "/reports/yearly-summary", q, nil, &summary); err != nil {
		return nil, errors.Wrap(err, "failed to get yearly summary")
	}

	if summary.Year == 0 {
		summary.Year = year
	}
	return &summary, nil
}
