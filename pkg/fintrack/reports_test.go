package fintrack

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportService_MonthlySummary(t *testing.T) {
	client, mockTransport := newMockClient()

	expected := url.Values{"year": {"2024"}, "month": {"7"}}
	mockTransport.On("Do", mock.Anything, http.MethodGet, "/reports/monthly-summary", expected, nil, mock.Anything).
		Return(`{"totalIncome": 3000, "totalExpense": 1250.75}`, nil)

	summary, err := client.Reports.MonthlySummary(context.Background(), 2024, time.July)

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1749.25").Equal(summary.Net()))
}

func TestReportService_ExpenseByCategory(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodGet, "/reports/expense-by-category", mock.Anything, nil, mock.Anything).
		Return(`[{"categoryName": "Food", "totalAmount": 300}, {"categoryName": "Rent", "totalAmount": 900}]`, nil)

	breakdown, err := client.Reports.ExpenseByCategory(context.Background(), 2024, time.July)

	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Rent", breakdown[1].CategoryName)
}

func TestReportService_YearlySummary(t *testing.T) {
	client, mockTransport := newMockClient()

	expected := url.Values{"year": {"2024"}}
	mockTransport.On("Do", mock.Anything, http.MethodGet, "/reports/yearly-summary", expected, nil, mock.Anything).
		Return(`{
			"totalIncome": 6000, "totalExpense": 2500,
			"monthlySummaries": [
				{"month": 1, "totalIncome": 3000, "totalExpense": 1000},
				{"month": 2, "totalIncome": 3000, "totalExpense": 1500}
			]
		}`, nil)

	summary, err := client.Reports.YearlySummary(context.Background(), 2024)

	require.NoError(t, err)
	assert.Equal(t, 2024, summary.Year)
	require.Len(t, summary.MonthlySummaries, 2)
	assert.True(t, decimal.NewFromInt(1500).Equal(summary.MonthlySummaries[1].Net()))

	elapsed := summary.Elapsed(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC))
	assert.Len(t, elapsed.MonthlySummaries, 1)
	assert.Len(t, summary.MonthlySummaries, 2)
}

func TestReportService_ServerError(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodGet, "/reports/monthly-summary", mock.Anything, nil, mock.Anything).
		Return(nil, &Error{Code: "SERVER_ERROR", StatusCode: 500, Err: ErrServerError})

	_, err := client.Reports.MonthlySummary(context.Background(), 2024, time.July)

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}
