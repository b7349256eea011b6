package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// trackerTools holds the tracker client and implements all tool handlers
type trackerTools struct {
	client *fintrack.Client
	now    func() time.Time
}

func (t *trackerTools) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// period parses an optional "YYYY-MM" month, defaulting to the current month
func (t *trackerTools) period(month string) (int, time.Month, error) {
	if month == "" {
		now := t.clock()
		return now.Year(), now.Month(), nil
	}
	p, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}
	return p.Year(), p.Month(), nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// GetAccounts tool - retrieves all accounts
type GetAccountsInput struct {
	// No input parameters needed
}

type AccountEntry struct {
	ID      int64   `json:"id" jsonschema:"Account ID"`
	Name    string  `json:"name" jsonschema:"Account name"`
	Balance float64 `json:"balance" jsonschema:"Current account balance"`
}

type GetAccountsOutput struct {
	Accounts    []AccountEntry `json:"accounts" jsonschema:"List of all accounts"`
	Count       int            `json:"count" jsonschema:"Number of accounts"`
	Assets      float64        `json:"assets" jsonschema:"Sum of non-negative balances"`
	Liabilities float64        `json:"liabilities" jsonschema:"Sum of negative balances"`
	NetWorth    float64        `json:"netWorth" jsonschema:"Assets plus liabilities"`
}

func (t *trackerTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	accounts, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, GetAccountsOutput{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	entries := make([]AccountEntry, 0, len(accounts))
	for _, acc := range accounts {
		entries = append(entries, AccountEntry{
			ID:      acc.ID,
			Name:    acc.Name,
			Balance: money(acc.Balance),
		})
	}

	summary := fintrack.SummarizeAccounts(accounts)
	return nil, GetAccountsOutput{
		Accounts:    entries,
		Count:       len(entries),
		Assets:      money(summary.Assets),
		Liabilities: money(summary.Liabilities),
		NetWorth:    money(summary.NetWorth()),
	}, nil
}

// GetCategories tool - retrieves all transaction categories
type GetCategoriesInput struct {
	// No input parameters needed
}

type CategoryEntry struct {
	ID   int64  `json:"id" jsonschema:"Category ID"`
	Name string `json:"name" jsonschema:"Category name"`
}

type GetCategoriesOutput struct {
	Categories []CategoryEntry `json:"categories" jsonschema:"List of all categories"`
	Count      int             `json:"count" jsonschema:"Number of categories"`
}

func (t *trackerTools) GetCategories(ctx context.Context, req *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesOutput, error) {
	categories, err := t.client.Categories.List(ctx)
	if err != nil {
		return nil, GetCategoriesOutput{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	entries := make([]CategoryEntry, 0, len(categories))
	for _, cat := range categories {
		entries = append(entries, CategoryEntry{ID: cat.ID, Name: cat.Name})
	}

	return nil, GetCategoriesOutput{
		Categories: entries,
		Count:      len(entries),
	}, nil
}

// GetTransactions tool - queries transactions with optional filters
type GetTransactionsInput struct {
	Month    string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (optional, all transactions when empty)"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category name, or 'Uncategorized' (optional)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of transactions to return (default: 50)"`
}

type TransactionEntry struct {
	ID          int64   `json:"id" jsonschema:"Transaction ID"`
	Date        string  `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Amount      float64 `json:"amount" jsonschema:"Transaction amount, always positive"`
	Type        string  `json:"type" jsonschema:"INCOME or EXPENSE"`
	Description string  `json:"description" jsonschema:"Transaction description"`
	Category    string  `json:"category" jsonschema:"Transaction category"`
	Account     string  `json:"account" jsonschema:"Account name"`
}

type GetTransactionsOutput struct {
	Transactions []TransactionEntry `json:"transactions" jsonschema:"List of transactions"`
	Count        int                `json:"count" jsonschema:"Number of transactions returned"`
}

func (t *trackerTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, GetTransactionsOutput, error) {
	var (
		txs []*fintrack.Transaction
		err error
	)
	if input.Month == "" {
		txs, err = t.client.Transactions.List(ctx)
	} else {
		year, month, perr := t.period(input.Month)
		if perr != nil {
			return nil, GetTransactionsOutput{}, perr
		}
		txs, err = t.client.Transactions.ListByMonth(ctx, year, month)
	}
	if err != nil {
		return nil, GetTransactionsOutput{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// Apply limit (default to 50)
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	transactions := make([]TransactionEntry, 0)
	for _, tx := range txs {
		if len(transactions) == limit {
			break
		}

		r := tx.Record()
		if input.Category != "" && !strings.EqualFold(r.Category.String(), input.Category) {
			continue
		}

		transactions = append(transactions, TransactionEntry{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Amount:      money(tx.Amount),
			Type:        string(tx.Kind),
			Description: tx.Description,
			Category:    r.Category.String(),
			Account:     r.AccountLabel,
		})
	}

	return nil, GetTransactionsOutput{
		Transactions: transactions,
		Count:        len(transactions),
	}, nil
}

// GetBudgets tool - retrieves budgets of a month against actual spending
type GetBudgetsInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (default: current month)"`
}

type BudgetEntry struct {
	ID         int64   `json:"id" jsonschema:"Budget ID"`
	Category   string  `json:"category" jsonschema:"Budget category name"`
	Budgeted   float64 `json:"budgeted" jsonschema:"Budgeted amount for this category"`
	Spent      float64 `json:"spent" jsonschema:"Expense recorded in this category during the month"`
	Remaining  float64 `json:"remaining" jsonschema:"Budgeted minus spent, negative when over budget"`
	Percentage float64 `json:"percentage" jsonschema:"Percentage of budget spent"`
}

type GetBudgetsOutput struct {
	Month   string        `json:"month" jsonschema:"Month of the budget data"`
	Budgets []BudgetEntry `json:"budgets" jsonschema:"List of budget entries for each category"`
}

func (t *trackerTools) GetBudgets(ctx context.Context, req *mcp.CallToolRequest, input GetBudgetsInput) (*mcp.CallToolResult, GetBudgetsOutput, error) {
	year, month, err := t.period(input.Month)
	if err != nil {
		return nil, GetBudgetsOutput{}, err
	}

	var (
		budgets []*fintrack.Budget
		txs     []*fintrack.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = t.client.Budgets.List(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = t.client.Transactions.ListByMonth(gctx, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, GetBudgetsOutput{}, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	spent, err := fintrack.BucketByCategory(fintrack.Records(txs))
	if err != nil {
		return nil, GetBudgetsOutput{}, err
	}

	entries := make([]BudgetEntry, 0, len(budgets))
	for _, b := range budgets {
		key := fintrack.Uncategorized
		if b.Category != nil {
			key = fintrack.KnownCategory(b.Category.Name)
		}
		used := spent[key]

		entry := BudgetEntry{
			ID:        b.ID,
			Category:  key.String(),
			Budgeted:  money(b.Amount),
			Spent:     money(used),
			Remaining: money(b.Amount.Sub(used)),
		}
		if b.Amount.IsPositive() {
			entry.Percentage = money(used.Div(b.Amount).Mul(decimal.NewFromInt(100)))
		}
		entries = append(entries, entry)
	}

	return nil, GetBudgetsOutput{
		Month:   fmt.Sprintf("%d-%02d", year, int(month)),
		Budgets: entries,
	}, nil
}

// GetMonthlyReport tool - server-side totals and category breakdown of a month
type GetMonthlyReportInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (default: current month)"`
}

type CategoryTotal struct {
	Category string  `json:"category" jsonschema:"Category name"`
	Amount   float64 `json:"amount" jsonschema:"Total expense in this category"`
}

type GetMonthlyReportOutput struct {
	Month        string          `json:"month" jsonschema:"Month of the report"`
	TotalIncome  float64         `json:"totalIncome" jsonschema:"Total income"`
	TotalExpense float64         `json:"totalExpense" jsonschema:"Total expense"`
	Net          float64         `json:"net" jsonschema:"Income minus expense"`
	IncomeShare  float64         `json:"incomeShare" jsonschema:"Income as a percentage of income plus expense"`
	ByCategory   []CategoryTotal `json:"byCategory" jsonschema:"Expense breakdown by category"`
}

func (t *trackerTools) GetMonthlyReport(ctx context.Context, req *mcp.CallToolRequest, input GetMonthlyReportInput) (*mcp.CallToolResult, GetMonthlyReportOutput, error) {
	year, month, err := t.period(input.Month)
	if err != nil {
		return nil, GetMonthlyReportOutput{}, err
	}

	// Summary and breakdown are independent; fetch them together
	var (
		summary   *fintrack.MonthlySummary
		breakdown []*fintrack.ExpenseByCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = t.client.Reports.MonthlySummary(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = t.client.Reports.ExpenseByCategory(gctx, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, GetMonthlyReportOutput{}, fmt.Errorf("failed to fetch monthly report: %w", err)
	}

	byCategory := make([]CategoryTotal, 0, len(breakdown))
	for _, e := range breakdown {
		byCategory = append(byCategory, CategoryTotal{Category: e.CategoryName, Amount: money(e.TotalAmount)})
	}

	return nil, GetMonthlyReportOutput{
		Month:        fmt.Sprintf("%d-%02d", year, int(month)),
		TotalIncome:  money(summary.TotalIncome),
		TotalExpense: money(summary.TotalExpense),
		Net:          money(summary.Net()),
		IncomeShare:  money(fintrack.IncomeShare(summary.TotalIncome, summary.TotalExpense)),
		ByCategory:   byCategory,
	}, nil
}

// GetYearlyReport tool - per-month totals of a year
type GetYearlyReportInput struct {
	Year int `json:"year,omitempty" jsonschema:"Year (default: current year)"`
}

type MonthEntry struct {
	Month        int     `json:"month" jsonschema:"Month number, 1 to 12"`
	TotalIncome  float64 `json:"totalIncome" jsonschema:"Total income"`
	TotalExpense float64 `json:"totalExpense" jsonschema:"Total expense"`
	Net          float64 `json:"net" jsonschema:"Income minus expense"`
}

type GetYearlyReportOutput struct {
	Year         int          `json:"year" jsonschema:"Year of the report"`
	TotalIncome  float64      `json:"totalIncome" jsonschema:"Total income of the year"`
	TotalExpense float64      `json:"totalExpense" jsonschema:"Total expense of the year"`
	Months       []MonthEntry `json:"months" jsonschema:"Per-month totals, elapsed months only for the current year"`
}

func (t *trackerTools) GetYearlyReport(ctx context.Context, req *mcp.CallToolRequest, input GetYearlyReportInput) (*mcp.CallToolResult, GetYearlyReportOutput, error) {
	now := t.clock()
	year := input.Year
	if year == 0 {
		year = now.Year()
	}

	summary, err := t.client.Reports.YearlySummary(ctx, year)
	if err != nil {
		return nil, GetYearlyReportOutput{}, fmt.Errorf("failed to fetch yearly report: %w", err)
	}
	summary = summary.Elapsed(now)

	months := make([]MonthEntry, 0, len(summary.MonthlySummaries))
	for _, m := range summary.MonthlySummaries {
		months = append(months, MonthEntry{
			Month:        m.Month,
			TotalIncome:  money(m.TotalIncome),
			TotalExpense: money(m.TotalExpense),
			Net:          money(m.Net()),
		})
	}

	return nil, GetYearlyReportOutput{
		Year:         summary.Year,
		TotalIncome:  money(summary.TotalIncome),
		TotalExpense: money(summary.TotalExpense),
		Months:       months,
	}, nil
}

// GetDailyTotals tool - a month's transactions grouped by day
type GetDailyTotalsInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (default: current month)"`
}

type DayEntry struct {
	Date           string  `json:"date" jsonschema:"Day (YYYY-MM-DD)"`
	Income         float64 `json:"income" jsonschema:"Income recorded that day"`
	Expense        float64 `json:"expense" jsonschema:"Expense recorded that day"`
	TransactionIDs []int64 `json:"transactionIds" jsonschema:"IDs of the day's transactions"`
}

type GetDailyTotalsOutput struct {
	Month        string     `json:"month" jsonschema:"Month of the data"`
	Days         []DayEntry `json:"days" jsonschema:"Days with transactions, newest first"`
	TotalIncome  float64    `json:"totalIncome" jsonschema:"Income of the whole month"`
	TotalExpense float64    `json:"totalExpense" jsonschema:"Expense of the whole month"`
}

func (t *trackerTools) GetDailyTotals(ctx context.Context, req *mcp.CallToolRequest, input GetDailyTotalsInput) (*mcp.CallToolResult, GetDailyTotalsOutput, error) {
	year, month, err := t.period(input.Month)
	if err != nil {
		return nil, GetDailyTotalsOutput{}, err
	}

	txs, err := t.client.Transactions.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, GetDailyTotalsOutput{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	records := fintrack.Records(txs)
	buckets, err := fintrack.BucketByDay(records)
	if err != nil {
		return nil, GetDailyTotalsOutput{}, err
	}
	total, err := fintrack.Summarize(records)
	if err != nil {
		return nil, GetDailyTotalsOutput{}, err
	}

	days := make([]DayEntry, 0, len(buckets))
	for _, b := range buckets {
		ids := make([]int64, 0, len(b.Transactions))
		for _, r := range b.Transactions {
			ids = append(ids, r.ID)
		}
		days = append(days, DayEntry{
			Date:           b.Date.String(),
			Income:         money(b.IncomeTotal),
			Expense:        money(b.ExpenseTotal),
			TransactionIDs: ids,
		})
	}

	return nil, GetDailyTotalsOutput{
		Month:        fmt.Sprintf("%d-%02d", year, int(month)),
		Days:         days,
		TotalIncome:  money(total.IncomeTotal),
		TotalExpense: money(total.ExpenseTotal),
	}, nil
}
