package main

import (
	"context"
	"log"
	"os"

	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Get tracker token from environment
	token := os.Getenv("FINTRACK_TOKEN")
	if token == "" {
		log.Fatal("FINTRACK_TOKEN environment variable is required")
	}

	// Initialize tracker client
	client, err := fintrack.NewClient(&fintrack.ClientOptions{
		BaseURL: os.Getenv("FINTRACK_BASE_URL"),
		Token:   token,
	})
	if err != nil {
		log.Fatalf("failed to initialize fintrack client: %v", err)
	}
	defer client.Close()

	impl := &mcp.Implementation{
		Name:    "fintrack",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *fintrack.Client) {
	tools := &trackerTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "Get all accounts with their current balances, plus total assets, liabilities and net worth.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "Get all transaction categories.",
	}, tools.GetCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Description: "Query transactions, newest first, optionally limited to one month and one category. Returns date, amount, type, description, category and account.",
	}, tools.GetTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budgets",
		Description: "Get the budgets of a month with the amount spent in each budgeted category and what remains.",
	}, tools.GetBudgets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_monthly_report",
		Description: "Get total income, expense and net for a month together with the expense breakdown by category.",
	}, tools.GetMonthlyReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_yearly_report",
		Description: "Get income, expense and net per month for a year. For the current year only elapsed months are returned.",
	}, tools.GetYearlyReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_daily_totals",
		Description: "Get the transactions of a month grouped by day, newest day first, with income and expense per day.",
	}, tools.GetDailyTotals)
}
