package fintrack

import (
	"context"
	"time"
)

// AccountService handles account operations
type AccountService interface {
	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)

	// Create creates a new account with an opening balance
	Create(ctx context.Context, params *CreateAccountParams) (*Account, error)

	// Update renames an account
	Update(ctx context.Context, accountID int64, params *UpdateAccountParams) (*Account, error)

	// Delete deletes an account. Accounts with transactions are refused with ErrConflict.
	Delete(ctx context.Context, accountID int64) error
}

// CategoryService handles transaction categories
type CategoryService interface {
	// List retrieves all categories
	List(ctx context.Context) ([]*Category, error)

	// Create creates a new category
	Create(ctx context.Context, params *CategoryParams) (*Category, error)

	// Update renames a category
	Update(ctx context.Context, categoryID int64, params *CategoryParams) (*Category, error)

	// Delete deletes a category
	Delete(ctx context.Context, categoryID int64) error
}

// TransactionService handles transaction operations
type TransactionService interface {
	// List retrieves all transactions, newest first
	List(ctx context.Context) ([]*Transaction, error)

	// ListByMonth retrieves the transactions of one month
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, params *TransactionParams) (*Transaction, error)

	// Update replaces an existing transaction
	Update(ctx context.Context, transactionID int64, params *TransactionParams) (*Transaction, error)

	// Delete deletes a transaction
	Delete(ctx context.Context, transactionID int64) error
}

// BudgetService handles budget operations
type BudgetService interface {
	// List retrieves the budgets of one month
	List(ctx context.Context, year int, month time.Month) ([]*Budget, error)

	// Create sets a budget for a category and month
	Create(ctx context.Context, params *BudgetParams) (*Budget, error)

	// Update changes an existing budget
	Update(ctx context.Context, budgetID int64, params *BudgetParams) (*Budget, error)

	// Delete deletes a budget
	Delete(ctx context.Context, budgetID int64) error
}

// ReportService retrieves server-computed reports
type ReportService interface {
	// MonthlySummary retrieves income and expense totals for a month
	MonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error)

	// ExpenseByCategory retrieves the expense breakdown for a month
	ExpenseByCategory(ctx context.Context, year int, month time.Month) ([]*ExpenseByCategory, error)

	// YearlySummary retrieves per-month totals for a year
	YearlySummary(ctx context.Context, year int) (*YearlySummary, error)
}

// AuthService handles authentication
type AuthService interface {
	// Login authenticates and installs the session on the client
	Login(ctx context.Context, username, password string) error

	// Register creates a new user
	Register(ctx context.Context, params *RegisterParams) error

	// Logout drops the session and removes the session file
	Logout() error

	// GetSession returns the current session
	GetSession() (*Session, error)

	// SaveSession saves session to file
	SaveSession(path string) error

	// LoadSession loads session from file
	LoadSession(path string) error
}
