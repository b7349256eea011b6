package fintrack

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as income or expense
type TransactionKind string

const (
	// KindIncome marks money flowing into an account
	KindIncome TransactionKind = "INCOME"

	// KindExpense marks money flowing out of an account
	KindExpense TransactionKind = "EXPENSE"
)

// Valid reports whether k is one of the two known kinds
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind accepts "income"/"expense" in any case
func ParseKind(s string) (TransactionKind, error) {
	switch TransactionKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Account represents a money account owned by the user
type Account struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Category represents a user-defined transaction category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction represents a single income or expense entry
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"type"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Category    *Category       `json:"category"`
	Account     *Account        `json:"account"`
}

// Budget represents a spending limit for a category in one month
type Budget struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Category *Category       `json:"category"`
}

// MonthlySummary is the server-side income/expense total for one month
type MonthlySummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// Net returns income minus expense
func (m MonthlySummary) Net() decimal.Decimal {
	return m.TotalIncome.Sub(m.TotalExpense)
}

// ExpenseByCategory is one slice of the server-side expense breakdown
type ExpenseByCategory struct {
	CategoryName string          `json:"categoryName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// MonthTotals is one month of a yearly summary
type MonthTotals struct {
	Month        int             `json:"month"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// Net returns income minus expense
func (m MonthTotals) Net() decimal.Decimal {
	return m.TotalIncome.Sub(m.TotalExpense)
}

// YearlySummary is the server-side summary of a whole year
type YearlySummary struct {
	Year             int             `json:"year"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	MonthlySummaries []MonthTotals   `json:"monthlySummaries"`
}

// Elapsed returns a copy whose monthly entries stop at now's month when the
// summary is for now's year. Past and future years are returned unchanged.
func (y *YearlySummary) Elapsed(now time.Time) *YearlySummary {
	out := *y
	out.MonthlySummaries = make([]MonthTotals, 0, len(y.MonthlySummaries))
	for _, m := range y.MonthlySummaries {
		if y.Year == now.Year() && m.Month > int(now.Month()) {
			continue
		}
		out.MonthlySummaries = append(out.MonthlySummaries, m)
	}
	return &out
}

// Session represents an authenticated session
type Session struct {
	Token      string    `json:"token"`
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DeviceUUID string    `json:"deviceUuid"`
}

// Parameter structures

// CreateAccountParams for creating accounts
type CreateAccountParams struct {
	Name           string          `json:"name" validate:"notblank"`
	InitialBalance decimal.Decimal `json:"initialBalance" validate:"gte=0"`
}

// UpdateAccountParams for renaming accounts. The balance is derived server-side
// from transactions and cannot be edited directly.
type UpdateAccountParams struct {
	Name string `json:"name" validate:"notblank"`
}

// CategoryParams for creating or renaming categories
type CategoryParams struct {
	Name string `json:"name" validate:"notblank"`
}

// TransactionParams for creating or updating transactions
type TransactionParams struct {
	Amount      decimal.Decimal `json:"amount" validate:"gte=1"`
	Kind        TransactionKind `json:"type" validate:"oneof=INCOME EXPENSE"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description" validate:"notblank"`
	CategoryID  int64           `json:"categoryId" validate:"gt=0"`
	AccountID   int64           `json:"accountId" validate:"gt=0"`
}

// FromTransaction prefills params from an existing transaction, as an edit form does
func FromTransaction(tx *Transaction) *TransactionParams {
	p := &TransactionParams{
		Amount:      tx.Amount,
		Kind:        tx.Kind,
		Date:        tx.Date.Time,
		Description: tx.Description,
	}
	if tx.Category != nil {
		p.CategoryID = tx.Category.ID
	}
	if tx.Account != nil {
		p.AccountID = tx.Account.ID
	}
	return p
}

// BudgetParams for creating or updating budgets
type BudgetParams struct {
	Amount     decimal.Decimal `json:"amount" validate:"gte=1"`
	Month      int             `json:"month" validate:"gte=1,lte=12"`
	Year       int             `json:"year" validate:"gt=0"`
	CategoryID int64           `json:"categoryId" validate:"gt=0"`
}

// jsonAmount renders a decimal as a bare JSON number
func jsonAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
