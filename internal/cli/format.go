package cli

import (
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer    = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
)

// Amount renders d with thousands separators and two decimals, e.g. "1,234.50"
func Amount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Percent renders d as "12.5%"
func Percent(d decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", d.Round(1).InexactFloat64())
}

// SignedAmount renders an amount with + for income and - for expense
func SignedAmount(d decimal.Decimal, kind fintrack.TransactionKind) string {
	if kind == fintrack.KindIncome {
		return "+" + Amount(d)
	}
	return "-" + Amount(d)
}

// StyledAmount colors an amount by kind
func StyledAmount(d decimal.Decimal, kind fintrack.TransactionKind) string {
	if kind == fintrack.KindIncome {
		return IncomeStyle.Render(SignedAmount(d, kind))
	}
	return ExpenseStyle.Render(SignedAmount(d, kind))
}

// Kind renders "INCOME" as "Income"
func Kind(kind fintrack.TransactionKind) string {
	return titleCaser.String(string(kind))
}

// Net renders a net amount, colored by sign
func Net(d decimal.Decimal) string {
	if d.IsNegative() {
		return ExpenseStyle.Render(Amount(d))
	}
	return IncomeStyle.Render(Amount(d))
}
