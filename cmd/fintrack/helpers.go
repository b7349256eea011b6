package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/shopspring/decimal"
)

// parsePeriod reads a "YYYY-MM" flag value; empty means the month of now
func parsePeriod(s string, now time.Time) (int, time.Month, error) {
	if strings.TrimSpace(s) == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// parseYear reads a year flag value; zero means the year of now
func parseYear(year int, now time.Time) int {
	if year == 0 {
		return now.Year()
	}
	return year
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// header writes a styled header row and a dashed rule under it
func header(w io.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = cli.HeaderStyle.Render(c)
		rules[i] = strings.Repeat("-", len(c)+2)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
}
