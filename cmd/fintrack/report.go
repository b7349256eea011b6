package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly and yearly reports",
	}

	cmd.AddCommand(monthlyReportCmd(a))
	cmd.AddCommand(yearlyReportCmd(a))
	cmd.AddCommand(calendarReportCmd(a))
	cmd.AddCommand(categoryReportCmd(a))

	return cmd
}

func monthlyReportCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Income, expense and expense breakdown of a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, m, err := parsePeriod(month, a.now())
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Reports.MonthlySummary(cmd.Context(), year, m)
			if err != nil {
				return err
			}
			breakdown, err := client.Reports.ExpenseByCategory(cmd.Context(), year, m)
			if err != nil {
				return err
			}

			share := fintrack.IncomeShare(summary.TotalIncome, summary.TotalExpense)
			fmt.Fprintln(a.out, cli.RenderBox(
				fmt.Sprintf("%s %s %d", cli.ChartIcon, m, year),
				fmt.Sprintf("Income:  %s (%s)\nExpense: %s\nNet:     %s",
					cli.IncomeStyle.Render(cli.Amount(summary.TotalIncome)), cli.Percent(share),
					cli.ExpenseStyle.Render(cli.Amount(summary.TotalExpense)),
					cli.Net(summary.Net())),
			))

			if len(breakdown) == 0 {
				return nil
			}

			fmt.Fprintln(a.out)
			w := newTable(a.out)
			header(w, "Category", "Spent")
			for _, e := range breakdown {
				fmt.Fprintf(w, "%s\t%s\n", e.CategoryName, cli.Amount(e.TotalAmount))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM, default current)")

	return cmd
}

func yearlyReportCmd(a *app) *cobra.Command {
	var (
		year  int
		local bool
	)

	cmd := &cobra.Command{
		Use:   "yearly",
		Short: "Per-month totals of a year",
		Long: `Show income, expense and net per month. For the current year only the
months that have started are listed.

With --local the totals are computed from the year's transactions instead of
the server's summary, and months without transactions are left out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			y := parseYear(year, now)

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if local {
				return writeLocalYear(cmd, a, client, y, now)
			}

			summary, err := client.Reports.YearlySummary(cmd.Context(), y)
			if err != nil {
				return err
			}
			summary = summary.Elapsed(now)

			fmt.Fprintln(a.out, cli.FormatTitle(fmt.Sprintf("%s %d", cli.ChartIcon, summary.Year)))
			w := newTable(a.out)
			header(w, "Month", "Income", "Expense", "Net")
			for _, mt := range summary.MonthlySummaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					time.Month(mt.Month), cli.Amount(mt.TotalIncome), cli.Amount(mt.TotalExpense), cli.Net(mt.Net()))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cli.HeaderStyle.Render("Total"),
				cli.Amount(summary.TotalIncome), cli.Amount(summary.TotalExpense),
				cli.Net(summary.TotalIncome.Sub(summary.TotalExpense)))
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	cmd.Flags().BoolVar(&local, "local", false, "compute the totals from transactions")

	return cmd
}

// writeLocalYear buckets the year's transactions by month and prints the elapsed months
func writeLocalYear(cmd *cobra.Command, a *app, client *fintrack.Client, year int, now time.Time) error {
	txs, err := client.Transactions.List(cmd.Context())
	if err != nil {
		return err
	}

	inYear := make([]*fintrack.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Year() == year {
			inYear = append(inYear, tx)
		}
	}

	buckets, err := fintrack.BucketByMonth(fintrack.Records(inYear), year)
	if err != nil {
		return err
	}
	buckets = fintrack.ElapsedMonths(buckets, year, now)

	fmt.Fprintln(a.out, cli.FormatTitle(fmt.Sprintf("%s %d", cli.ChartIcon, year)))
	if len(buckets) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No transactions."))
		return nil
	}

	var total fintrack.Totals
	w := newTable(a.out)
	header(w, "Month", "Income", "Expense", "Net")
	for _, b := range buckets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Month, cli.Amount(b.IncomeTotal), cli.Amount(b.ExpenseTotal), cli.Net(b.Net()))
		total.IncomeTotal = total.IncomeTotal.Add(b.IncomeTotal)
		total.ExpenseTotal = total.ExpenseTotal.Add(b.ExpenseTotal)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cli.HeaderStyle.Render("Total"),
		cli.Amount(total.IncomeTotal), cli.Amount(total.ExpenseTotal), cli.Net(total.Net()))
	return w.Flush()
}

func calendarReportCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Transactions of a month grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, m, err := parsePeriod(month, a.now())
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			txs, err := client.Transactions.ListByMonth(cmd.Context(), year, m)
			if err != nil {
				return err
			}

			records := fintrack.Records(txs)
			days, err := fintrack.BucketByDay(records)
			if err != nil {
				return err
			}
			total, err := fintrack.Summarize(records)
			if err != nil {
				return err
			}

			writeCalendar(a, days)
			fmt.Fprintln(a.out, cli.RenderBox(fmt.Sprintf("%s %d", m, year), fmt.Sprintf(
				"Income:  %s\nExpense: %s\nNet:     %s",
				cli.Amount(total.IncomeTotal), cli.Amount(total.ExpenseTotal), cli.Net(total.Net()))))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM, default current)")

	return cmd
}

func writeCalendar(a *app, days []fintrack.DailyBucket) {
	if len(days) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No transactions."))
		return
	}

	for _, day := range days {
		fmt.Fprintf(a.out, "%s  %s %s\n",
			cli.TitleStyle.Render(day.Date.Format("Mon 02 Jan")),
			cli.IncomeStyle.Render("+"+cli.Amount(day.IncomeTotal)),
			cli.ExpenseStyle.Render("-"+cli.Amount(day.ExpenseTotal)))
		for _, r := range day.Transactions {
			fmt.Fprintf(a.out, "  #%-6d %-16s %-16s %s\n", r.ID, r.Category, r.AccountLabel, cli.StyledAmount(r.Amount, r.Kind))
		}
	}
	fmt.Fprintln(a.out)
}

func categoryReportCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Expense share per category, computed from the month's transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, m, err := parsePeriod(month, a.now())
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			txs, err := client.Transactions.ListByMonth(cmd.Context(), year, m)
			if err != nil {
				return err
			}

			totals, err := fintrack.BucketByCategory(fintrack.Records(txs))
			if err != nil {
				return err
			}

			shares := fintrack.ExpenseShares(totals)
			if len(shares) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No expenses."))
				return nil
			}

			w := newTable(a.out)
			header(w, "Category", "Spent", "Share", "")
			for _, s := range shares {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Category, cli.Amount(s.Amount), cli.Percent(s.Percent), bar(s.Percent))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM, default current)")

	return cmd
}

// bar draws one block per 5 percent
func bar(percent decimal.Decimal) string {
	return strings.Repeat("█", int(percent.IntPart()/5))
}
