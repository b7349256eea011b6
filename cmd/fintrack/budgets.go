package main

import (
	"fmt"
	"time"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/spf13/cobra"
)

func budgetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage monthly category budgets",
	}

	cmd.AddCommand(listBudgetsCmd(a))
	cmd.AddCommand(setBudgetCmd(a))
	cmd.AddCommand(editBudgetCmd(a))
	cmd.AddCommand(deleteBudgetCmd(a))

	return cmd
}

func listBudgetsCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets of a month against actual spending",
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

			budgets, err := client.Budgets.List(cmd.Context(), year, m)
			if err != nil {
				return err
			}

			return writeBudgets(cmd, a, client, year, m, budgets)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM, default current)")

	return cmd
}

// writeBudgets prints each budget of a month against what was spent in its category
func writeBudgets(cmd *cobra.Command, a *app, client *fintrack.Client, year int, m time.Month, budgets []*fintrack.Budget) error {
	if len(budgets) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render(fmt.Sprintf("No budgets for %d-%02d.", year, int(m))))
		return nil
	}

	txs, err := client.Transactions.ListByMonth(cmd.Context(), year, m)
	if err != nil {
		return err
	}
	spent, err := fintrack.BucketByCategory(fintrack.Records(txs))
	if err != nil {
		return err
	}

	w := newTable(a.out)
	header(w, "ID", "Category", "Budget", "Spent", "Remaining")
	for _, b := range budgets {
		key := fintrack.Uncategorized
		if b.Category != nil {
			key = fintrack.KnownCategory(b.Category.Name)
		}
		used := spent[key]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			b.ID, key, cli.Amount(b.Amount), cli.Amount(used), cli.Net(b.Amount.Sub(used)))
	}
	return w.Flush()
}

// budgetFlags holds the budget form fields
type budgetFlags struct {
	amount     string
	month      string
	categoryID int64
}

func (f *budgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "budget amount")
	cmd.Flags().StringVar(&f.month, "month", "", "month (YYYY-MM, default current)")
	cmd.Flags().Int64Var(&f.categoryID, "category", 0, "category id")
}

func (f *budgetFlags) params(a *app) (*fintrack.BudgetParams, error) {
	amount, err := parseAmount(f.amount)
	if err != nil {
		return nil, err
	}
	year, m, err := parsePeriod(f.month, a.now())
	if err != nil {
		return nil, err
	}
	params := &fintrack.BudgetParams{
		Amount:     amount,
		Month:      int(m),
		Year:       year,
		CategoryID: f.categoryID,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// loadBudgets fetches the budgets of the month params targets
func loadBudgets(cmd *cobra.Command, client *fintrack.Client, params *fintrack.BudgetParams) (*fintrack.Collection[fintrack.Budget], error) {
	budgets, err := client.Budgets.List(cmd.Context(), params.Year, time.Month(params.Month))
	if err != nil {
		return nil, err
	}
	return fintrack.NewBudgetCollection(budgets), nil
}

func setBudgetCmd(a *app) *cobra.Command {
	f := &budgetFlags{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a budget for a category and month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := f.params(a)
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadBudgets(cmd, client, params)
			if err != nil {
				return err
			}

			budget, err := client.Budgets.Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			list.Append(budget)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Budget %d set to %s for %d-%02d",
				budget.ID, cli.Amount(budget.Amount), params.Year, params.Month)))
			return writeBudgets(cmd, a, client, params.Year, time.Month(params.Month), list.Items())
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func editBudgetCmd(a *app) *cobra.Command {
	f := &budgetFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			params, err := f.params(a)
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadBudgets(cmd, client, params)
			if err != nil {
				return err
			}

			budget, err := client.Budgets.Update(cmd.Context(), id, params)
			if err != nil {
				return err
			}
			// A budget moved into this month is new to the list
			if !list.Replace(budget) {
				list.Append(budget)
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Budget %d is now %s", budget.ID, cli.Amount(budget.Amount))))
			return writeBudgets(cmd, a, client, params.Year, time.Month(params.Month), list.Items())
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteBudgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Budgets.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Deleted budget %d", id)))
			return nil
		},
	}
}
