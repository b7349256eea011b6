package main

import (
	"fmt"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/spf13/cobra"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
	}

	cmd.AddCommand(listTransactionsCmd(a))
	cmd.AddCommand(addTransactionCmd(a))
	cmd.AddCommand(editTransactionCmd(a))
	cmd.AddCommand(deleteTransactionCmd(a))

	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Long:  `List all transactions, or only those of one month with --month YYYY-MM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			var txs []*fintrack.Transaction
			if month == "" {
				txs, err = client.Transactions.List(cmd.Context())
			} else {
				year, m, perr := parsePeriod(month, a.now())
				if perr != nil {
					return perr
				}
				txs, err = client.Transactions.ListByMonth(cmd.Context(), year, m)
			}
			if err != nil {
				return err
			}

			return writeTransactions(a, txs)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")

	return cmd
}

func writeTransactions(a *app, txs []*fintrack.Transaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No transactions."))
		return nil
	}

	w := newTable(a.out)
	header(w, "ID", "Date", "Description", "Category", "Account", "Amount")
	for _, tx := range txs {
		r := tx.Record()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, tx.Description, r.Category, r.AccountLabel, cli.StyledAmount(tx.Amount, tx.Kind))
	}
	return w.Flush()
}

// transactionFlags holds the form fields shared by add and edit
type transactionFlags struct {
	amount      string
	kind        string
	date        string
	description string
	categoryID  int64
	accountID   int64
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, always positive")
	cmd.Flags().StringVar(&f.kind, "type", "", "income or expense")
	cmd.Flags().StringVar(&f.date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description")
	cmd.Flags().Int64Var(&f.categoryID, "category", 0, "category id")
	cmd.Flags().Int64Var(&f.accountID, "account", 0, "account id")
}

// apply copies the flags the user set onto params
func (f *transactionFlags) apply(cmd *cobra.Command, params *fintrack.TransactionParams) error {
	flags := cmd.Flags()
	if flags.Changed("amount") {
		amount, err := parseAmount(f.amount)
		if err != nil {
			return err
		}
		params.Amount = amount
	}
	if flags.Changed("type") {
		kind, err := fintrack.ParseKind(f.kind)
		if err != nil {
			return err
		}
		params.Kind = kind
	}
	if flags.Changed("date") {
		d, err := fintrack.ParseDate(f.date)
		if err != nil {
			return err
		}
		params.Date = d.Time
	}
	if flags.Changed("description") {
		params.Description = f.description
	}
	if flags.Changed("category") {
		params.CategoryID = f.categoryID
	}
	if flags.Changed("account") {
		params.AccountID = f.accountID
	}
	return nil
}

func addTransactionCmd(a *app) *cobra.Command {
	f := &transactionFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := &fintrack.TransactionParams{Date: fintrack.DateOf(a.now()).Time}
			if err := f.apply(cmd, params); err != nil {
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			tx, err := client.Transactions.Create(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Recorded %s %s on %s (id %d)",
				cli.Kind(tx.Kind), cli.Amount(tx.Amount), tx.Date, tx.ID)))
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func editTransactionCmd(a *app) *cobra.Command {
	f := &transactionFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Long:  `Change the given fields of a transaction. Fields without a flag keep their current value.`,
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

			txs, err := client.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}

			list := fintrack.NewTransactionCollection(txs)
			current := list.Get(id)
			if current == nil {
				return fmt.Errorf("transaction %d: %w", id, fintrack.ErrNotFound)
			}

			params := fintrack.FromTransaction(current)
			if err := f.apply(cmd, params); err != nil {
				return err
			}

			updated, err := client.Transactions.Update(cmd.Context(), id, params)
			if err != nil {
				return err
			}
			list.Replace(updated)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", id)))
			return writeTransactions(a, firstN(list.Items(), 5))
		},
	}

	f.register(cmd)

	return cmd
}

func deleteTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
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

			if err := client.Transactions.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func firstN(txs []*fintrack.Transaction, n int) []*fintrack.Transaction {
	if len(txs) < n {
		return txs
	}
	return txs[:n]
}
