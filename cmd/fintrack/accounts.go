package main

import (
	"errors"
	"fmt"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func accountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(listAccountsCmd(a))
	cmd.AddCommand(addAccountCmd(a))
	cmd.AddCommand(renameAccountCmd(a))
	cmd.AddCommand(deleteAccountCmd(a))

	return cmd
}

func listAccountsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances and net worth",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			accounts, err := client.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			return writeAccounts(a, accounts)
		},
	}
}

// writeAccounts prints the account table and the net worth box
func writeAccounts(a *app, accounts []*fintrack.Account) error {
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No accounts yet. Use 'fintrack accounts add' to create one."))
		return nil
	}

	w := newTable(a.out)
	header(w, "ID", "Name", "Balance")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\n", acc.ID, acc.Name, cli.Amount(acc.Balance))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := fintrack.SummarizeAccounts(accounts)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, cli.RenderBox("Net worth", fmt.Sprintf(
		"Assets:      %s\nLiabilities: %s\nNet worth:   %s",
		cli.Amount(summary.Assets), cli.Amount(summary.Liabilities), cli.Net(summary.NetWorth()))))
	return nil
}

// loadAccounts fetches the account list that a mutation then updates in place
func loadAccounts(cmd *cobra.Command, client *fintrack.Client) (*fintrack.Collection[fintrack.Account], error) {
	accounts, err := client.Accounts.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	return fintrack.NewAccountCollection(accounts), nil
}

func addAccountCmd(a *app) *cobra.Command {
	var balance string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := decimal.Zero
			if balance != "" {
				var err error
				if initial, err = parseAmount(balance); err != nil {
					return err
				}
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := loadAccounts(cmd, client)
			if err != nil {
				return err
			}

			account, err := client.Accounts.Create(cmd.Context(), &fintrack.CreateAccountParams{
				Name:           args[0],
				InitialBalance: initial,
			})
			if err != nil {
				return err
			}

			list.Append(account)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Created account %q (id %d)", account.Name, account.ID)))
			return writeAccounts(a, list.Items())
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "", "opening balance")

	return cmd
}

func renameAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
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

			list, err := loadAccounts(cmd, client)
			if err != nil {
				return err
			}

			account, err := client.Accounts.Update(cmd.Context(), id, &fintrack.UpdateAccountParams{Name: args[1]})
			if err != nil {
				return err
			}

			list.Replace(account)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Renamed account %d to %q", account.ID, account.Name)))
			return writeAccounts(a, list.Items())
		},
	}
}

func deleteAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account without transactions",
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

			list, err := loadAccounts(cmd, client)
			if err != nil {
				return err
			}

			if err := client.Accounts.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, fintrack.ErrConflict) {
					return fmt.Errorf("account %d still has transactions; delete or move them first", id)
				}
				return err
			}

			list.Remove(id)

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Deleted account %d", id)))
			return writeAccounts(a, list.Items())
		},
	}
}
