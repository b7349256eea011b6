package main

import (
	"fmt"

	"github.com/eshaffer321/fintrack-go/internal/cli"
	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/spf13/cobra"
)

func loginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Long: `Authenticate against the tracker API. The session is saved to the session
file and reused by later commands until it expires or you log out.
The password may also be supplied through FINTRACK_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = a.v.GetString("password")
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Auth.Login(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Logged in as %s", username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Auth.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}

			fmt.Fprintln(a.out, cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	var params fintrack.RegisterParams

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Auth.Register(cmd.Context(), &params); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Registered %s, you can now log in", params.Username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&params.Username, "username", "u", "", "username (at least 3 characters)")
	cmd.Flags().StringVarP(&params.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&params.Password, "password", "p", "", "password (at least 6 characters)")

	return cmd
}
