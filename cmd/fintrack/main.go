package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by all commands of one invocation
type app struct {
	cfgFile string
	v       *viper.Viper
	out     io.Writer
	logger  *slog.Logger
	now     func() time.Time
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{
		v:   viper.New(),
		out: out,
		now: time.Now,
	}

	rootCmd := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker client",
		Long: `fintrack manages accounts, transactions, categories and budgets on a
finance tracker server and prints monthly and yearly reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/fintrack/config.yaml)")
	flags.String("base-url", fintrack.DefaultBaseURL, "tracker API base URL")
	flags.String("token", "", "API token (skips the saved session)")
	flags.String("session-file", "", "session file (default: $HOME/.config/fintrack/session.json)")
	flags.String("sentry-dsn", "", "Sentry DSN for error reporting")
	flags.Duration("timeout", fintrack.DefaultTimeout, "HTTP timeout")
	flags.Int("retries", 3, "maximum retries for failed requests")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = a.v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("token", flags.Lookup("token"))
	_ = a.v.BindPFlag("session_file", flags.Lookup("session-file"))
	_ = a.v.BindPFlag("sentry_dsn", flags.Lookup("sentry-dsn"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("retries", flags.Lookup("retries"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.SetOut(out)

	// Add commands
	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(registerCmd(a))
	rootCmd.AddCommand(accountsCmd(a))
	rootCmd.AddCommand(categoriesCmd(a))
	rootCmd.AddCommand(transactionsCmd(a))
	rootCmd.AddCommand(budgetsCmd(a))
	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(versionCmd(a))

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig() error {
	// Set up config file
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		a.v.AddConfigPath(filepath.Join(home, ".config", "fintrack"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.SetDefault("session_file", filepath.Join(home, ".config", "fintrack", "session.json"))
	}

	// Environment variables; nested keys use underscores (FINTRACK_LOGGING_LEVEL)
	a.v.SetEnvPrefix("FINTRACK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	// Read config file
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	logger, err := newLogger(a.v.GetString("logging.level"), a.v.GetString("logging.format"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	return nil
}

func newLogger(level, format string) (*slog.Logger, error) {
	// Parse log level
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	switch format {
	case "console":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

// newClient builds an API client from the resolved configuration
func (a *app) newClient() (*fintrack.Client, error) {
	opts := &fintrack.ClientOptions{
		BaseURL:     a.v.GetString("base_url"),
		Timeout:     a.v.GetDuration("timeout"),
		Token:       a.v.GetString("token"),
		SessionFile: a.v.GetString("session_file"),
		SentryDSN:   a.v.GetString("sentry_dsn"),
		RetryConfig: &fintrack.RetryConfig{
			MaxRetries: a.v.GetInt("retries"),
			RetryWait:  500 * time.Millisecond,
			MaxWait:    5 * time.Second,
		},
	}
	if a.logger != nil {
		opts.Logger = a.logger
	}

	client, err := fintrack.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "fintrack %s\n", version)
		},
	}
}
