package fintrack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eshaffer321/fintrack-go/internal/transport"
	internalTypes "github.com/eshaffer321/fintrack-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the default tracker API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout

	// UserAgent is the user agent string
	UserAgent = internalTypes.UserAgent
)

// Client is the main tracker API client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Categories   CategoryService
	Transactions TransactionService
	Budgets      BudgetService
	Reports      ReportService
	Auth         AuthService

	// Internal fields
	baseURL    string
	httpClient *http.Client
	transport  Transport
	options    *ClientOptions
	session    *Session
	deviceID   string
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// SessionFile path for session persistence
	SessionFile string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// RetryConfig configures retry behavior
type RetryConfig = internalTypes.RetryConfig

// Hooks provides lifecycle hooks for requests
type Hooks = internalTypes.Hooks

// Logger interface for logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles HTTP communication
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error
	DoPublic(ctx context.Context, method, path string, body interface{}, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// NewClient creates a new tracker client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// A broken DSN must not stop the client from working
		if err := sentry.Init(sentryOpts); err != nil {
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	var logger internalTypes.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	deviceID := uuid.New().String()
	trans := transport.NewHTTPTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		Headers:     map[string]string{transport.DeviceIDHeader: deviceID},
		RetryConfig: opts.RetryConfig,
		Logger:      logger,
		Hooks:       opts.Hooks,
	})

	c := &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		transport:  trans,
		options:    opts,
		deviceID:   deviceID,
	}

	c.initServices()

	if opts.Token != "" {
		c.SetToken(opts.Token)
	}

	// Load session if file specified
	if opts.SessionFile != "" && opts.Token == "" {
		if err := c.loadSession(opts.SessionFile); err != nil && opts.Logger != nil {
			opts.Logger.Warn("Failed to load session", "error", err)
		}
	}

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Categories = &categoryService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Reports = &reportService{client: c}
	c.Auth = newAuthService(c)
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetAuth(token)
	if c.session == nil {
		c.session = &Session{}
	}
	c.session.Token = token
}

// GetSession returns the current session
func (c *Client) GetSession() *Session {
	return c.session
}

// loadSession loads session from file
func (c *Client) loadSession(path string) error {
	if c.Auth != nil {
		return c.Auth.LoadSession(path)
	}
	return nil
}

// execute sends one API request through the rate limiter, hooks and Sentry
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			if hub := sentry.GetHubFromContext(ctx); hub != nil {
				hub.CaptureException(err)
			} else {
				sentry.CaptureException(err)
			}
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	err := c.transport.Do(ctx, method, path, query, body, result)
	duration := time.Since(start)

	if err != nil && !IsAuthError(err) {
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("http.method", method)
			scope.SetTag("http.path", path)
			scope.SetContext("request", map[string]interface{}{
				"query":    query.Encode(),
				"duration": duration.String(),
			})
			hub.CaptureException(err)
		})
	}

	if c.options.Logger != nil {
		if err != nil {
			c.options.Logger.Warn("API call failed", "method", method, "path", path, "duration", duration, "error", err)
		} else {
			c.options.Logger.Debug("API call", "method", method, "path", path, "duration", duration)
		}
	}

	return err
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

func resourcePath(collection string, id int64) string {
	return fmt.Sprintf("/%s/%d", collection, id)
}
