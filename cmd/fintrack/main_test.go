package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned JSON per path and records the paths it saw
type fakeAPI struct {
	routes map[string]string
	status map[string]int
	seen   []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.seen = append(f.seen, key)
	if code, ok := f.status[key]; ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"message": "refused"}`))
		return
	}
	body, ok := f.routes[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func runCLI(t *testing.T, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	var out bytes.Buffer
	root := newRootCmd(&out)
	base := []string{
		"--base-url", server.URL,
		"--session-file", filepath.Join(t.TempDir(), "session.json"),
		"--retries", "0",
		"--log-level", "error",
	}
	root.SetArgs(append(base, args...))
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		year    int
		month   time.Month
		wantErr bool
	}{
		{"", 2024, time.June, false},
		{"2023-11", 2023, time.November, false},
		{" 2024-01 ", 2024, time.January, false},
		{"2024-13", 0, 0, true},
		{"June", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			year, month, err := parsePeriod(tt.in, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.month, month)
		})
	}
}

func TestParseIDAndAmount(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("0")
	assert.Error(t, err)
	_, err = parseID("abc")
	assert.Error(t, err)

	amount, err := parseAmount("12.30")
	require.NoError(t, err)
	assert.Equal(t, "12.3", amount.String())
	_, err = parseAmount("12,30")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug", "json")
	assert.NoError(t, err)

	_, err = newLogger("loud", "console")
	assert.Error(t, err)

	_, err = newLogger("info", "xml")
	assert.Error(t, err)
}

func TestAccountsList(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /accounts": `[{"id": 1, "name": "Wallet", "balance": 1200.5}, {"id": 2, "name": "Card", "balance": -200}]`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "accounts", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Wallet")
	assert.Contains(t, out, "1,200.50")
	assert.Contains(t, out, "Net worth")
	assert.Contains(t, out, "1,000.50")
}

func TestCommandsRequireLogin(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{"GET /accounts": `[]`}}

	_, err := runCLI(t, api, "accounts", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
	assert.Empty(t, api.seen)
}

func TestAccountsDeleteConflict(t *testing.T) {
	api := &fakeAPI{
		routes: map[string]string{"GET /accounts": `[{"id": 3, "name": "Savings", "balance": 10}]`},
		status: map[string]int{"DELETE /accounts/3": http.StatusConflict},
	}

	_, err := runCLI(t, api, "--token", "tok", "accounts", "delete", "3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "still has transactions")
}

func TestAccountsAddShowsUpdatedList(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /accounts":  `[{"id": 1, "name": "Wallet", "balance": 100}]`,
		"POST /accounts": `{"id": 2, "name": "Savings", "balance": 400}`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "accounts", "add", "Savings", "--balance", "400")

	require.NoError(t, err)
	assert.Contains(t, out, `Created account "Savings" (id 2)`)
	assert.Less(t, strings.Index(out, "Wallet"), strings.LastIndex(out, "Savings"))
	assert.Contains(t, out, "500.00")
	assert.Equal(t, []string{"GET /accounts", "POST /accounts"}, api.seen)
}

func TestAccountsDeleteDropsRow(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /accounts":      `[{"id": 1, "name": "Wallet", "balance": 100}, {"id": 2, "name": "Old", "balance": 0}]`,
		"DELETE /accounts/2": ``,
	}}

	out, err := runCLI(t, api, "--token", "tok", "accounts", "delete", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted account 2")
	assert.Contains(t, out, "Wallet")
	assert.NotContains(t, out, "Old")
}

func TestCategoriesRenameReplacesRow(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /categories":   `[{"id": 1, "name": "Food"}, {"id": 2, "name": "Travl"}]`,
		"PUT /categories/2": `{"id": 2, "name": "Travel"}`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "categories", "rename", "2", "Travel")

	require.NoError(t, err)
	assert.NotContains(t, out, "Travl")
	assert.Less(t, strings.Index(out, "Food"), strings.LastIndex(out, "Travel"))
}

func TestBudgetsSetShowsMonth(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /budgets":  `[{"id": 1, "amount": 300, "month": 3, "year": 2024, "category": {"id": 1, "name": "Food"}}]`,
		"POST /budgets": `{"id": 2, "amount": 100, "month": 3, "year": 2024, "category": {"id": 2, "name": "Fun"}}`,
		"GET /transactions/monthly": `[
			{"id": 1, "amount": 120, "type": "EXPENSE", "date": "2024-03-01", "category": {"id": 1, "name": "Food"}},
			{"id": 2, "amount": 40, "type": "EXPENSE", "date": "2024-03-02", "category": {"id": 2, "name": "Fun"}}
		]`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "budgets", "set", "--amount", "100", "--category", "2", "--month", "2024-03")

	require.NoError(t, err)
	assert.Contains(t, out, "Budget 2 set to 100.00 for 2024-03")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "180.00")
	assert.Contains(t, out, "60.00")
}

func TestBudgetsSetValidatesBeforeCalling(t *testing.T) {
	api := &fakeAPI{}

	_, err := runCLI(t, api, "--token", "tok", "budgets", "set", "--amount", "0.5", "--category", "2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be at least 1")
	assert.Empty(t, api.seen)
}

func TestReportYearlyLocal(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /transactions": `[
			{"id": 1, "amount": 1000, "type": "INCOME", "date": "2023-02-01"},
			{"id": 2, "amount": 250, "type": "EXPENSE", "date": "2023-02-10"},
			{"id": 3, "amount": 50, "type": "EXPENSE", "date": "2023-07-04"},
			{"id": 4, "amount": 999, "type": "EXPENSE", "date": "2022-12-31"}
		]`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "report", "yearly", "--year", "2023", "--local")

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "February"), strings.Index(out, "July"))
	assert.NotContains(t, out, "January")
	assert.NotContains(t, out, "999")
	assert.Contains(t, out, "700.00")
	assert.Equal(t, []string{"GET /transactions"}, api.seen)
}

func TestLoggingLevelFromEnv(t *testing.T) {
	t.Setenv("FINTRACK_LOGGING_LEVEL", "loud")

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"--session-file", filepath.Join(t.TempDir(), "session.json"), "version"})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level: loud")
}

func TestTransactionsAddValidation(t *testing.T) {
	api := &fakeAPI{}

	_, err := runCLI(t, api, "--token", "tok", "transactions", "add", "--amount", "0", "--type", "expense")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation errors")
	assert.Empty(t, api.seen)
}

func TestTransactionsAddUnknownType(t *testing.T) {
	api := &fakeAPI{}

	_, err := runCLI(t, api, "--token", "tok", "transactions", "add", "--amount", "5", "--type", "transfer")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transaction kind")
}

func TestReportCalendar(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /transactions/monthly": `[
			{"id": 1, "amount": 500000, "type": "EXPENSE", "date": "2024-03-01", "category": {"id": 1, "name": "Food"}},
			{"id": 2, "amount": 200000, "type": "INCOME", "date": "2024-03-01", "category": null},
			{"id": 3, "amount": 300000, "type": "EXPENSE", "date": "2024-03-02", "category": {"id": 1, "name": "Food"}}
		]`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "report", "calendar", "--month", "2024-03")

	require.NoError(t, err)
	second := strings.Index(out, "Sat 02 Mar")
	first := strings.Index(out, "Fri 01 Mar")
	require.True(t, second >= 0 && first >= 0, out)
	assert.Less(t, second, first)
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "800,000.00")
	assert.Contains(t, out, "-600,000.00")
}

func TestReportCategories(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"GET /transactions/monthly": `[
			{"id": 1, "amount": 75, "type": "EXPENSE", "date": "2024-03-01", "category": {"id": 1, "name": "Food"}},
			{"id": 2, "amount": 25, "type": "EXPENSE", "date": "2024-03-04", "category": null},
			{"id": 3, "amount": 900, "type": "INCOME", "date": "2024-03-05", "category": null}
		]`,
	}}

	out, err := runCLI(t, api, "--token", "tok", "report", "categories", "--month", "2024-03")

	require.NoError(t, err)
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Less(t, strings.Index(out, "Food"), strings.Index(out, "Uncategorized"))
}

func TestLoginThenList(t *testing.T) {
	api := &fakeAPI{routes: map[string]string{
		"POST /auth/login": `{"userId": 1, "token": "jwt"}`,
		"GET /categories":  `[{"id": 1, "name": "Food"}]`,
	}}
	server := httptest.NewServer(api)
	defer server.Close()
	session := filepath.Join(t.TempDir(), "session.json")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := newRootCmd(&out)
		root.SetArgs(append([]string{"--base-url", server.URL, "--session-file", session, "--log-level", "error"}, args...))
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("login", "-u", "alice", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	out, err = run("categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")

	_, err = run("logout")
	require.NoError(t, err)
	assert.NoFileExists(t, session)
}
