package main

import (
	"context"
	"sort"
	"testing"

	"github.com/eshaffer321/fintrack-go/pkg/fintrack"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTools_ListsEveryTool(t *testing.T) {
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "fintrack", Version: "1.0.0"}, nil)
	require.NotPanics(t, func() { registerTools(server, &fintrack.Client{}) })

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"get_accounts",
		"get_budgets",
		"get_categories",
		"get_daily_totals",
		"get_monthly_report",
		"get_transactions",
		"get_yearly_report",
	}, names)
}
