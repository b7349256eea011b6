package fintrack

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const transactionsResponse = `[
	{
		"id": 1, "amount": 12.50, "type": "EXPENSE", "date": "2024-03-01",
		"description": "Lunch",
		"category": {"id": 3, "name": "Food"},
		"account": {"id": 1, "name": "Wallet", "balance": 100}
	},
	{
		"id": 2, "amount": 3000, "type": "INCOME", "date": "2024-03-15",
		"description": "Salary",
		"category": {"id": 4, "name": "Salary"},
		"account": {"id": 2, "name": "Checking", "balance": 5000}
	},
	{
		"id": 3, "amount": 8, "type": "EXPENSE", "date": "2024-03-01T18:30:00",
		"description": "Coffee",
		"category": null,
		"account": {"id": 1, "name": "Wallet", "balance": 100}
	}
]`

func TestTransactionService_ListNewestFirst(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodGet, "/transactions", mock.Anything, nil, mock.Anything).
		Return(transactionsResponse, nil)

	txs, err := client.Transactions.List(context.Background())

	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, int64(2), txs[0].ID)
	// Same-day transactions keep their server order
	assert.Equal(t, int64(1), txs[1].ID)
	assert.Equal(t, int64(3), txs[2].ID)
	assert.Nil(t, txs[2].Category)
	assert.Equal(t, NewDate(2024, time.March, 1), txs[2].Date)
	assert.Equal(t, KindIncome, txs[0].Kind)
}

func TestTransactionService_ListByMonth(t *testing.T) {
	client, mockTransport := newMockClient()

	expected := url.Values{"year": {"2024"}, "month": {"3"}}
	mockTransport.On("Do", mock.Anything, http.MethodGet, "/transactions/monthly", expected, nil, mock.Anything).
		Return(transactionsResponse, nil)

	txs, err := client.Transactions.ListByMonth(context.Background(), 2024, time.March)

	require.NoError(t, err)
	assert.Len(t, txs, 3)
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_ListByMonthInvalidMonth(t *testing.T) {
	client, _ := newMockClient()

	_, err := client.Transactions.ListByMonth(context.Background(), 2024, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestTransactionService_Create(t *testing.T) {
	client, mockTransport := newMockClient()

	var sent string
	mockTransport.On("Do", mock.Anything, http.MethodPost, "/transactions", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = bodyJSON(t, args.Get(4)) }).
		Return(`{"id": 10, "amount": 42.1, "type": "EXPENSE", "date": "2024-05-02", "description": "Books"}`, nil)

	tx, err := client.Transactions.Create(context.Background(), &TransactionParams{
		Amount:      decimal.RequireFromString("42.10"),
		Kind:        KindExpense,
		Date:        time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Description: "Books",
		CategoryID:  3,
		AccountID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.ID)
	assert.JSONEq(t, `{
		"amount": 42.1,
		"type": "EXPENSE",
		"date": "2024-05-02",
		"description": "Books",
		"categoryId": 3,
		"accountId": 1
	}`, sent)
}

func TestTransactionService_CreateValidation(t *testing.T) {
	client, mockTransport := newMockClient()

	_, err := client.Transactions.Create(context.Background(), &TransactionParams{
		Amount: decimal.Zero,
		Kind:   TransactionKind("TRANSFER"),
	})

	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"description", "amount", "type", "date", "accountId", "categoryId"} {
		assert.NotNil(t, ve.Field(field), field)
	}
	mockTransport.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_UpdateFromExisting(t *testing.T) {
	client, mockTransport := newMockClient()

	existing := &Transaction{
		ID:          7,
		Amount:      decimal.NewFromInt(20),
		Kind:        KindExpense,
		Date:        NewDate(2024, time.June, 9),
		Description: "Taxi",
		Category:    &Category{ID: 2, Name: "Transport"},
		Account:     &Account{ID: 1, Name: "Wallet"},
	}
	params := FromTransaction(existing)
	params.Amount = decimal.NewFromInt(25)

	var sent string
	mockTransport.On("Do", mock.Anything, http.MethodPut, "/transactions/7", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = bodyJSON(t, args.Get(4)) }).
		Return(`{"id": 7, "amount": 25, "type": "EXPENSE", "date": "2024-06-09", "description": "Taxi"}`, nil)

	tx, err := client.Transactions.Update(context.Background(), 7, params)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(tx.Amount))
	assert.JSONEq(t, `{
		"amount": 25,
		"type": "EXPENSE",
		"date": "2024-06-09",
		"description": "Taxi",
		"categoryId": 2,
		"accountId": 1
	}`, sent)
}

func TestTransactionService_Delete(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodDelete, "/transactions/7", mock.Anything, nil, nil).
		Return(nil, nil)

	require.NoError(t, client.Transactions.Delete(context.Background(), 7))
	mockTransport.AssertExpectations(t)
}
