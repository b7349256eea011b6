package fintrack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// List retrieves all transactions, newest first
func (s *transactionService) List(ctx context.Context) ([]*Transaction, error) {
	var txs []*Transaction

	if err := s.client.execute(ctx, http.MethodGet, "/transactions", nil, nil, &txs); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	SortTransactionsNewestFirst(txs)
	return txs, nil
}

// ListByMonth retrieves the transactions of one month, newest first
func (s *transactionService) ListByMonth(ctx context.Context, year int, month time.Month) ([]*Transaction, error) {
	if month < time.January || month > time.December {
		return nil, &ValidationErrors{Errors: []*ValidationError{{
			Field: "month", Message: "month must be between 1 and 12", Value: int(month),
		}}}
	}

	var txs []*Transaction
	if err := s.client.execute(ctx, http.MethodGet, "/transactions/monthly", monthQuery(year, month), nil, &txs); err != nil {
		return nil, errors.Wrapf(err, "failed to get transactions for %d-%02d", year, int(month))
	}

	SortTransactionsNewestFirst(txs)
	return txs, nil
}

// Create creates a new transaction
func (s *transactionService) Create(ctx context.Context, params *TransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var tx Transaction
	if err := s.client.execute(ctx, http.MethodPost, "/transactions", nil, transactionInput(params), &tx); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	return &tx, nil
}

// Update replaces an existing transaction
func (s *transactionService) Update(ctx context.Context, transactionID int64, params *TransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var tx Transaction
	path := resourcePath("transactions", transactionID)
	if err := s.client.execute(ctx, http.MethodPut, path, nil, transactionInput(params), &tx); err != nil {
		return nil, errors.Wrap(err, "failed to update transaction")
	}

	return &tx, nil
}

// Delete deletes a transaction
func (s *transactionService) Delete(ctx context.Context, transactionID int64) error {
	if err := s.client.execute(ctx, http.MethodDelete, resourcePath("transactions", transactionID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete transaction")
	}

	return nil
}

func transactionInput(params *TransactionParams) map[string]interface{} {
	return map[string]interface{}{
		"amount":      jsonAmount(params.Amount),
		"type":        params.Kind,
		"date":        params.Date.Format("2006-01-02"),
		"description": params.Description,
		"categoryId":  params.CategoryID,
		"accountId":   params.AccountID,
	}
}

func monthQuery(year int, month time.Month) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(int(month)))
	return q
}
