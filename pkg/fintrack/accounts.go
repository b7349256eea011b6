package fintrack

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts
func (s *accountService) List(ctx context.Context) ([]*Account, error) {
	var accounts []*Account

	if err := s.client.execute(ctx, http.MethodGet, "/accounts", nil, nil, &accounts); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return accounts, nil
}

// Create creates a new account with an opening balance
func (s *accountService) Create(ctx context.Context, params *CreateAccountParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"name":           params.Name,
		"initialBalance": jsonAmount(params.InitialBalance),
	}

	var account Account
	if err := s.client.execute(ctx, http.MethodPost, "/accounts", nil, input, &account); err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	return &account, nil
}

// Update renames an account
func (s *accountService) Update(ctx context.Context, accountID int64, params *UpdateAccountParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"name": params.Name,
	}

	var account Account
	if err := s.client.execute(ctx, http.MethodPut, resourcePath("accounts", accountID), nil, input, &account); err != nil {
		return nil, errors.Wrap(err, "failed to update account")
	}

	return &account, nil
}

// Delete deletes an account
func (s *accountService) Delete(ctx context.Context, accountID int64) error {
	if err := s.client.execute(ctx, http.MethodDelete, resourcePath("accounts", accountID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}
