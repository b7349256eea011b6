package fintrack

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// List retrieves the budgets of one month
func (s *budgetService) List(ctx context.Context, year int, month time.Month) ([]*Budget, error) {
	var budgets []*Budget

	if err := s.client.execute(ctx, http.MethodGet, "/budgets", monthQuery(year, month), nil, &budgets); err != nil {
		return nil, errors.Wrap(err, "failed to get budgets")
	}

	return budgets, nil
}

// Create sets a budget for a category and month
func (s *budgetService) Create(ctx context.Context, params *BudgetParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var budget Budget
	if err := s.client.execute(ctx, http.MethodPost, "/budgets", nil, budgetInput(params), &budget); err != nil {
		return nil, errors.Wrap(err, "failed to create budget")
	}

	return &budget, nil
}

// Update changes an existing budget
func (s *budgetService) Update(ctx context.Context, budgetID int64, params *BudgetParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var budget Budget
	if err := s.client.execute(ctx, http.MethodPut, resourcePath("budgets", budgetID), nil, budgetInput(params), &budget); err != nil {
		return nil, errors.Wrap(err, "failed to update budget")
	}

	return &budget, nil
}

// Delete deletes a budget
func (s *budgetService) Delete(ctx context.Context, budgetID int64) error {
	if err := s.client.execute(ctx, http.MethodDelete, resourcePath("budgets", budgetID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete budget")
	}

	return nil
}

func budgetInput(params *BudgetParams) map[string]interface{} {
	return map[string]interface{}{
		"amount":     jsonAmount(params.Amount),
		"month":      params.Month,
		"year":       params.Year,
		"categoryId": params.CategoryID,
	}
}
