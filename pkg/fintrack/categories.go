package fintrack

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	client *Client
}

// List retrieves all categories
func (s *categoryService) List(ctx context.Context) ([]*Category, error) {
	var categories []*Category

	if err := s.client.execute(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to get categories")
	}

	return categories, nil
}

// Create creates a new category
func (s *categoryService) Create(ctx context.Context, params *CategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var category Category
	input := map[string]interface{}{"name": params.Name}
	if err := s.client.execute(ctx, http.MethodPost, "/categories", nil, input, &category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return &category, nil
}

// Update renames a category
func (s *categoryService) Update(ctx context.Context, categoryID int64, params *CategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var category Category
	input := map[string]interface{}{"name": params.Name}
	if err := s.client.execute(ctx, http.MethodPut, resourcePath("categories", categoryID), nil, input, &category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return &category, nil
}

// Delete deletes a category
func (s *categoryService) Delete(ctx context.Context, categoryID int64) error {
	if err := s.client.execute(ctx, http.MethodDelete, resourcePath("categories", categoryID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	return nil
}
