package fintrack

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_List(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodGet, "/categories", mock.Anything, nil, mock.Anything).
		Return(`[{"id": 1, "name": "Food"}, {"id": 2, "name": "Salary"}]`, nil)

	categories, err := client.Categories.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Salary", categories[1].Name)
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodPost, "/categories", mock.Anything, map[string]interface{}{"name": "Rent"}, mock.Anything).
		Return(`{"id": 5, "name": "Rent"}`, nil)
	mockTransport.On("Do", mock.Anything, http.MethodPut, "/categories/5", mock.Anything, map[string]interface{}{"name": "Housing"}, mock.Anything).
		Return(`{"id": 5, "name": "Housing"}`, nil)

	created, err := client.Categories.Create(context.Background(), &CategoryParams{Name: "Rent"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	updated, err := client.Categories.Update(context.Background(), 5, &CategoryParams{Name: "Housing"})
	require.NoError(t, err)
	assert.Equal(t, "Housing", updated.Name)

	mockTransport.AssertExpectations(t)
}

func TestCategoryService_EmptyName(t *testing.T) {
	client, _ := newMockClient()

	_, err := client.Categories.Create(context.Background(), &CategoryParams{Name: ""})
	assert.True(t, IsValidationError(err))

	_, err = client.Categories.Update(context.Background(), 1, &CategoryParams{Name: "\t"})
	assert.True(t, IsValidationError(err))
}

func TestCategoryService_DeleteNotFound(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, http.MethodDelete, "/categories/99", mock.Anything, nil, nil).
		Return(nil, ErrNotFound)

	err := client.Categories.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
