package services_test

import (
	"context"
	"errors"
	"testing"

	"vibecart/internal/catalog"
	"vibecart/internal/models"
	"vibecart/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_GetAllProducts(t *testing.T) {
	mockCatalog := new(MockCatalog)
	service := services.NewProductService(mockCatalog)

	expectedProducts := []models.Product{
		{ID: "1", Title: "Product A", Price: decimal.NewFromInt(10)},
		{ID: "2", Title: "Product B", Price: decimal.NewFromInt(20)},
	}

	mockCatalog.On("ListProducts", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockCatalog.AssertExpectations(t)
}

func TestProductService_GetAllProducts_Error(t *testing.T) {
	mockCatalog := new(MockCatalog)
	service := services.NewProductService(mockCatalog)
	upstreamErr := errors.New("upstream unavailable")

	mockCatalog.On("ListProducts", mock.Anything).Return(nil, upstreamErr).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.Nil(t, products)
	assert.ErrorIs(t, err, upstreamErr)
	mockCatalog.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockCatalog := new(MockCatalog)
	service := services.NewProductService(mockCatalog)

	expected := &models.Product{ID: "1", Title: "Product A", Price: decimal.NewFromInt(10)}
	mockCatalog.On("GetProduct", mock.Anything, "1").Return(expected, nil).Once()

	product, err := service.GetProductByID(context.Background(), "1")

	assert.NoError(t, err)
	assert.Equal(t, expected, product)
	mockCatalog.AssertExpectations(t)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	mockCatalog := new(MockCatalog)
	service := services.NewProductService(mockCatalog)

	mockCatalog.On("GetProduct", mock.Anything, "99").Return(nil, catalog.ErrProductNotFound).Once()

	product, err := service.GetProductByID(context.Background(), "99")

	assert.Nil(t, product)
	assert.True(t, services.IsNotFound(err))
	assert.EqualError(t, err, "product 99 not found")
	mockCatalog.AssertExpectations(t)
}
