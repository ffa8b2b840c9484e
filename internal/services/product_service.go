package services

import (
	"context"
	"errors"
	"fmt"

	"vibecart/internal/catalog"
	"vibecart/internal/models"
)

// Catalog is the read-only external product source.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// ProductService passes catalog reads through to the external product API.
type ProductService struct {
	catalog Catalog
}

// NewProductService creates a new ProductService.
func NewProductService(catalog Catalog) *ProductService {
	return &ProductService{
		catalog: catalog,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, &NotFoundError{Resource: "product", Key: id}
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return product, nil
}
