package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

// Service exposes storefront catalog reads.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
}

// ListProductsInput narrows the catalog listing.
type ListProductsInput struct {
	Category string
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListAvailable(ctx context.Context, category string) ([]models.Product, error)
}

type service struct {
	products productReader
	logg     *logger.Logger
}

// NewService wires the catalog service.
func NewService(products productReader, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, errors.New("product repository is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{products: products, logg: logg}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	products, err := s.products.ListAvailable(ctx, input.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return NewProductDTO(product), nil
}
