package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type sessionStore interface {
	Load(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, userID string, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}

// Service exposes session cart operations.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store    sessionStore
	products productLoader
	logg     *logger.Logger
}

// NewService builds the cart service backed by the provided stack.
func NewService(store sessionStore, products productLoader, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, products: products, logg: logg}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(cart), nil
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(SnapshotFromProduct(product), qty); err != nil {
		return nil, err
	}
	return s.persist(ctx, userID, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Refresh the stock snapshot before enforcing the new quantity.
	if qty >= 1 && cart.indexOf(productID) >= 0 {
		product, err := s.loadProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		cart.refreshLine(cart.indexOf(productID), SnapshotFromProduct(product))
	}

	if err := cart.UpdateQuantity(productID, qty); err != nil {
		return nil, err
	}
	return s.persist(ctx, userID, cart)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)
	return s.persist(ctx, userID, cart)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, userID.String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	cart, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return cart, nil
}

func (s *service) persist(ctx context.Context, userID uuid.UUID, cart *Cart) (*CartDTO, error) {
	if err := s.store.Save(ctx, userID.String(), cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return NewCartDTO(cart), nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
