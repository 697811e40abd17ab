package bulkorder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type subscriptionSource interface {
	ActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.DistributorSubscription, error)
}

type catalogSource interface {
	ListAvailable(ctx context.Context, category string) ([]models.Product, error)
}

// Selection is one requested line from the client order sheet.
type Selection struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes the distributor bulk ordering operations.
type Service interface {
	GetOrderForm(ctx context.Context, userID uuid.UUID) (*FormDTO, error)
	BuildSubmission(ctx context.Context, userID uuid.UUID, selections []Selection) (*Submission, error)
}

type service struct {
	subscriptions subscriptionSource
	catalog       catalogSource
	logg          *logger.Logger
}

// NewService wires the bulk order service.
func NewService(subscriptions subscriptionSource, catalog catalogSource, logg *logger.Logger) (Service, error) {
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription source required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{subscriptions: subscriptions, catalog: catalog, logg: logg}, nil
}

func (s *service) GetOrderForm(ctx context.Context, userID uuid.UUID) (*FormDTO, error) {
	form, err := s.buildForm(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewFormDTO(form), nil
}

// BuildSubmission rebuilds the order sheet server side and applies the client
// selections against it, so tampered prices or quantities never survive.
func (s *service) BuildSubmission(ctx context.Context, userID uuid.UUID, selections []Selection) (*Submission, error) {
	form, err := s.buildForm(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, sel := range selections {
		if err := form.SetQuantity(sel.ProductID, sel.Quantity); err != nil {
			return nil, err
		}
	}
	return form.BuildSubmission()
}

func (s *service) buildForm(ctx context.Context, userID uuid.UUID) (*Form, error) {
	sub, err := s.subscriptions.ActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Package == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "active distributor subscription required")
	}

	products, err := s.catalog.ListAvailable(ctx, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing catalog")
	}

	return NewForm(products, Terms{
		DiscountPercentage: sub.Package.DiscountPercentage,
		MaxOrderValueCents: sub.Package.MaxOrderValueCents,
	}), nil
}
