package distributors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

// RegisterInput carries a distributor registration request.
type RegisterInput struct {
	PackageID       uuid.UUID
	BusinessName    string
	BusinessType    string
	BusinessAddress string
	ContactPerson   string
	ContactNumber   string
}

// Service exposes distributor package listings and registration.
type Service interface {
	ListPackages(ctx context.Context) ([]PackageDTO, error)
	Register(ctx context.Context, userID uuid.UUID, input RegisterInput) (*SubscriptionDTO, error)
	GetMySubscription(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error)

	// ActiveSubscription feeds the bulk order sheet. It returns nil without
	// error when the user has no live subscription.
	ActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.DistributorSubscription, error)
}

type service struct {
	store Repository
	now   func() time.Time
	logg  *logger.Logger
}

// NewService wires the distributors service.
func NewService(store Repository, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("distributors repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, now: time.Now, logg: logg}, nil
}

func (s *service) ListPackages(ctx context.Context) ([]PackageDTO, error) {
	packages, err := s.store.ListActivePackages(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing packages")
	}

	dtos := make([]PackageDTO, 0, len(packages))
	for i := range packages {
		dtos = append(dtos, *NewPackageDTO(&packages[i]))
	}
	return dtos, nil
}

// Register subscribes the user to a package. One live subscription per user;
// the term runs from today for the package's duration.
func (s *service) Register(ctx context.Context, userID uuid.UUID, input RegisterInput) (*SubscriptionDTO, error) {
	pkg, err := s.store.FindPackageByID(ctx, input.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading package")
	}
	if !pkg.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
	}

	existing, err := s.ActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an active subscription already exists").
			WithDetails(map[string]any{"end_date": existing.EndDate})
	}

	start := s.now()
	sub, err := s.store.CreateSubscription(ctx, &models.DistributorSubscription{
		UserID:          userID,
		PackageID:       pkg.ID,
		BusinessName:    input.BusinessName,
		BusinessType:    input.BusinessType,
		BusinessAddress: input.BusinessAddress,
		ContactPerson:   input.ContactPerson,
		ContactNumber:   input.ContactNumber,
		StartDate:       start,
		EndDate:         start.AddDate(0, pkg.DurationMonths, 0),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating subscription")
	}
	sub.Package = pkg

	s.logg.Info(ctx, fmt.Sprintf("distributor registered user=%s package=%s until=%s", userID, pkg.ID, sub.EndDate.Format(time.DateOnly)))
	return NewSubscriptionDTO(sub), nil
}

func (s *service) GetMySubscription(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.ActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active subscription")
	}
	return NewSubscriptionDTO(sub), nil
}

func (s *service) ActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.DistributorSubscription, error) {
	sub, err := s.store.FindActiveSubscription(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading subscription")
	}
	return sub, nil
}
