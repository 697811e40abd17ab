package distributors

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

// PackageDTO is the public shape of a distributor package.
type PackageDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	DurationMonths     int       `json:"duration_months"`
	PriceCents         int64     `json:"price_cents"`
	MaxOrderValueCents int64     `json:"max_order_value_cents"`
	DiscountPercentage int       `json:"discount_percentage"`
}

// NewPackageDTO maps the package row.
func NewPackageDTO(pkg *models.DistributorPackage) *PackageDTO {
	return &PackageDTO{
		ID:                 pkg.ID,
		Name:               pkg.Name,
		DurationMonths:     pkg.DurationMonths,
		PriceCents:         pkg.PriceCents,
		MaxOrderValueCents: pkg.MaxOrderValueCents,
		DiscountPercentage: pkg.DiscountPercentage,
	}
}

// SubscriptionDTO is the public shape of a distributor subscription.
type SubscriptionDTO struct {
	ID           uuid.UUID   `json:"id"`
	BusinessName string      `json:"business_name"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Package      *PackageDTO `json:"package,omitempty"`
}

// NewSubscriptionDTO maps the subscription row, folding in the package when
// preloaded.
func NewSubscriptionDTO(sub *models.DistributorSubscription) *SubscriptionDTO {
	dto := &SubscriptionDTO{
		ID:           sub.ID,
		BusinessName: sub.BusinessName,
		StartDate:    sub.StartDate,
		EndDate:      sub.EndDate,
	}
	if sub.Package != nil {
		dto.Package = NewPackageDTO(sub.Package)
	}
	return dto
}
