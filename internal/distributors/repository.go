package distributors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

// Repository persists distributor packages and subscriptions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActivePackages(ctx context.Context) ([]models.DistributorPackage, error)
	FindPackageByID(ctx context.Context, id uuid.UUID) (*models.DistributorPackage, error)
	FindActiveSubscription(ctx context.Context, userID uuid.UUID, now time.Time) (*models.DistributorSubscription, error)
	CreateSubscription(ctx context.Context, sub *models.DistributorSubscription) (*models.DistributorSubscription, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListActivePackages returns sellable packages, cheapest first.
func (r *repository) ListActivePackages(ctx context.Context) ([]models.DistributorPackage, error) {
	var packages []models.DistributorPackage
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_cents ASC").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// FindPackageByID loads a single package.
func (r *repository) FindPackageByID(ctx context.Context, id uuid.UUID) (*models.DistributorPackage, error) {
	var pkg models.DistributorPackage
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindActiveSubscription returns the subscription covering now, with its
// package preloaded. The date range is half open: [start_date, end_date).
func (r *repository) FindActiveSubscription(ctx context.Context, userID uuid.UUID, now time.Time) (*models.DistributorSubscription, error) {
	var sub models.DistributorSubscription
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ? AND start_date <= ? AND end_date > ?", userID, now, now).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription inserts the subscription, assigning an id when the caller
// left it empty.
func (r *repository) CreateSubscription(ctx context.Context, sub *models.DistributorSubscription) (*models.DistributorSubscription, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}
