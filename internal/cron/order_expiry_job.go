package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/internal/orders"
	"github.com/dannysckt/storefront-backend/pkg/enums"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

// Orders that never saw a payment confirmation are swept after this long.
const defaultOrderExpiry = 24 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OrderExpiryJobParams configure the stale order sweeper.
type OrderExpiryJobParams struct {
	Logger *logger.Logger
	DB     txRunner
	Repo   orders.Repository
	TTL    time.Duration
}

// NewOrderExpiryJob builds the cron job that fails pending orders whose
// payment window has lapsed and returns their reserved stock.
func NewOrderExpiryJob(params OrderExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultOrderExpiry
	}
	return &orderExpiryJob{
		logg: params.Logger,
		db:   params.DB,
		repo: params.Repo,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

type orderExpiryJob struct {
	logg *logger.Logger
	db   txRunner
	repo orders.Repository
	ttl  time.Duration
	now  func() time.Time
}

func (j *orderExpiryJob) Name() string { return "order-expiry" }

func (j *orderExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	stale, err := j.repo.FindPendingOrdersBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query stale pending orders: %w", err)
	}

	var errs error
	expired := 0
	for _, order := range stale {
		if err := j.expireOrder(ctx, order.ID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("expire order %s: %w", order.ID, err))
			continue
		}
		expired++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"candidates": len(stale),
		"expired":    expired,
	})
	j.logg.Info(logCtx, "order expiry sweep complete")
	return errs
}

func (j *orderExpiryJob) expireOrder(ctx context.Context, orderID uuid.UUID) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repo.WithTx(tx)
		current, err := repo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		// Re-check inside the transaction; a confirmation may have landed
		// between the sweep query and now.
		if current.Status != enums.OrderStatusPending {
			return nil
		}
		for _, item := range current.Items {
			if err := repo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := repo.UpdateOrderStatus(ctx, orderID, enums.OrderStatusFailed); err != nil {
			return err
		}
		return repo.UpdatePayment(ctx, orderID, map[string]any{
			"status":         enums.PaymentStatusFailed,
			"failure_reason": "payment window expired",
		})
	})
}
