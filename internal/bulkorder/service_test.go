package bulkorder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type stubSubscriptions struct {
	sub *models.DistributorSubscription
	err error
}

func (s *stubSubscriptions) ActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.DistributorSubscription, error) {
	return s.sub, s.err
}

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) ListAvailable(ctx context.Context, category string) ([]models.Product, error) {
	return s.products, nil
}

func activeSubscription(discountPct int, maxOrderCents int64) *models.DistributorSubscription {
	now := time.Now()
	return &models.DistributorSubscription{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 5, 0),
		Package: &models.DistributorPackage{
			ID:                 uuid.New(),
			Name:               "Reseller 6M",
			DiscountPercentage: discountPct,
			MaxOrderValueCents: maxOrderCents,
		},
	}
}

func newBulkService(t *testing.T, subs subscriptionSource, catalog catalogSource) Service {
	t.Helper()
	svc, err := NewService(subs, catalog, logger.New(logger.Options{ServiceName: "bulkorder-test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetOrderFormRendersDiscountedSheet(t *testing.T) {
	products := sampleProducts()
	svc := newBulkService(t,
		&stubSubscriptions{sub: activeSubscription(20, 500000)},
		&stubCatalog{products: products},
	)

	form, err := svc.GetOrderForm(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get order form: %v", err)
	}
	if form.DiscountPercentage != 20 || form.MaxOrderValueCents != 500000 {
		t.Fatalf("unexpected terms %+v", form)
	}
	if len(form.Lines) != len(products) {
		t.Fatalf("expected %d lines, got %d", len(products), len(form.Lines))
	}
	if form.Lines[0].UnitPriceCents != 8000 {
		t.Fatalf("expected discounted price, got %d", form.Lines[0].UnitPriceCents)
	}
}

func TestGetOrderFormRequiresActiveSubscription(t *testing.T) {
	svc := newBulkService(t, &stubSubscriptions{sub: nil}, &stubCatalog{})

	_, err := svc.GetOrderForm(context.Background(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBuildSubmissionValidatesServerSide(t *testing.T) {
	products := sampleProducts()
	svc := newBulkService(t,
		&stubSubscriptions{sub: activeSubscription(20, 500000)},
		&stubCatalog{products: products},
	)
	ctx := context.Background()
	userID := uuid.New()

	submission, err := svc.BuildSubmission(ctx, userID, []Selection{
		{ProductID: products[0].ID, Quantity: 2},
		{ProductID: products[1].ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("build submission: %v", err)
	}
	if len(submission.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(submission.Lines))
	}
	if submission.GrandTotalCents != 2*8000+3600 {
		t.Fatalf("unexpected total %d", submission.GrandTotalCents)
	}

	// over-stock selection is rejected with the offending line
	_, err = svc.BuildSubmission(ctx, userID, []Selection{
		{ProductID: products[2].ID, Quantity: 99},
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeQuantityRange) {
		t.Fatalf("expected quantity range error, got %v", err)
	}

	// no selections at all
	_, err = svc.BuildSubmission(ctx, userID, nil)
	if !pkgerrors.HasCode(err, pkgerrors.CodeEmptyOrder) {
		t.Fatalf("expected empty order error, got %v", err)
	}
}

func TestBuildSubmissionOrderCeiling(t *testing.T) {
	products := sampleProducts()
	svc := newBulkService(t,
		&stubSubscriptions{sub: activeSubscription(0, 25000)},
		&stubCatalog{products: products},
	)

	_, err := svc.BuildSubmission(context.Background(), uuid.New(), []Selection{
		{ProductID: products[0].ID, Quantity: 3}, // 30000 > 25000
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeOrderLimit) {
		t.Fatalf("expected order limit error, got %v", err)
	}
}
