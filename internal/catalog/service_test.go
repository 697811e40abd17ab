package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type stubProductReader struct {
	products  []models.Product
	byID      map[uuid.UUID]*models.Product
	listErr   error
	lastQuery string
}

func (s *stubProductReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductReader) ListAvailable(ctx context.Context, category string) ([]models.Product, error) {
	s.lastQuery = category
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "catalog-test"})
}

func TestListProductsMapsToDTOs(t *testing.T) {
	reader := &stubProductReader{
		products: []models.Product{
			{ID: uuid.New(), Name: "Char Kuey Teow", PriceCents: 1550, IsAvailable: true, StockQuantity: 12},
			{ID: uuid.New(), Name: "Sambal Sauce", PriceCents: 890, IsAvailable: true, StockQuantity: 40},
		},
	}
	svc, err := NewService(reader, newTestLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.ListProducts(context.Background(), ListProductsInput{Category: "sauces"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 products, got %d", len(dtos))
	}
	if reader.lastQuery != "sauces" {
		t.Fatalf("category filter not forwarded, got %q", reader.lastQuery)
	}
	if dtos[0].Name != "Char Kuey Teow" || dtos[0].PriceCents != 1550 {
		t.Fatalf("unexpected first product %+v", dtos[0])
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, err := NewService(&stubProductReader{byID: map[uuid.UUID]*models.Product{}}, newTestLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProductsWrapsRepositoryError(t *testing.T) {
	svc, err := NewService(&stubProductReader{listErr: errors.New("boom")}, newTestLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ListProducts(context.Background(), ListProductsInput{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, newTestLogger()); err == nil {
		t.Fatal("expected error for nil repository")
	}
	if _, err := NewService(&stubProductReader{}, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}
