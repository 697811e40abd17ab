package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT,
		tags TEXT,
		price_cents INTEGER NOT NULL,
		image_url TEXT,
		is_available INTEGER NOT NULL DEFAULT 1,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Exec(`DROP TABLE products`).Error)
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, category string, available bool, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	product := models.Product{
		ID:            id,
		Name:          name,
		Category:      &category,
		PriceCents:    1200,
		IsAvailable:   available,
		StockQuantity: 5,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&product).Error)
	return id
}

func TestListAvailableFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	seedProduct(t, db, "Old Sauce", "sauces", true, base)
	newest := seedProduct(t, db, "New Sauce", "sauces", true, base.Add(30*time.Minute))
	seedProduct(t, db, "Hidden Sauce", "sauces", false, base.Add(10*time.Minute))
	seedProduct(t, db, "Noodles", "mains", true, base.Add(20*time.Minute))

	products, err := repo.ListAvailable(ctx, "sauces")
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, newest, products[0].ID)
	for _, p := range products {
		require.True(t, p.IsAvailable)
	}

	all, err := repo.ListAvailable(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestFindByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	first := seedProduct(t, db, "A", "mains", true, now)
	second := seedProduct(t, db, "B", "mains", true, now)

	products, err := repo.FindByIDs(ctx, []uuid.UUID{first, second, uuid.New()})
	require.NoError(t, err)
	require.Len(t, products, 2)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
