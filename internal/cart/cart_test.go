package cart

import (
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
)

func snapshot(id uuid.UUID, name string, price int64, stock int) Snapshot {
	return Snapshot{
		ProductID:      id,
		Name:           name,
		UnitPriceCents: price,
		IsAvailable:    true,
		StockQuantity:  stock,
	}
}

func TestAddItemAppendsAndMerges(t *testing.T) {
	noodles := uuid.New()
	sauce := uuid.New()
	cart := &Cart{}

	if err := cart.AddItem(snapshot(noodles, "Noodles", 1550, 10), 2); err != nil {
		t.Fatalf("add noodles: %v", err)
	}
	if err := cart.AddItem(snapshot(sauce, "Sauce", 890, 20), 1); err != nil {
		t.Fatalf("add sauce: %v", err)
	}
	if err := cart.AddItem(snapshot(noodles, "Noodles", 1550, 10), 3); err != nil {
		t.Fatalf("merge noodles: %v", err)
	}

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	// insertion order survives the merge
	if cart.Items[0].ProductID != noodles || cart.Items[1].ProductID != sauce {
		t.Fatalf("unexpected line order: %+v", cart.Items)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
	if got := cart.SubtotalCents(); got != 5*1550+890 {
		t.Fatalf("unexpected subtotal %d", got)
	}
	if got := cart.ItemCount(); got != 6 {
		t.Fatalf("expected item count 6, got %d", got)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	cart := &Cart{}
	err := cart.AddItem(snapshot(uuid.New(), "Noodles", 1550, 10), 0)
	if !pkgerrors.HasCode(err, pkgerrors.CodeQuantityRange) {
		t.Fatalf("expected quantity range error, got %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("cart should be untouched after rejected add")
	}
}

func TestAddItemEnforcesStock(t *testing.T) {
	id := uuid.New()
	cart := &Cart{}

	if err := cart.AddItem(snapshot(id, "Noodles", 1550, 5), 4); err != nil {
		t.Fatalf("add within stock: %v", err)
	}
	err := cart.AddItem(snapshot(id, "Noodles", 1550, 5), 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockUnavailable) {
		t.Fatalf("expected stock error on merge past stock, got %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("quantity should be unchanged after rejected merge, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemRejectsUnavailableProduct(t *testing.T) {
	snap := snapshot(uuid.New(), "Seasonal Special", 2500, 10)
	snap.IsAvailable = false

	cart := &Cart{}
	err := cart.AddItem(snap, 1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockUnavailable) {
		t.Fatalf("expected stock error for unavailable product, got %v", err)
	}
}

func TestUpdateQuantityAbsoluteAndRemoveSemantics(t *testing.T) {
	id := uuid.New()
	cart := &Cart{}
	if err := cart.AddItem(snapshot(id, "Noodles", 1550, 10), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.UpdateQuantity(id, 7); err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected absolute quantity 7, got %d", cart.Items[0].Quantity)
	}

	// over-stock update keeps the prior quantity
	err := cart.UpdateQuantity(id, 11)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockUnavailable) {
		t.Fatalf("expected stock error, got %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("quantity should be unchanged, got %d", cart.Items[0].Quantity)
	}

	// zero removes the line
	if err := cart.UpdateQuantity(id, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after zero-quantity update")
	}

	// updating an absent product is a no-op
	if err := cart.UpdateQuantity(uuid.New(), 3); err != nil {
		t.Fatalf("absent update should be a no-op: %v", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	id := uuid.New()
	cart := &Cart{}
	if err := cart.AddItem(snapshot(id, "Noodles", 1550, 10), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart.RemoveItem(id)
	cart.RemoveItem(id)
	cart.RemoveItem(uuid.New())

	if !cart.IsEmpty() {
		t.Fatal("expected empty cart")
	}
	if cart.SubtotalCents() != 0 || cart.ItemCount() != 0 {
		t.Fatal("derived totals should be zero on empty cart")
	}
}

func TestClear(t *testing.T) {
	cart := &Cart{}
	if err := cart.AddItem(snapshot(uuid.New(), "Noodles", 1550, 10), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.AddItem(snapshot(uuid.New(), "Sauce", 890, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
}
