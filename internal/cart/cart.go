package cart

import (
	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
)

// Snapshot is the slice of catalog state a cart line captures at mutation
// time. Stock and availability are read here, never re-derived from the cart.
type Snapshot struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	ImageURL       *string
	IsAvailable    bool
	StockQuantity  int
}

// SnapshotFromProduct builds a Snapshot from the catalog row.
func SnapshotFromProduct(product *models.Product) Snapshot {
	return Snapshot{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		ImageURL:       product.ImageURL,
		IsAvailable:    product.IsAvailable,
		StockQuantity:  product.StockQuantity,
	}
}

// Item is one cart line. Quantity is always >= 1; a quantity driven below 1
// removes the line instead.
type Item struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	ImageURL       *string   `json:"image_url,omitempty"`
	StockQuantity  int       `json:"stock_quantity"`
	Quantity       int       `json:"quantity"`
}

// Cart holds the session cart lines in insertion order, one line per product.
type Cart struct {
	Items []Item `json:"items"`
}

// AddItem merges qty into the line for the product, appending a new line when
// the product is not in the cart yet. The merged quantity may not exceed the
// snapshot stock.
func (c *Cart) AddItem(snap Snapshot, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeQuantityRange, "quantity must be at least 1").
			WithDetails(map[string]any{"product_id": snap.ProductID, "requested": qty})
	}
	if !snap.IsAvailable {
		return stockError(snap.ProductID, qty, 0)
	}

	for i := range c.Items {
		if c.Items[i].ProductID != snap.ProductID {
			continue
		}
		merged := c.Items[i].Quantity + qty
		if merged > snap.StockQuantity {
			return stockError(snap.ProductID, merged, snap.StockQuantity)
		}
		c.Items[i].Quantity = merged
		c.refreshLine(i, snap)
		return nil
	}

	if qty > snap.StockQuantity {
		return stockError(snap.ProductID, qty, snap.StockQuantity)
	}
	c.Items = append(c.Items, Item{
		ProductID:      snap.ProductID,
		Name:           snap.Name,
		UnitPriceCents: snap.UnitPriceCents,
		ImageURL:       snap.ImageURL,
		StockQuantity:  snap.StockQuantity,
		Quantity:       qty,
	})
	return nil
}

// UpdateQuantity sets the line quantity to an absolute value. Values below 1
// remove the line. Updating a product that is not in the cart is a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) error {
	idx := c.indexOf(productID)
	if idx < 0 {
		return nil
	}
	if qty < 1 {
		c.removeAt(idx)
		return nil
	}
	if qty > c.Items[idx].StockQuantity {
		return stockError(productID, qty, c.Items[idx].StockQuantity)
	}
	c.Items[idx].Quantity = qty
	return nil
}

// RemoveItem drops the line for the product. Removing an absent product is a
// no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// SubtotalCents folds the line totals.
func (c *Cart) SubtotalCents() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.UnitPriceCents * int64(item.Quantity)
	}
	return subtotal
}

// ItemCount sums line quantities, not distinct lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// refreshLine updates the snapshot fields on merge so the cart reflects the
// latest catalog read.
func (c *Cart) refreshLine(idx int, snap Snapshot) {
	c.Items[idx].Name = snap.Name
	c.Items[idx].UnitPriceCents = snap.UnitPriceCents
	c.Items[idx].ImageURL = snap.ImageURL
	c.Items[idx].StockQuantity = snap.StockQuantity
}

func stockError(productID uuid.UUID, requested, available int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStockUnavailable, "insufficient stock for product").
		WithDetails(map[string]any{
			"product_id": productID,
			"requested":  requested,
			"available":  available,
		})
}
