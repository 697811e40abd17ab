package bulkorder

import (
	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/pkg/db/models"
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
	"github.com/dannysckt/storefront-backend/pkg/money"
)

// Line is one orderable product on the bulk price list. Quantity starts at
// zero; only lines with a positive quantity end up in the submission.
type Line struct {
	ProductID      uuid.UUID
	Name           string
	ListPriceCents int64
	UnitPriceCents int64
	StockQuantity  int
	Quantity       int
}

// Form is the server-side bulk order sheet for one distributor. All catalog
// products appear as zero-quantity lines priced with the package discount.
type Form struct {
	DiscountPercentage int
	MaxOrderValueCents int64
	Lines              []Line
}

// Terms carries the package constraints applied to the form.
type Terms struct {
	DiscountPercentage int
	MaxOrderValueCents int64
}

// NewForm builds the order sheet from the sellable catalog and package terms.
func NewForm(products []models.Product, terms Terms) *Form {
	lines := make([]Line, 0, len(products))
	for i := range products {
		p := &products[i]
		lines = append(lines, Line{
			ProductID:      p.ID,
			Name:           p.Name,
			ListPriceCents: p.PriceCents,
			UnitPriceCents: money.ApplyDiscountPercent(p.PriceCents, terms.DiscountPercentage),
			StockQuantity:  p.StockQuantity,
		})
	}
	return &Form{
		DiscountPercentage: terms.DiscountPercentage,
		MaxOrderValueCents: terms.MaxOrderValueCents,
		Lines:              lines,
	}
}

// SetQuantity sets the absolute quantity for a product line. Out-of-range
// values are rejected and the prior quantity is retained.
func (f *Form) SetQuantity(productID uuid.UUID, qty int) error {
	idx := f.indexOf(productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product is not on the order form")
	}
	line := &f.Lines[idx]
	if qty < 0 || qty > line.StockQuantity {
		return pkgerrors.New(pkgerrors.CodeQuantityRange, "quantity outside the orderable range").
			WithDetails(map[string]any{
				"product_id": productID,
				"requested":  qty,
				"available":  line.StockQuantity,
			})
	}
	line.Quantity = qty
	return nil
}

// LineTotalCents returns the discounted total for one line.
func (f *Form) LineTotalCents(productID uuid.UUID) int64 {
	idx := f.indexOf(productID)
	if idx < 0 {
		return 0
	}
	return f.Lines[idx].UnitPriceCents * int64(f.Lines[idx].Quantity)
}

// GrandTotalCents folds the discounted line totals.
func (f *Form) GrandTotalCents() int64 {
	var total int64
	for _, line := range f.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	return total
}

// SelectedCount reports how many lines carry a positive quantity.
func (f *Form) SelectedCount() int {
	var count int
	for _, line := range f.Lines {
		if line.Quantity > 0 {
			count++
		}
	}
	return count
}

// CanSubmit reports whether the form would pass BuildSubmission.
func (f *Form) CanSubmit() bool {
	return f.SelectedCount() > 0 && f.GrandTotalCents() <= f.MaxOrderValueCents
}

// SubmissionLine is one ordered line with the discounted price locked in.
type SubmissionLine struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
	LineTotalCents int64
}

// Submission is the validated bulk order ready for checkout.
type Submission struct {
	Lines           []SubmissionLine
	GrandTotalCents int64
}

// BuildSubmission validates the form and extracts the non-zero lines. The
// empty-order and order-limit checks run here, before anything touches the
// network.
func (f *Form) BuildSubmission() (*Submission, error) {
	if f.SelectedCount() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyOrder, "select at least one product")
	}

	total := f.GrandTotalCents()
	if total > f.MaxOrderValueCents {
		return nil, pkgerrors.New(pkgerrors.CodeOrderLimit, "order total exceeds the package ceiling").
			WithDetails(map[string]any{
				"grand_total_cents":     total,
				"max_order_value_cents": f.MaxOrderValueCents,
			})
	}

	lines := make([]SubmissionLine, 0, f.SelectedCount())
	for _, line := range f.Lines {
		if line.Quantity == 0 {
			continue
		}
		lines = append(lines, SubmissionLine{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			LineTotalCents: line.UnitPriceCents * int64(line.Quantity),
		})
	}
	return &Submission{Lines: lines, GrandTotalCents: total}, nil
}

func (f *Form) indexOf(productID uuid.UUID) int {
	for i := range f.Lines {
		if f.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
