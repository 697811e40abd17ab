package checkout

import "github.com/google/uuid"

// SubmitInput carries the checkout payload common to cart and bulk flows.
type SubmitInput struct {
	ShippingAddress string
	Notes           *string
}

// SubmissionResult is returned once the payment intent exists and the
// submission is parked awaiting confirmation.
type SubmissionResult struct {
	OrderID      uuid.UUID `json:"order_id"`
	State        State     `json:"state"`
	AmountCents  int64     `json:"amount_cents"`
	Currency     string    `json:"currency"`
	ClientSecret string    `json:"client_secret"`
}

// ConfirmResult reports the settled lifecycle after polling the gateway.
type ConfirmResult struct {
	OrderID       uuid.UUID `json:"order_id"`
	State         State     `json:"state"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
}
