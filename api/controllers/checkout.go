package controllers

import (
	"net/http"

	"github.com/dannysckt/storefront-backend/api/responses"
	"github.com/dannysckt/storefront-backend/api/validators"
	checkoutsvc "github.com/dannysckt/storefront-backend/internal/checkout"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string  `json:"shipping_address" validate:"required,min=5,max=500"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CheckoutSubmit turns the session cart into an order awaiting payment.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SubmitCart(r.Context(), userID, checkoutsvc.SubmitInput{
			ShippingAddress: payload.ShippingAddress,
			Notes:           payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CheckoutConfirm polls the payment gateway and settles the order.
func CheckoutConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Confirm(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
