package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/api/responses"
	"github.com/dannysckt/storefront-backend/api/validators"
	bulksvc "github.com/dannysckt/storefront-backend/internal/bulkorder"
	checkoutsvc "github.com/dannysckt/storefront-backend/internal/checkout"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type bulkOrderSelection struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
}

type bulkOrderRequest struct {
	ShippingAddress string               `json:"shipping_address" validate:"required,min=5,max=500"`
	Notes           *string              `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Selections      []bulkOrderSelection `json:"selections" validate:"required,min=1,dive"`
}

// BulkOrderForm serves the discounted order sheet for the distributor.
func BulkOrderForm(svc bulksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form, err := svc.GetOrderForm(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, form)
	}
}

// BulkOrderSubmit validates the selections server side and submits the order.
func BulkOrderSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bulkOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selections := make([]bulksvc.Selection, 0, len(payload.Selections))
		for _, sel := range payload.Selections {
			selections = append(selections, bulksvc.Selection{
				ProductID: sel.ProductID,
				Quantity:  sel.Quantity,
			})
		}

		result, err := svc.SubmitBulkOrder(r.Context(), userID, checkoutsvc.SubmitInput{
			ShippingAddress: payload.ShippingAddress,
			Notes:           payload.Notes,
		}, selections)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
