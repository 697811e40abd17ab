package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dannysckt/storefront-backend/api/responses"
	"github.com/dannysckt/storefront-backend/api/validators"
	distributorsvc "github.com/dannysckt/storefront-backend/internal/distributors"
	"github.com/dannysckt/storefront-backend/pkg/logger"
)

type distributorRegisterRequest struct {
	PackageID       uuid.UUID `json:"package_id" validate:"required"`
	BusinessName    string    `json:"business_name" validate:"required,min=2,max=200"`
	BusinessType    string    `json:"business_type" validate:"required,min=2,max=100"`
	BusinessAddress string    `json:"business_address" validate:"required,min=5,max=500"`
	ContactPerson   string    `json:"contact_person" validate:"required,min=2,max=100"`
	ContactNumber   string    `json:"contact_number" validate:"required,min=7,max=20"`
}

func DistributorPackages(svc distributorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := svc.ListPackages(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, packages)
	}
}

// DistributorRegister subscribes the user to a package.
func DistributorRegister(svc distributorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload distributorRegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Register(r.Context(), userID, distributorsvc.RegisterInput{
			PackageID:       payload.PackageID,
			BusinessName:    validators.SanitizeString(payload.BusinessName, 200),
			BusinessType:    validators.SanitizeString(payload.BusinessType, 100),
			BusinessAddress: validators.SanitizeString(payload.BusinessAddress, 500),
			ContactPerson:   validators.SanitizeString(payload.ContactPerson, 100),
			ContactNumber:   validators.SanitizeString(payload.ContactNumber, 20),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sub)
	}
}

func DistributorSubscription(svc distributorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.GetMySubscription(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}
