package controllers

import (
	"net/http"

	"github.com/ruchulu/storefront-backend/api/responses"
	deliverysvc "github.com/ruchulu/storefront-backend/internal/delivery"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
)

// Locations lists the deliverable cities with their charges so the checkout
// page can render the city dropdown.
func Locations(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		locations, err := svc.Locations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, locations)
	}
}

// FreeDeliverySetting returns the global free-delivery default.
func FreeDeliverySetting(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		setting, err := svc.FreeDeliverySetting(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, setting)
	}
}
