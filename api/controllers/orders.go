package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ruchulu/storefront-backend/api/middleware"
	"github.com/ruchulu/storefront-backend/api/responses"
	"github.com/ruchulu/storefront-backend/api/validators"
	"github.com/ruchulu/storefront-backend/internal/checkout"
	orderssvc "github.com/ruchulu/storefront-backend/internal/orders"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
)

// OrderPlace validates the checkout form against the session cart and places
// the order.
func OrderPlace(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id := middleware.SessionIDFromContext(r.Context())
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		var form checkout.Form
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Place(r.Context(), id, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderByTrackingCode returns a placed order for the tracking page.
func OrderByTrackingCode(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		order, err := svc.ByTrackingCode(r.Context(), chi.URLParam(r, "trackingCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
