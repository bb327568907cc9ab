package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ruchulu/storefront-backend/api/responses"
	customerssvc "github.com/ruchulu/storefront-backend/internal/customers"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
)

// UserDetails returns a returning customer's saved contact and address by
// phone number or email, for checkout prefill.
func UserDetails(svc customerssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		detail, err := svc.ByIdentifier(r.Context(), chi.URLParam(r, "identifier"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}
