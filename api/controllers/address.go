package controllers

import (
	"net/http"

	"github.com/ruchulu/storefront-backend/api/responses"
	"github.com/ruchulu/storefront-backend/api/validators"
	autofillsvc "github.com/ruchulu/storefront-backend/internal/autofill"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
	"github.com/ruchulu/storefront-backend/pkg/types"
)

type autofillRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`

	// Current form values; non-empty detections overwrite these, empty
	// detections leave them alone.
	Address types.Address `json:"address"`
}

// AddressAutofill reverse-geocodes the client's position into address fields.
func AddressAutofill(svc autofillsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "autofill service unavailable"))
			return
		}

		var payload autofillRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Resolve(r.Context(), *payload.Lat, *payload.Lng, payload.Address)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type geolocationFailureRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// GeolocationFailure maps a client-side position failure to the notice shown
// on the checkout page. Kept server-side so the wording stays consistent
// across clients.
func GeolocationFailure(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload geolocationFailureRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := autofillsvc.FailureMessage(autofillsvc.FailureReason(payload.Reason))
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}
