package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/api/responses"
	"github.com/ruchulu/storefront-backend/api/validators"
	deliverysvc "github.com/ruchulu/storefront-backend/internal/delivery"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/logger"
)

type deliveryQuoteRequest struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Subtotal string `json:"subtotal" validate:"required"`
	// Previous carries the selection the client is revising. A request with a
	// previous selection and no city is a state change, which resets the
	// captured city and charge.
	Previous *deliverysvc.Selection `json:"previous,omitempty"`
}

type deliveryQuoteResponse struct {
	Selection deliverysvc.Selection `json:"selection"`
	Quote     deliverysvc.Quote     `json:"quote"`
}

// DeliveryQuote resolves the charge for a city selection and cart subtotal.
func DeliveryQuote(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var payload deliveryQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subtotal, err := decimal.NewFromString(payload.Subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subtotal"))
			return
		}

		if payload.City == "" {
			if payload.Previous == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "city is required"))
				return
			}
			// Pricing resumes once a city in the new state is picked.
			selection := payload.Previous.SelectState(payload.State)
			responses.WriteSuccess(w, deliveryQuoteResponse{Selection: selection})
			return
		}

		selection, err := svc.SelectCity(r.Context(), payload.City, payload.State)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Charge(r.Context(), selection, subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, deliveryQuoteResponse{Selection: selection, Quote: quote})
	}
}

type customCityRequest struct {
	CityName  string `json:"city_name" validate:"required"`
	StateName string `json:"state_name" validate:"required"`
}

// CustomCityDelivery computes the provisional distance-based charge for a
// city outside the configured list.
func CustomCityDelivery(quoter *deliverysvc.CustomCityQuoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if quoter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload customCityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := quoter.Quote(r.Context(), payload.CityName, payload.StateName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
