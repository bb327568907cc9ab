package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/config"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
)

// CustomCitySentinel is the city value customers pick when their city is not
// in the deliverable list. The resulting order carries charge 0 and is
// reconciled by the back office after placement.
const CustomCitySentinel = "Others"

// Selection captures the city/state choice made on the checkout page. The
// base charge is captured once at selection time; only the threshold
// comparison is recomputed against the live subtotal.
type Selection struct {
	City         string           `json:"city"`
	State        string           `json:"state"`
	BaseCharge   decimal.Decimal  `json:"base_charge"`
	Threshold    *decimal.Decimal `json:"free_delivery_threshold,omitempty"`
	IsCustomCity bool             `json:"is_custom_city"`
	// Matched reports whether the city resolved to a configured location.
	Matched bool `json:"matched"`
}

// SelectState returns the selection after a state change: city and captured
// charge reset, since a charge is only meaningful once both halves of the
// (city, state) pair match a configured location.
func (s Selection) SelectState(state string) Selection {
	return Selection{State: state}
}

// Quote is the resolved delivery pricing for a selection and subtotal.
type Quote struct {
	Charge            decimal.Decimal  `json:"delivery_charge"`
	FreeDelivery      bool             `json:"free_delivery"`
	Threshold         *decimal.Decimal `json:"free_delivery_threshold,omitempty"`
	RemainingForFree  *decimal.Decimal `json:"remaining_for_free_delivery,omitempty"`
	CustomCityPending bool             `json:"custom_city_pending"`
}

// Service resolves delivery charges for checkout.
type Service interface {
	Locations(ctx context.Context) ([]models.DeliveryLocation, error)
	FreeDeliverySetting(ctx context.Context) (*models.FreeDeliverySetting, error)
	SelectCity(ctx context.Context, city, state string) (Selection, error)
	Charge(ctx context.Context, sel Selection, subtotal decimal.Decimal) (Quote, error)
}

type service struct {
	repo Repository
	cfg  config.DeliveryConfig
}

// NewService builds the delivery pricing resolver.
func NewService(repo Repository, cfg config.DeliveryConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Locations(ctx context.Context) ([]models.DeliveryLocation, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery locations")
	}
	return locations, nil
}

func (s *service) FreeDeliverySetting(ctx context.Context) (*models.FreeDeliverySetting, error) {
	setting, err := s.repo.FreeDeliverySetting(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.FreeDeliverySetting{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load free delivery setting")
	}
	return setting, nil
}

// SelectCity captures the base charge for a city choice. "Others" marks a
// custom-city selection with charge 0; an unknown city that is not "Others"
// falls back to the configured default charge instead of failing checkout.
func (s *service) SelectCity(ctx context.Context, city, state string) (Selection, error) {
	trimmedCity := strings.TrimSpace(city)
	trimmedState := strings.TrimSpace(state)
	if trimmedCity == "" {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	if strings.EqualFold(trimmedCity, CustomCitySentinel) {
		return Selection{
			City:         CustomCitySentinel,
			State:        trimmedState,
			BaseCharge:   decimal.Zero,
			IsCustomCity: true,
		}, nil
	}

	location, err := s.repo.FindByCityState(ctx, trimmedCity, trimmedState)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Selection{
				City:       trimmedCity,
				State:      trimmedState,
				BaseCharge: s.cfg.DefaultCharge,
			}, nil
		}
		return Selection{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up delivery location")
	}

	return Selection{
		City:       location.CityName,
		State:      location.State,
		BaseCharge: location.Charge,
		Threshold:  location.FreeDeliveryThreshold,
		Matched:    true,
	}, nil
}

// Charge resolves the delivery charge for the current subtotal. The effective
// threshold is the location's own when set, otherwise the enabled global
// default.
func (s *service) Charge(ctx context.Context, sel Selection, subtotal decimal.Decimal) (Quote, error) {
	if sel.IsCustomCity {
		return Quote{Charge: decimal.Zero, CustomCityPending: true}, nil
	}

	threshold := sel.Threshold
	if threshold == nil {
		setting, err := s.FreeDeliverySetting(ctx)
		if err != nil {
			return Quote{}, err
		}
		if setting.Enabled {
			value := setting.Threshold
			threshold = &value
		}
	}

	quote := Quote{Charge: sel.BaseCharge, Threshold: threshold}
	if threshold != nil {
		remaining := threshold.Sub(subtotal)
		quote.RemainingForFree = &remaining
		if subtotal.GreaterThanOrEqual(*threshold) {
			quote.Charge = decimal.Zero
			quote.FreeDelivery = true
		}
	}
	return quote, nil
}
