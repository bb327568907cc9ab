package autofill

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/geocode"
	"github.com/ruchulu/storefront-backend/pkg/metrics"
	"github.com/ruchulu/storefront-backend/pkg/types"
)

// FailureReason classifies a client-side position lookup failure.
type FailureReason string

const (
	ReasonPermissionDenied    FailureReason = "permission_denied"
	ReasonPositionUnavailable FailureReason = "position_unavailable"
	ReasonTimeout             FailureReason = "timeout"
)

var failureMessages = map[FailureReason]string{
	ReasonPermissionDenied:    "Location access was denied. Please allow location access or enter your address manually.",
	ReasonPositionUnavailable: "Your location could not be determined. Please enter your address manually.",
	ReasonTimeout:             "Locating you took too long. Please enter your address manually.",
}

// FailureMessage maps a position lookup failure to its user-facing notice.
// Unknown reasons get a generic fallback so the form stays usable.
func FailureMessage(reason FailureReason) string {
	if msg, ok := failureMessages[reason]; ok {
		return msg
	}
	return "We could not detect your location. Please enter your address manually."
}

// Reverser is the reverse-geocoding dependency.
type Reverser interface {
	Reverse(ctx context.Context, lat, lng float64) (*geocode.Place, error)
}

// Result is the outcome of one autofill attempt. Address holds the merged
// form state; Selection is populated only when the detected city matched a
// configured delivery location.
type Result struct {
	Address     types.Address       `json:"address"`
	CityMatched bool                `json:"city_matched"`
	Selection   *delivery.Selection `json:"selection,omitempty"`
}

// Service resolves coordinates into checkout address fields.
type Service interface {
	Resolve(ctx context.Context, lat, lng float64, current types.Address) (*Result, error)
}

type service struct {
	geo      Reverser
	delivery delivery.Service
	met      *metrics.StorefrontMetrics
}

// NewService builds the address autofill service.
func NewService(geo Reverser, deliverySvc delivery.Service, met *metrics.StorefrontMetrics) (Service, error) {
	if geo == nil {
		return nil, fmt.Errorf("geocoder required")
	}
	if deliverySvc == nil {
		return nil, fmt.Errorf("delivery service required")
	}
	return &service{geo: geo, delivery: deliverySvc, met: met}, nil
}

// Resolve reverse-geocodes the coordinates and merges detected fields over
// the current form values. A failed or empty lookup leaves the form untouched
// and surfaces as a recoverable error.
func (s *service) Resolve(ctx context.Context, lat, lng float64, current types.Address) (*Result, error) {
	place, err := s.geo.Reverse(ctx, lat, lng)
	if err != nil {
		s.met.IncGeocodeFailure("reverse")
		if pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no address found for your location, please enter it manually")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse geocode position")
	}

	locations, err := s.delivery.Locations(ctx)
	if err != nil {
		return nil, err
	}

	detected, matched := resolveFields(place.Address, locations)
	merged := current.Merge(detected)

	result := &Result{Address: merged, CityMatched: matched}
	if matched {
		sel, err := s.delivery.SelectCity(ctx, merged.City, merged.State)
		if err != nil {
			return nil, err
		}
		result.Selection = &sel
	}
	return result, nil
}

// resolveFields maps the geocoder's loosely populated address record onto the
// checkout form fields, taking the first non-empty value down each field's
// source chain. Door number and pincode have a single source key in OSM data,
// so their chains are one deep.
func resolveFields(addr geocode.AddressDetails, locations []models.DeliveryLocation) (types.Address, bool) {
	city, matched := resolveCity(addr, locations)
	return types.Address{
		DoorNo:   firstNonEmpty(addr.HouseNumber),
		Building: firstNonEmpty(addr.Building, addr.Neighbourhood),
		Street:   firstNonEmpty(addr.Road, addr.Pedestrian, addr.Residential),
		City:     city,
		State:    firstNonEmpty(addr.State, addr.Region),
		Pincode:  firstNonEmpty(addr.Postcode),
	}, matched
}

// resolveCity tries each locality-like candidate, in priority order, against
// the configured city list: exact case-insensitive first, then substring
// containment in either direction. With no match it keeps the first non-empty
// candidate verbatim so the customer still sees what was detected.
func resolveCity(addr geocode.AddressDetails, locations []models.DeliveryLocation) (string, bool) {
	candidates := []string{
		addr.City,
		addr.Town,
		addr.Municipality,
		addr.County,
		addr.StateDistrict,
		addr.District,
		addr.CityDistrict,
		addr.Village,
		addr.Suburb,
		addr.Subdistrict,
		addr.Hamlet,
	}

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		for _, loc := range locations {
			if strings.EqualFold(trimmed, loc.CityName) {
				return loc.CityName, true
			}
		}
	}
	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, loc := range locations {
			known := strings.ToLower(loc.CityName)
			if strings.Contains(lower, known) || strings.Contains(known, lower) {
				return loc.CityName, true
			}
		}
	}

	return firstNonEmpty(candidates...), false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
