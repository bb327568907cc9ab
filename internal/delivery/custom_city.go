package delivery

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/pkg/config"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/geocode"
	"github.com/ruchulu/storefront-backend/pkg/metrics"
)

// Geocoder is the forward-geocoding surface needed for custom-city quotes.
type Geocoder interface {
	Search(ctx context.Context, text string) (*geocode.Place, error)
}

// CustomCityQuote is the provisional charge shown to a customer whose city is
// outside the configured list. The final charge still goes through back-office
// approval; order placement never blocks on this quote.
type CustomCityQuote struct {
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	DistanceKm     float64         `json:"distance_from_guntur_km"`
}

// CustomCityQuoter derives distance-based quotes for unlisted cities.
type CustomCityQuoter struct {
	geo     Geocoder
	cfg     config.DeliveryConfig
	metrics *metrics.StorefrontMetrics
}

// NewCustomCityQuoter builds a quoter over the given geocoder.
func NewCustomCityQuoter(geo Geocoder, cfg config.DeliveryConfig, m *metrics.StorefrontMetrics) (*CustomCityQuoter, error) {
	if geo == nil {
		return nil, fmt.Errorf("geocoder required")
	}
	return &CustomCityQuoter{geo: geo, cfg: cfg, metrics: m}, nil
}

// Quote geocodes the city and prices delivery by road-free distance from the
// depot: base charge plus a per-km rate, rounded to whole rupees.
func (q *CustomCityQuoter) Quote(ctx context.Context, cityName, stateName string) (*CustomCityQuote, error) {
	city := strings.TrimSpace(cityName)
	state := strings.TrimSpace(stateName)
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city_name is required")
	}
	if state == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state_name is required")
	}

	place, err := q.geo.Search(ctx, fmt.Sprintf("%s, %s, India", city, state))
	if err != nil {
		q.metrics.IncGeocodeFailure("search")
		return nil, err
	}

	distanceKm := haversineKm(q.cfg.DepotLat, q.cfg.DepotLng, place.Lat, place.Lng)
	charge := q.cfg.CustomCityBase.Add(
		q.cfg.CustomCityPerKmRate.Mul(decimal.NewFromFloat(distanceKm)),
	).Round(0)

	return &CustomCityQuote{
		DeliveryCharge: charge,
		DistanceKm:     math.Round(distanceKm*10) / 10,
	}, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
