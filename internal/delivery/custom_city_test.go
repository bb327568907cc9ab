package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/pkg/config"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/geocode"
)

type stubGeocoder struct {
	place *geocode.Place
	err   error
	query string
}

func (s *stubGeocoder) Search(_ context.Context, text string) (*geocode.Place, error) {
	s.query = text
	if s.err != nil {
		return nil, s.err
	}
	return s.place, nil
}

func quoterConfig() config.DeliveryConfig {
	return config.DeliveryConfig{
		DepotLat:            0,
		DepotLng:            0,
		CustomCityBase:      decimal.NewFromInt(49),
		CustomCityPerKmRate: decimal.NewFromInt(2),
	}
}

func TestCustomCityQuoteDistancePricing(t *testing.T) {
	// One degree of longitude along the equator is ~111.19 km.
	geo := &stubGeocoder{place: &geocode.Place{Lat: 0, Lng: 1}}
	quoter, err := NewCustomCityQuoter(geo, quoterConfig(), nil)
	if err != nil {
		t.Fatalf("new quoter: %v", err)
	}

	quote, err := quoter.Quote(context.Background(), "Ongole", "Andhra Pradesh")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if geo.query != "Ongole, Andhra Pradesh, India" {
		t.Fatalf("unexpected geocode query %q", geo.query)
	}
	if quote.DistanceKm != 111.2 {
		t.Fatalf("expected distance 111.2 km, got %v", quote.DistanceKm)
	}
	// 49 + 2 * 111.1949... rounds to 271.
	if !quote.DeliveryCharge.Equal(decimal.NewFromInt(271)) {
		t.Fatalf("expected charge 271, got %s", quote.DeliveryCharge)
	}
}

func TestCustomCityQuoteValidation(t *testing.T) {
	quoter, err := NewCustomCityQuoter(&stubGeocoder{}, quoterConfig(), nil)
	if err != nil {
		t.Fatalf("new quoter: %v", err)
	}

	_, err = quoter.Quote(context.Background(), " ", "Telangana")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank city, got %v", err)
	}

	_, err = quoter.Quote(context.Background(), "Ongole", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank state, got %v", err)
	}
}

func TestCustomCityQuoteGeocodeFailurePropagates(t *testing.T) {
	geo := &stubGeocoder{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("boom"), "geocode request failed")}
	quoter, err := NewCustomCityQuoter(geo, quoterConfig(), nil)
	if err != nil {
		t.Fatalf("new quoter: %v", err)
	}

	_, err = quoter.Quote(context.Background(), "Ongole", "Andhra Pradesh")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
