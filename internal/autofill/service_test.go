package autofill

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/geocode"
	"github.com/ruchulu/storefront-backend/pkg/types"
)

type stubReverser struct {
	place *geocode.Place
	err   error
}

func (s *stubReverser) Reverse(ctx context.Context, lat, lng float64) (*geocode.Place, error) {
	return s.place, s.err
}

type stubDelivery struct {
	locations []models.DeliveryLocation
	selected  []string
}

func (s *stubDelivery) Locations(ctx context.Context) ([]models.DeliveryLocation, error) {
	return s.locations, nil
}

func (s *stubDelivery) FreeDeliverySetting(ctx context.Context) (*models.FreeDeliverySetting, error) {
	return &models.FreeDeliverySetting{}, nil
}

func (s *stubDelivery) SelectCity(ctx context.Context, city, state string) (delivery.Selection, error) {
	s.selected = append(s.selected, city)
	for _, loc := range s.locations {
		if strings.EqualFold(loc.CityName, city) {
			return delivery.Selection{
				City:       loc.CityName,
				State:      loc.State,
				BaseCharge: loc.Charge,
				Matched:    true,
			}, nil
		}
	}
	return delivery.Selection{City: city, State: state}, nil
}

func (s *stubDelivery) Charge(ctx context.Context, sel delivery.Selection, subtotal decimal.Decimal) (delivery.Quote, error) {
	return delivery.Quote{Charge: sel.BaseCharge}, nil
}

func gunturLocations() []models.DeliveryLocation {
	return []models.DeliveryLocation{
		{CityName: "Guntur", State: "Andhra Pradesh", Charge: decimal.NewFromInt(49)},
		{CityName: "Vijayawada", State: "Andhra Pradesh", Charge: decimal.NewFromInt(59)},
	}
}

func newTestService(t *testing.T, geo Reverser, del delivery.Service) Service {
	t.Helper()
	svc, err := NewService(geo, del, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return svc
}

func TestResolveMatchesKnownCityAndSelectsIt(t *testing.T) {
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		HouseNumber: "5-87-2",
		Road:        "Lakshmipuram Main Road",
		City:        "Guntur",
		State:       "Andhra Pradesh",
		Postcode:    "522007",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	result, err := svc.Resolve(context.Background(), 16.3, 80.44, types.Address{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.CityMatched {
		t.Fatal("expected detected city to match a configured location")
	}
	if result.Address.City != "Guntur" || result.Address.Pincode != "522007" {
		t.Fatalf("unexpected address %+v", result.Address)
	}
	if result.Selection == nil || !result.Selection.Matched {
		t.Fatal("expected a matched selection for a known city")
	}
	if !result.Selection.BaseCharge.Equal(decimal.NewFromInt(49)) {
		t.Fatalf("expected captured charge 49, got %s", result.Selection.BaseCharge)
	}
	if len(del.selected) != 1 || del.selected[0] != "Guntur" {
		t.Fatalf("expected city selection side effect, got %v", del.selected)
	}
}

func TestResolveSuburbOnlyFallsBackUnmatched(t *testing.T) {
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		Suburb: "Pedakakani",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	result, err := svc.Resolve(context.Background(), 16.3, 80.5, types.Address{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Address.City != "Pedakakani" {
		t.Fatalf("expected fallback city Pedakakani, got %q", result.Address.City)
	}
	if result.CityMatched {
		t.Fatal("fallback city must not be reported as matched")
	}
	if result.Selection != nil {
		t.Fatal("unmatched city must not trigger a selection")
	}
	if len(del.selected) != 0 {
		t.Fatalf("expected no selection side effect, got %v", del.selected)
	}
}

func TestResolveSubstringContainmentMatches(t *testing.T) {
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		Town:  "Guntur Urban",
		State: "Andhra Pradesh",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	result, err := svc.Resolve(context.Background(), 16.31, 80.43, types.Address{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.CityMatched || result.Address.City != "Guntur" {
		t.Fatalf("expected containment match on Guntur, got %+v", result.Address)
	}
}

func TestResolveExactMatchBeatsEarlierContainmentCandidate(t *testing.T) {
	// City only contains a known name, village is an exact match. Exact
	// matching across all candidates runs before containment.
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		City:    "Greater Vijayawada",
		Village: "Guntur",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	result, err := svc.Resolve(context.Background(), 16.31, 80.43, types.Address{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Address.City != "Guntur" {
		t.Fatalf("expected exact match Guntur, got %q", result.Address.City)
	}
}

func TestResolveStreetAndStateFallbackSources(t *testing.T) {
	// No road or state key; the pedestrian way and region should fill in.
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		Pedestrian: "Old Club Road",
		City:       "Guntur",
		Region:     "Andhra Pradesh",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	result, err := svc.Resolve(context.Background(), 16.3, 80.44, types.Address{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Address.Street != "Old Club Road" {
		t.Fatalf("expected pedestrian fallback for street, got %q", result.Address.Street)
	}
	if result.Address.State != "Andhra Pradesh" {
		t.Fatalf("expected region fallback for state, got %q", result.Address.State)
	}
}

func TestResolvePreservesUserEnteredFields(t *testing.T) {
	geo := &stubReverser{place: &geocode.Place{Address: geocode.AddressDetails{
		City:  "Guntur",
		State: "Andhra Pradesh",
	}}}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	current := types.Address{DoorNo: "12-3", Building: "Sai Residency", Street: "Brodipet 4th Lane"}
	result, err := svc.Resolve(context.Background(), 16.3, 80.44, current)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Address.DoorNo != "12-3" || result.Address.Building != "Sai Residency" || result.Address.Street != "Brodipet 4th Lane" {
		t.Fatalf("empty detections must preserve user input, got %+v", result.Address)
	}
	if result.Address.City != "Guntur" {
		t.Fatalf("expected detected city merged in, got %q", result.Address.City)
	}
}

func TestResolveGeocodeNotFound(t *testing.T) {
	geo := &stubReverser{err: pkgerrors.New(pkgerrors.CodeNotFound, "address not found for coordinates")}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	_, err := svc.Resolve(context.Background(), 0, 0, types.Address{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", pkgerrors.As(err).Code())
	}
}

func TestResolveGeocodeDependencyFailure(t *testing.T) {
	geo := &stubReverser{err: pkgerrors.New(pkgerrors.CodeDependency, "geocode request failed")}
	del := &stubDelivery{locations: gunturLocations()}
	svc := newTestService(t, geo, del)

	_, err := svc.Resolve(context.Background(), 16.3, 80.44, types.Address{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestFailureMessages(t *testing.T) {
	cases := map[FailureReason]string{
		ReasonPermissionDenied:    "denied",
		ReasonPositionUnavailable: "could not be determined",
		ReasonTimeout:             "too long",
		FailureReason("bogus"):    "could not detect",
	}
	seen := make(map[string]bool)
	for reason, fragment := range cases {
		msg := FailureMessage(reason)
		if !strings.Contains(msg, fragment) {
			t.Fatalf("message for %q = %q, expected to contain %q", reason, msg, fragment)
		}
		if seen[msg] && reason != "bogus" {
			t.Fatalf("expected distinct messages per reason, %q repeated", msg)
		}
		seen[msg] = true
	}
}
