package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://nominatim.openstreetmap.org"
	responseBodyReadLimit int64 = 1024
)

var errUserAgentRequired = errors.New("geocode user agent is required")

// Client wraps an OSM Nominatim-compatible geocoding API. Reverse lookups feed
// checkout address autofill; forward lookups feed custom-city delivery quotes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured geocoder base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds a geocoding client. Nominatim's usage policy requires an
// identifying user agent, so one is mandatory.
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	trimmedUA := strings.TrimSpace(userAgent)
	if trimmedUA == "" {
		return nil, errUserAgentRequired
	}

	client := &Client{
		userAgent:  trimmedUA,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// AddressDetails mirrors the optional, inconsistently-populated sub-fields of
// a Nominatim address object. Which keys appear depends on locale and OSM data
// density; consumers must treat every field as possibly empty.
type AddressDetails struct {
	HouseNumber   string `json:"house_number"`
	Building      string `json:"building"`
	Road          string `json:"road"`
	Pedestrian    string `json:"pedestrian"`
	Residential   string `json:"residential"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	Hamlet        string `json:"hamlet"`
	Village       string `json:"village"`
	Town          string `json:"town"`
	City          string `json:"city"`
	Municipality  string `json:"municipality"`
	CityDistrict  string `json:"city_district"`
	District      string `json:"district"`
	Subdistrict   string `json:"subdistrict"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Region        string `json:"region"`
	Postcode      string `json:"postcode"`
}

// Place is the normalized geocoder result.
type Place struct {
	DisplayName string
	Lat         float64
	Lng         float64
	Address     AddressDetails
}

type placePayload struct {
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	DisplayName string         `json:"display_name"`
	Address     AddressDetails `json:"address"`
	Error       string         `json:"error"`
}

// Reverse resolves a coordinate pair into an address description.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geocode client not configured")
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("addressdetails", "1")

	var payload placePayload
	if err := c.get(ctx, "reverse", query, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found for coordinates")
	}

	return payload.toPlace()
}

// Search forward-geocodes a free-text query and returns the best match.
func (c *Client) Search(ctx context.Context, text string) (*Place, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geocode client not configured")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search text is required")
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", trimmed)
	query.Set("addressdetails", "1")
	query.Set("limit", "1")

	var payload []placePayload
	if err := c.get(ctx, "search", query, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no location found for query")
	}

	return payload[0].toPlace()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.baseURL, "/"), path, query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build geocode request")
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "geocode request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode geocode response")
	}
	return nil
}

// Nominatim serializes coordinates as strings. A result whose lat/lon does not
// parse is a broken upstream payload, not a usable place: the zero coordinates
// would otherwise flow into distance-based pricing as if they were real.
func (p placePayload) toPlace() (*Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "geocode result has invalid latitude")
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "geocode result has invalid longitude")
	}
	return &Place{
		DisplayName: p.DisplayName,
		Lat:         lat,
		Lng:         lng,
		Address:     p.Address,
	}, nil
}
