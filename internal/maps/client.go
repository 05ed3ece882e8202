package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL points at the Google Maps web service endpoints.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// ErrZeroResults indicates the provider answered successfully but found
// nothing for the query.
var ErrZeroResults = fmt.Errorf("maps: zero results")

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one raw text-search hit, prior to enrichment.
type Place struct {
	PlaceID  string
	Name     string
	Address  string
	Rating   *float64
	OpenNow  *bool
	Location *LatLng
}

// Details carries the supplementary fields fetched per place.
type Details struct {
	PhoneNumber              string
	InternationalPhoneNumber string
	Website                  string
}

// Client declares the provider operations the store locator depends on.
type Client interface {
	Geocode(ctx context.Context, address string) (LatLng, error)
	TextSearch(ctx context.Context, query string) ([]Place, error)
	PlaceDetails(ctx context.Context, placeID string) (Details, error)
}

// HTTPClient implements Client against the Google Maps JSON endpoints.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPClient builds a maps client. The base URL is overridable for tests.
func NewHTTPClient(client *http.Client, baseURL, apiKey string) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

var _ Client = (*HTTPClient)(nil)

// Geocode resolves a free-text address to a single coordinate pair.
func (c *HTTPClient) Geocode(ctx context.Context, address string) (LatLng, error) {
	params := url.Values{}
	params.Set("address", address)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/geocode/json", params, &payload); err != nil {
		return LatLng{}, err
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return LatLng{}, ErrZeroResults
	}
	if payload.Status != "OK" {
		return LatLng{}, fmt.Errorf("geocode status %s", payload.Status)
	}

	return payload.Results[0].Geometry.Location, nil
}

// TextSearch runs a place text search and maps the hits into Places.
// A ZERO_RESULTS answer is an empty slice, not an error.
func (c *HTTPClient) TextSearch(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID          string   `json:"place_id"`
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			Rating           *float64 `json:"rating"`
			OpeningHours     *struct {
				OpenNow *bool `json:"open_now"`
			} `json:"opening_hours"`
			Geometry *struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/place/textsearch/json", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("text search status %s", payload.Status)
	}

	places := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		place := Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
		}
		if r.OpeningHours != nil {
			place.OpenNow = r.OpeningHours.OpenNow
		}
		if r.Geometry != nil {
			loc := r.Geometry.Location
			place.Location = &loc
		}
		places = append(places, place)
	}
	return places, nil
}

// PlaceDetails fetches the phone number and website for a place.
func (c *HTTPClient) PlaceDetails(ctx context.Context, placeID string) (Details, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_phone_number,international_phone_number,website")

	var payload struct {
		Status string `json:"status"`
		Result struct {
			FormattedPhoneNumber     string `json:"formatted_phone_number"`
			InternationalPhoneNumber string `json:"international_phone_number"`
			Website                  string `json:"website"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/place/details/json", params, &payload); err != nil {
		return Details{}, err
	}

	if payload.Status != "OK" {
		return Details{}, fmt.Errorf("place details status %s", payload.Status)
	}

	return Details{
		PhoneNumber:              payload.Result.FormattedPhoneNumber,
		InternationalPhoneNumber: payload.Result.InternationalPhoneNumber,
		Website:                  payload.Result.Website,
	}, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create maps request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode maps response: %w", err)
	}
	return nil
}
