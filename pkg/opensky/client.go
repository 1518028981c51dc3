package opensky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
)

const (
	// DefaultBaseURL is the OpenSky Network REST API base URL.
	DefaultBaseURL = "https://opensky-network.org/api"

	// DefaultTimeout for API requests.
	DefaultTimeout = 10 * time.Second

	// kmPerDegree approximates one degree of latitude in kilometers,
	// used to convert the detection radius into a bounding box.
	kmPerDegree = 111.0
)

// Client fetches live aircraft state vectors from the OpenSky Network for a
// fixed search area. The search area is set once at construction; every call
// to FetchStates queries the same bounding box.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	center      geo.Coordinate
	radiusKM    float64
}

// Config contains configuration for the OpenSky client.
type Config struct {
	// BaseURL overrides the API endpoint (used by tests). Empty uses
	// DefaultBaseURL.
	BaseURL string

	// Center is the reference point the bounding box is built around.
	Center geo.Coordinate

	// RadiusKM is the detection radius in kilometers.
	RadiusKM float64

	// Timeout for a single request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// MinRequestInterval is the minimum spacing between API calls.
	// Zero disables client-side rate limiting.
	MinRequestInterval time.Duration
}

// NewClient creates a new OpenSky API client.
//
// The client includes a rate limiter so a misconfigured poll interval cannot
// burn through the anonymous request quota, and a request timeout so a stuck
// fetch cannot stall the acquisition loop indefinitely.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MinRequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		center:      cfg.Center,
		radiusKM:    cfg.RadiusKM,
	}
}

// FetchStates returns the current state vectors for all aircraft inside the
// configured bounding box. The context bounds the whole call, including any
// rate-limiter wait.
func (c *Client) FetchStates(ctx context.Context) ([]Aircraft, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statesURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch aircraft states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("parse API response: %w", err)
	}

	aircraft := make([]Aircraft, 0, len(apiResp.States))
	for _, sv := range apiResp.States {
		ac, ok := convertStateVector(sv)
		if !ok {
			continue
		}
		aircraft = append(aircraft, ac)
	}

	return aircraft, nil
}

// statesURL builds the states/all URL with the bounding box derived from the
// configured center and radius. Latitude is clamped to +/-90 and longitude
// to +/-180 so a radius straddling a pole never produces an invalid query.
func (c *Client) statesURL() string {
	padding := c.radiusKM / kmPerDegree

	q := url.Values{}
	q.Set("lamin", fmt.Sprintf("%.4f", math.Max(c.center.Latitude-padding, -90)))
	q.Set("lamax", fmt.Sprintf("%.4f", math.Min(c.center.Latitude+padding, 90)))
	q.Set("lomin", fmt.Sprintf("%.4f", math.Max(c.center.Longitude-padding, -180)))
	q.Set("lomax", fmt.Sprintf("%.4f", math.Min(c.center.Longitude+padding, 180)))

	return c.baseURL + "/states/all?" + q.Encode()
}

// statesResponse represents the JSON response from the states/all endpoint.
// Each state vector is a positional array, not an object; see the OpenSky
// REST documentation for the index layout.
type statesResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}

// State vector indices used from the OpenSky positional format.
const (
	svICAO24        = 0
	svCallsign      = 1
	svOriginCountry = 2
	svLongitude     = 5
	svLatitude      = 6
	svBaroAltitude  = 7
	svVelocity      = 9
	svTrueTrack     = 10
	svVerticalRate  = 11
	svGeoAltitude   = 13
)

// convertStateVector maps one positional state vector onto an Aircraft.
// Returns ok=false for vectors without a usable ICAO24 identifier.
func convertStateVector(sv []any) (Aircraft, bool) {
	icao := strings.TrimSpace(stringAt(sv, svICAO24))
	if icao == "" {
		return Aircraft{}, false
	}

	ac := Aircraft{
		ICAO24:         icao,
		Callsign:       strings.TrimSpace(stringAt(sv, svCallsign)),
		OriginCountry:  stringAt(sv, svOriginCountry),
		VelocityMS:     floatAt(sv, svVelocity),
		TrackDeg:       floatAt(sv, svTrueTrack),
		VerticalRateMS: floatAt(sv, svVerticalRate),
	}

	// Barometric altitude when reported, geometric as fallback.
	if alt := floatAt(sv, svBaroAltitude); alt != nil {
		ac.AltitudeM = alt
	} else {
		ac.AltitudeM = floatAt(sv, svGeoAltitude)
	}

	// Both components must be present for a position to exist at all.
	lat := floatAt(sv, svLatitude)
	lon := floatAt(sv, svLongitude)
	if lat != nil && lon != nil {
		ac.Position = &geo.Coordinate{Latitude: *lat, Longitude: *lon}
	}

	return ac, true
}

// stringAt returns the string at index i, or "" if absent or not a string.
func stringAt(sv []any, i int) string {
	if i >= len(sv) {
		return ""
	}
	s, _ := sv[i].(string)
	return s
}

// floatAt returns a pointer to the float at index i, or nil if the value is
// absent or JSON null.
func floatAt(sv []any, i int) *float64 {
	if i >= len(sv) {
		return nil
	}
	f, ok := sv[i].(float64)
	if !ok {
		return nil
	}
	return &f
}
