// Package geoip resolves the observer's approximate position from their
// public IP address using the ip-api.com JSON endpoint. It is consulted once
// at startup when automatic location is enabled; the application never calls
// it again.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
)

const (
	// DefaultBaseURL is the ip-api.com endpoint. The free tier is HTTP
	// only and needs no API key.
	DefaultBaseURL = "http://ip-api.com/json"

	// DefaultTimeout for the lookup request.
	DefaultTimeout = 5 * time.Second
)

// Client performs IP geolocation lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geolocation client. baseURL is for tests; empty uses
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// lookupResponse is the subset of the ip-api.com response we use.
type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Region  string  `json:"regionName"`
}

// Lookup returns the coordinate ip-api.com reports for the caller's public
// IP, plus a human-readable place name for logging.
func (c *Client) Lookup(ctx context.Context) (geo.Coordinate, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return geo.Coordinate{}, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, "", fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, "", fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return geo.Coordinate{}, "", fmt.Errorf("parse geolocation response: %w", err)
	}

	if lr.Status != "success" {
		return geo.Coordinate{}, "", fmt.Errorf("geolocation lookup failed: %s", lr.Message)
	}

	coord := geo.Coordinate{Latitude: lr.Lat, Longitude: lr.Lon}
	if !coord.Valid() {
		return geo.Coordinate{}, "", fmt.Errorf("geolocation service returned invalid coordinate (%.4f, %.4f)", lr.Lat, lr.Lon)
	}

	place := lr.City
	if lr.Region != "" {
		if place != "" {
			place += ", "
		}
		place += lr.Region
	}

	return coord, place, nil
}
