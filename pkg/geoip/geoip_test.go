package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestLookup tests IP geolocation resolution.
func TestLookup(t *testing.T) {
	t.Run("Successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","lat":37.7749,"lon":-122.4194,"city":"San Francisco","regionName":"California"}`))
		}))
		defer server.Close()

		coord, place, err := NewClient(server.URL).Lookup(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if coord.Latitude != 37.7749 || coord.Longitude != -122.4194 {
			t.Errorf("Unexpected coordinate: %+v", coord)
		}
		if place != "San Francisco, California" {
			t.Errorf("Unexpected place: %q", place)
		}
	})

	t.Run("Service reports failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}))
		defer server.Close()

		if _, _, err := NewClient(server.URL).Lookup(context.Background()); err == nil {
			t.Fatal("Expected error for failed lookup, got nil")
		}
	})

	t.Run("Non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		if _, _, err := NewClient(server.URL).Lookup(context.Background()); err == nil {
			t.Fatal("Expected error for status 503, got nil")
		}
	})

	t.Run("Invalid coordinate is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","lat":512.0,"lon":0.0}`))
		}))
		defer server.Close()

		if _, _, err := NewClient(server.URL).Lookup(context.Background()); err == nil {
			t.Fatal("Expected error for out-of-range coordinate, got nil")
		}
	})

	t.Run("Network error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // closed before use

		if _, _, err := NewClient(server.URL).Lookup(context.Background()); err == nil {
			t.Fatal("Expected error for unreachable server, got nil")
		}
	})
}
