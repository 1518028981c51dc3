package opensky

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:  baseURL,
		Center:   geo.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
		RadiusKM: 50,
	})
}

// TestFetchStates tests fetching and normalizing state vectors.
func TestFetchStates(t *testing.T) {
	t.Run("Successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/states/all" {
				t.Errorf("Expected path /states/all, got %s", r.URL.Path)
			}
			// One complete vector, one with a null position, one with a
			// null barometric altitude but a geometric one.
			w.Write([]byte(`{
				"time": 1700000000,
				"states": [
					["a835af", "UAL123  ", "United States", 1700000000, 1700000000, -122.39, 37.79, 3048.0, false, 231.5, 47.3, -4.2, null, 3100.0, "1200", false, 0],
					["abcdef", null, "Canada", null, 1700000000, null, null, null, true, null, null, null, null, null, null, false, 0],
					["badc0d", "ACA881", "Canada", 1700000000, 1700000000, -122.10, 37.60, null, false, 180.0, 270.0, 2.1, null, 9144.0, null, false, 0]
				]
			}`))
		}))
		defer server.Close()

		aircraft, err := testClient(server.URL).FetchStates(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 3 {
			t.Fatalf("Expected 3 aircraft, got %d", len(aircraft))
		}

		ac := aircraft[0]
		if ac.ICAO24 != "a835af" {
			t.Errorf("Expected ICAO24 a835af, got %s", ac.ICAO24)
		}
		if ac.Callsign != "UAL123" {
			t.Errorf("Expected trimmed callsign UAL123, got %q", ac.Callsign)
		}
		if ac.Position == nil || ac.Position.Latitude != 37.79 || ac.Position.Longitude != -122.39 {
			t.Errorf("Unexpected position: %+v", ac.Position)
		}
		if ac.AltitudeM == nil || *ac.AltitudeM != 3048.0 {
			t.Errorf("Expected barometric altitude 3048, got %v", ac.AltitudeM)
		}
		if ac.VelocityMS == nil || *ac.VelocityMS != 231.5 {
			t.Errorf("Expected velocity 231.5, got %v", ac.VelocityMS)
		}

		// Null position maps to nil, not zero coordinates.
		if aircraft[1].Position != nil {
			t.Errorf("Expected nil position, got %+v", aircraft[1].Position)
		}
		if aircraft[1].Callsign != "" {
			t.Errorf("Expected empty callsign, got %q", aircraft[1].Callsign)
		}

		// Geometric altitude fallback when barometric is null.
		if aircraft[2].AltitudeM == nil || *aircraft[2].AltitudeM != 9144.0 {
			t.Errorf("Expected geometric altitude fallback 9144, got %v", aircraft[2].AltitudeM)
		}
	})

	t.Run("Bounding box derived from center and radius", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			// 50 km is ~0.4505 degrees of padding.
			checks := map[string]string{
				"lamin": "37.3244",
				"lamax": "38.2254",
				"lomin": "-122.8699",
				"lomax": "-121.9689",
			}
			for param, want := range checks {
				if got := q.Get(param); got != want {
					t.Errorf("Expected %s=%s, got %s", param, want, got)
				}
			}
			w.Write([]byte(`{"time": 0, "states": null}`))
		}))
		defer server.Close()

		aircraft, err := testClient(server.URL).FetchStates(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 0 {
			t.Errorf("Expected no aircraft for null states, got %d", len(aircraft))
		}
	})

	t.Run("Latitude clamped near the pole", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("lamax"); got != "90.0000" {
				t.Errorf("Expected lamax clamped to 90.0000, got %s", got)
			}
			w.Write([]byte(`{"time": 0, "states": []}`))
		}))
		defer server.Close()

		client := NewClient(Config{
			BaseURL:  server.URL,
			Center:   geo.Coordinate{Latitude: 89.9, Longitude: 0},
			RadiusKM: 100,
		})
		if _, err := client.FetchStates(context.Background()); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("Non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "try again later", http.StatusTooManyRequests)
		}))
		defer server.Close()

		if _, err := testClient(server.URL).FetchStates(context.Background()); err == nil {
			t.Fatal("Expected error for status 429, got nil")
		}
	})

	t.Run("Malformed JSON is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"time": 17, "states": [[`))
		}))
		defer server.Close()

		if _, err := testClient(server.URL).FetchStates(context.Background()); err == nil {
			t.Fatal("Expected error for malformed JSON, got nil")
		}
	})

	t.Run("Cancelled context aborts the fetch", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := testClient(server.URL).FetchStates(ctx)
		if err == nil {
			t.Fatal("Expected error for cancelled context, got nil")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Fetch did not abort promptly: %v", elapsed)
		}
	})

	t.Run("Vectors without an identifier are skipped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"time": 0, "states": [["  ", "X", "Nowhere", null, null, 1.0, 1.0, null, false, null, null, null, null, null, null, false, 0]]}`))
		}))
		defer server.Close()

		aircraft, err := testClient(server.URL).FetchStates(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 0 {
			t.Errorf("Expected blank-identifier vector to be skipped, got %d", len(aircraft))
		}
	})
}
