// Package opensky provides a client for the OpenSky Network REST API.
//
// The client fetches live state vectors for all aircraft inside a bounding
// box around a configured center point. Response normalization (positional
// array decoding, optional-field mapping, callsign trimming) happens here so
// the rest of the application only ever sees typed Aircraft values.
//
// API Documentation: https://openskynetwork.github.io/opensky-api/rest.html
// Rate Limits: anonymous users get 100 request credits per day.
package opensky

import "github.com/nihcosnosaj/redwood-tui/pkg/geo"

// Aircraft represents a single aircraft state vector reported by OpenSky.
// Fields the network may omit are pointers; nil means "not reported this
// cycle", never zero.
type Aircraft struct {
	// ICAO24 is the unique 24-bit ICAO transponder address (e.g. "a835af").
	// Lowercase hex, unique per batch.
	ICAO24 string

	// Callsign is the flight callsign (e.g. "UAL123"), trimmed of the
	// padding OpenSky adds. Empty if the aircraft broadcasts none.
	Callsign string

	// OriginCountry is the country of registration ("United States").
	OriginCountry string

	// Position is the reported WGS84 position, nil when OpenSky has no
	// recent position fix for the aircraft.
	Position *geo.Coordinate

	// AltitudeM is the altitude in meters (barometric when available,
	// otherwise geometric).
	AltitudeM *float64

	// VelocityMS is the ground speed in meters per second.
	VelocityMS *float64

	// TrackDeg is the true track in degrees (0-360, clockwise from north).
	TrackDeg *float64

	// VerticalRateMS is the vertical rate in meters per second
	// (positive = climbing, negative = descending).
	VerticalRateMS *float64
}
