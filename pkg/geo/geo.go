// Package geo provides the great-circle math used to locate aircraft
// relative to the observer: haversine distance, initial bearing, and
// compass-point conversion. All positions use the WGS84 coordinate system.
package geo

import "math"

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the IUGG mean Earth radius in kilometers
	EarthRadiusKm = 6371.0088
)

// Coordinate represents a position on Earth's surface.
type Coordinate struct {
	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64
}

// Valid reports whether the coordinate lies within the WGS84 domain
// and contains no NaN or infinite components.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Distance returns the great-circle distance between two coordinates in
// kilometers, computed with the haversine formula. Suitable for the
// "nearby aircraft" ranges this application cares about.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Latitude * DegreesToRadians
	lat2 := b.Latitude * DegreesToRadians
	deltaLat := (b.Latitude - a.Latitude) * DegreesToRadians
	deltaLon := (b.Longitude - a.Longitude) * DegreesToRadians

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Bearing calculates the initial bearing (forward azimuth) from one point to
// another along the great circle connecting them.
// Returns bearing in degrees [0, 360), where 0 = North, 90 = East,
// 180 = South, 270 = West.
func Bearing(from, to Coordinate) float64 {
	lat1 := from.Latitude * DegreesToRadians
	lat2 := to.Latitude * DegreesToRadians
	deltaLon := (to.Longitude - from.Longitude) * DegreesToRadians

	y := math.Sin(deltaLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLon)

	bearing := math.Atan2(y, x) * RadiansToDegrees
	if bearing < 0 {
		bearing += 360
	}
	return math.Mod(bearing, 360)
}

// compassPoints are the 16-wind compass labels, clockwise from north.
var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal converts a bearing in degrees to its 16-wind compass point
// (e.g. 22.5 -> "NNE"). Bearings outside [0, 360) are normalized first.
func Cardinal(bearing float64) string {
	bearing = math.Mod(bearing, 360)
	if bearing < 0 {
		bearing += 360
	}
	idx := int(math.Round(bearing/22.5)) % len(compassPoints)
	return compassPoints[idx]
}
