// Package ranking turns a raw batch of aircraft state vectors into the
// ordered nearest-first list the dashboard displays. It is pure computation:
// no I/O, no clocks, deterministic output for a given input.
package ranking

import (
	"sort"

	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
	"github.com/nihcosnosaj/redwood-tui/pkg/opensky"
)

// Aircraft is an aircraft record annotated with its relation to the
// reference point. Derived each cycle, never persisted.
type Aircraft struct {
	opensky.Aircraft

	// DistanceKM is the great-circle distance from the reference point.
	DistanceKM float64

	// BearingDeg is the initial bearing from the reference point to the
	// aircraft, degrees [0, 360).
	BearingDeg float64
}

// Rank filters records to those within radiusKM of ref and returns them
// sorted by ascending distance. Records without a valid position are
// excluded; missing altitude, track, or velocity never affect inclusion.
// Distance ties are broken by ICAO24 ascending so the output order is
// deterministic regardless of input order. An empty or fully filtered input
// yields an empty slice, not an error.
func Rank(ref geo.Coordinate, radiusKM float64, records []opensky.Aircraft) []Aircraft {
	ranked := make([]Aircraft, 0, len(records))

	for _, rec := range records {
		if rec.Position == nil || !rec.Position.Valid() {
			continue
		}
		dist := geo.Distance(ref, *rec.Position)
		if dist > radiusKM {
			continue
		}
		ranked = append(ranked, Aircraft{
			Aircraft:   rec,
			DistanceKM: dist,
			BearingDeg: geo.Bearing(ref, *rec.Position),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKM != ranked[j].DistanceKM {
			return ranked[i].DistanceKM < ranked[j].DistanceKM
		}
		return ranked[i].ICAO24 < ranked[j].ICAO24
	})

	return ranked
}
