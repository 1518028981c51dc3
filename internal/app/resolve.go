package app

import (
	"context"
	"log/slog"

	"github.com/nihcosnosaj/redwood-tui/pkg/config"
	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
)

// LocationLookup resolves the observer's position from some external
// service. The string return is a human-readable place name for logging.
type LocationLookup interface {
	Lookup(ctx context.Context) (geo.Coordinate, string, error)
}

// ResolveLocation determines the reference coordinate, once, at startup.
//
// With auto_locate enabled it consults the lookup service and falls back to
// the manual coordinate if the lookup fails; with auto_locate disabled it
// uses the manual coordinate directly. When no usable coordinate remains the
// result is config.ErrNoReference, which is fatal: this runs before any
// terminal mode switch, and a dashboard with no reference point has no
// purpose. There are no retries here.
func ResolveLocation(ctx context.Context, cfg *config.Config, lookup LocationLookup, log *slog.Logger) (geo.Coordinate, error) {
	if cfg.Location.AutoLocate {
		coord, place, err := lookup.Lookup(ctx)
		if err == nil {
			log.Info("location resolved",
				"source", "auto",
				"place", place,
				"lat", coord.Latitude,
				"lon", coord.Longitude)
			return coord, nil
		}

		log.Warn("geolocation lookup failed, falling back to manual coordinate", "error", err)
		if coord, ok := manualCoordinate(cfg); ok {
			log.Info("location resolved",
				"source", "fallback",
				"lat", coord.Latitude,
				"lon", coord.Longitude)
			return coord, nil
		}
		return geo.Coordinate{}, config.ErrNoReference
	}

	coord, ok := manualCoordinate(cfg)
	if !ok {
		return geo.Coordinate{}, config.ErrNoReference
	}
	log.Info("location resolved",
		"source", "manual",
		"lat", coord.Latitude,
		"lon", coord.Longitude)
	return coord, nil
}

func manualCoordinate(cfg *config.Config) (geo.Coordinate, bool) {
	if !cfg.Location.HasManualCoordinate() {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{
		Latitude:  *cfg.Location.ManualLatitude,
		Longitude: *cfg.Location.ManualLongitude,
	}, true
}
