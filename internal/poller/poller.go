// Package poller runs the background acquisition loop: fetch aircraft state
// on a fixed interval, rank it against the reference point, and publish the
// result. The render loop never waits on this package; the two communicate
// only through the snapshot store.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/nihcosnosaj/redwood-tui/internal/state"
	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
	"github.com/nihcosnosaj/redwood-tui/pkg/opensky"
	"github.com/nihcosnosaj/redwood-tui/pkg/ranking"
)

// Provider supplies one batch of aircraft state vectors per call. The
// context bounds the fetch; implementations must return promptly once it is
// cancelled.
type Provider interface {
	FetchStates(ctx context.Context) ([]opensky.Aircraft, error)
}

// Poller drives the acquisition cycle. One cycle is fetch, rank, publish;
// cycles are independent except that a failed cycle republishes the previous
// aircraft list so the dashboard shows stale data instead of going blank.
type Poller struct {
	provider Provider
	store    *state.Store
	ref      geo.Coordinate
	radiusKM float64
	interval time.Duration
	log      *slog.Logger
}

// New creates a poller publishing into store.
func New(provider Provider, store *state.Store, ref geo.Coordinate, radiusKM float64, interval time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		provider: provider,
		store:    store,
		ref:      ref,
		radiusKM: radiusKM,
		interval: interval,
		log:      log,
	}
}

// Run executes acquisition cycles until ctx is cancelled: one immediately,
// then on every tick of the interval timer. The ticker fires on a fixed
// schedule measured from loop start, not from fetch completion, and the
// fetch runs synchronously in this goroutine — so at most one fetch is ever
// in flight, and a tick that comes due while a fetch is still running is
// dropped rather than queued (no compounding when fetches overrun the
// interval).
func (p *Poller) Run(ctx context.Context) {
	p.cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("acquisition loop stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.cycle(ctx)
			// Drop a tick that accumulated while the fetch was in
			// flight; the next cycle waits for a fresh tick.
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

// cycle performs one fetch-rank-publish pass. Errors are never fatal: they
// are folded into the published snapshot and surfaced by the UI.
func (p *Poller) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	records, err := p.provider.FetchStates(ctx)
	now := time.Now()

	if err != nil {
		if ctx.Err() != nil {
			// Shutdown race, not a provider failure; nothing to publish.
			return
		}
		prev := p.store.Current()
		p.log.Error("acquisition cycle failed", "error", err, "stale_aircraft", len(prev.Aircraft))
		p.store.Publish(&state.Snapshot{
			Aircraft:    prev.Aircraft,
			At:          now,
			Outcome:     state.OutcomeFailed,
			Err:         err.Error(),
			LastSuccess: prev.LastSuccess,
		})
		return
	}

	ranked := ranking.Rank(p.ref, p.radiusKM, records)
	p.log.Info("acquisition cycle complete", "fetched", len(records), "in_range", len(ranked))
	p.store.Publish(&state.Snapshot{
		Aircraft:    ranked,
		At:          now,
		Outcome:     state.OutcomeOK,
		LastSuccess: now,
	})
}
