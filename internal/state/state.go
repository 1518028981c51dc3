// Package state holds the handoff point between the acquisition loop and the
// render loop: a single atomically swapped snapshot of the latest ranked
// aircraft.
package state

import (
	"sync/atomic"
	"time"

	"github.com/nihcosnosaj/redwood-tui/pkg/ranking"
)

// Outcome tags how the most recent acquisition cycle ended.
type Outcome int

const (
	// OutcomePending means no cycle has completed yet; the UI shows a
	// loading state, not an empty result.
	OutcomePending Outcome = iota

	// OutcomeOK means the last cycle fetched and ranked successfully.
	OutcomeOK

	// OutcomeFailed means the last cycle failed; the snapshot retains the
	// previous aircraft list so the UI can show stale data.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeOK:
		return "ok"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one complete capture of the nearest-aircraft result. A
// snapshot is immutable after publication; a new cycle publishes a whole new
// value rather than mutating fields in place.
type Snapshot struct {
	// Aircraft is the in-range list, closest first.
	Aircraft []ranking.Aircraft

	// At is when the cycle that produced this snapshot completed.
	At time.Time

	// Outcome tags the cycle result.
	Outcome Outcome

	// Err is the failure reason when Outcome is OutcomeFailed.
	Err string

	// LastSuccess is when aircraft data was last refreshed successfully.
	// Equal to At for OK snapshots; carried forward on failures so the UI
	// can report the age of stale data.
	LastSuccess time.Time
}

// Store is the single-writer, multi-reader cell holding the current
// snapshot. Publishing swaps the whole pointer, so readers always observe a
// fully formed snapshot and never a torn mix of two cycles.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store primed with a pending snapshot, so readers before
// the first acquisition cycle see "loading" rather than nil.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{Outcome: OutcomePending})
	return s
}

// Publish replaces the current snapshot. Callers must not modify snap after
// publishing it.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the most recently published snapshot. The returned value
// is shared and must be treated as read-only.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}
