package state

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nihcosnosaj/redwood-tui/pkg/ranking"
)

// TestInitialSnapshot tests that readers before the first cycle see a
// pending snapshot, not nil and not an empty "ok" result.
func TestInitialSnapshot(t *testing.T) {
	store := NewStore()

	snap := store.Current()
	if snap == nil {
		t.Fatal("Expected pending snapshot, got nil")
	}
	if snap.Outcome != OutcomePending {
		t.Errorf("Expected OutcomePending, got %v", snap.Outcome)
	}
	if len(snap.Aircraft) != 0 {
		t.Errorf("Expected no aircraft before first cycle, got %d", len(snap.Aircraft))
	}
}

// TestPublishReplacesWholeSnapshot tests basic publish/read behavior.
func TestPublishReplacesWholeSnapshot(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.Publish(&Snapshot{
		Aircraft:    []ranking.Aircraft{{DistanceKM: 12.5}},
		At:          now,
		Outcome:     OutcomeOK,
		LastSuccess: now,
	})

	snap := store.Current()
	if snap.Outcome != OutcomeOK {
		t.Errorf("Expected OutcomeOK, got %v", snap.Outcome)
	}
	if len(snap.Aircraft) != 1 {
		t.Fatalf("Expected 1 aircraft, got %d", len(snap.Aircraft))
	}
	if !snap.At.Equal(now) || !snap.LastSuccess.Equal(now) {
		t.Error("Expected timestamps to round-trip")
	}
}

// TestConcurrentPublishAndRead tests that a reader racing a publisher always
// observes a fully formed snapshot, never a mix of two. Each published
// snapshot is internally consistent (the Err field encodes the aircraft
// count), so any torn read is detectable.
func TestConcurrentPublishAndRead(t *testing.T) {
	store := NewStore()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			n := i % 7
			aircraft := make([]ranking.Aircraft, n)
			for j := range aircraft {
				aircraft[j].ICAO24 = fmt.Sprintf("ac%02d", n)
			}
			store.Publish(&Snapshot{
				Aircraft: aircraft,
				Outcome:  OutcomeOK,
				Err:      fmt.Sprintf("%d", n),
			})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10000; i++ {
				snap := store.Current()
				if snap.Outcome == OutcomePending {
					continue
				}
				want := fmt.Sprintf("%d", len(snap.Aircraft))
				if snap.Err != want {
					t.Errorf("Torn snapshot: %d aircraft but marker %q", len(snap.Aircraft), snap.Err)
					return
				}
				for _, ac := range snap.Aircraft {
					if ac.ICAO24 != fmt.Sprintf("ac%02d", len(snap.Aircraft)) {
						t.Errorf("Torn snapshot contents: %q in list of %d", ac.ICAO24, len(snap.Aircraft))
						return
					}
				}
			}
		}()
	}

	// Give readers time to overlap the publisher, then stop it.
	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()
}

// TestOutcomeString covers the status labels the UI leans on.
func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomePending, "pending"},
		{OutcomeOK, "ok"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String(): expected %q, got %q", tt.outcome, tt.want, got)
		}
	}
}
