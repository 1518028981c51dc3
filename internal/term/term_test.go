package term

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// TestReleaseRunsOnce tests that restore executes exactly once across
// repeated and concurrent calls.
func TestReleaseRunsOnce(t *testing.T) {
	var calls atomic.Int32
	guard := NewGuard(func() error {
		calls.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.Release()
		}()
	}
	wg.Wait()
	guard.Release()

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected restore to run once, ran %d times", got)
	}
}

// TestReleaseReturnsFirstError tests that every call reports the result of
// the single restore invocation.
func TestReleaseReturnsFirstError(t *testing.T) {
	restoreErr := errors.New("reset failed")
	guard := NewGuard(func() error { return restoreErr })

	if err := guard.Release(); !errors.Is(err, restoreErr) {
		t.Errorf("Expected restore error, got: %v", err)
	}
	if err := guard.Release(); !errors.Is(err, restoreErr) {
		t.Errorf("Expected cached restore error on second call, got: %v", err)
	}
}

// TestProtect tests the exit paths through a guarded run.
func TestProtect(t *testing.T) {
	t.Run("Normal return releases the guard", func(t *testing.T) {
		var restored bool
		guard := NewGuard(func() error {
			restored = true
			return nil
		})

		if err := guard.Protect(func() error { return nil }); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
		if !restored {
			t.Error("Expected terminal restored on normal return")
		}
	})

	t.Run("Run error takes precedence over restore error", func(t *testing.T) {
		runErr := errors.New("render failed")
		guard := NewGuard(func() error { return errors.New("reset failed") })

		if err := guard.Protect(func() error { return runErr }); !errors.Is(err, runErr) {
			t.Errorf("Expected run error, got: %v", err)
		}
	})

	t.Run("Restore error surfaces when run succeeds", func(t *testing.T) {
		restoreErr := errors.New("reset failed")
		guard := NewGuard(func() error { return restoreErr })

		if err := guard.Protect(func() error { return nil }); !errors.Is(err, restoreErr) {
			t.Errorf("Expected restore error, got: %v", err)
		}
	})

	t.Run("Panic restores before re-raising", func(t *testing.T) {
		var restored bool
		guard := NewGuard(func() error {
			restored = true
			return nil
		})

		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("Expected panic to propagate")
			}
			if r != "boom" {
				t.Errorf("Expected original panic value, got: %v", r)
			}
			if !restored {
				t.Error("Expected terminal restored before the panic propagated")
			}
		}()
		guard.Protect(func() error { panic("boom") })
	})
}
