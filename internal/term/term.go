// Package term guards terminal restoration. Once the process has switched
// the terminal into raw/alternate-screen mode, every exit path — normal
// shutdown, a render error, or a panic anywhere under the guard — must run
// the restore routine before the process ends, or the user is left with an
// unusable shell.
package term

import "sync"

// Guard runs a restore function exactly once, no matter how many exit paths
// reach it or from which goroutine.
type Guard struct {
	restore func() error
	once    sync.Once
	err     error
}

// NewGuard wraps a restore function. The function is typically bound to the
// terminal program's release routine immediately after entering raw mode.
func NewGuard(restore func() error) *Guard {
	return &Guard{restore: restore}
}

// Release invokes the restore function on first call and returns its error;
// subsequent calls are no-ops returning the first result.
func (g *Guard) Release() error {
	g.once.Do(func() {
		if g.restore != nil {
			g.err = g.restore()
		}
	})
	return g.err
}

// Protect runs fn with the guard armed. On a panic the terminal is restored
// first and the original panic value is re-raised, so any diagnostic the
// runtime prints lands on a sane terminal. On normal return the guard is
// released before Protect returns.
func (g *Guard) Protect(fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			_ = g.Release()
			panic(r)
		}
	}()
	err := fn()
	if rerr := g.Release(); rerr != nil && err == nil {
		err = rerr
	}
	return err
}
