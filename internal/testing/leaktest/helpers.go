package leaktest

import (
	"runtime"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to exit
const settleTimeout = 2 * time.Second

// Reporter is the subset of testing.TB the checker needs
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
}

// GoroutineChecker records the goroutine count at construction and fails the
// test if it has grown by more than a tolerance when Check is called.
type GoroutineChecker struct {
	before int
	t      Reporter
}

// NewGoroutineChecker creates a checker from the current goroutine count
func NewGoroutineChecker(t Reporter) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check polls until the goroutine count drops within tolerance or the settle
// timeout passes.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(settleTimeout)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
		runtime.GC()
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}
