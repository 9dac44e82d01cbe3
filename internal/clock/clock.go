package clock

import (
	"sync"
	"time"
)

// Clock provides wall-clock time to the session guardian and ledgers.
// This interface allows time to be mocked in tests.
type Clock interface {
	Now() time.Time
}

// Real provides actual system time.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time {
	return time.Now()
}

// Test provides a settable time for testing.
type Test struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

// NewTest returns a test clock starting at t.
func NewTest(t time.Time) *Test {
	return &Test{CurrentTime: t}
}

// Now returns the test time.
func (t *Test) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.CurrentTime
}

// Set moves the test clock to now.
func (t *Test) Set(now time.Time) {
	t.mu.Lock()
	t.CurrentTime = now
	t.mu.Unlock()
}

// Advance moves the test clock forward by d.
func (t *Test) Advance(d time.Duration) {
	t.mu.Lock()
	t.CurrentTime = t.CurrentTime.Add(d)
	t.mu.Unlock()
}
