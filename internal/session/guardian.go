// Package session enforces the parent-configured screen-time budget.
//
// The Guardian owns the persisted session record. It never runs its own
// timer: a Poller (or any caller) invokes Tick on a fixed cadence and the
// Guardian locks the first time the remaining time reaches zero. Unlocking
// requires the parent PIN held by the settings registry.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodtune/brightboard/internal/clock"
	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/goodtune/brightboard/internal/storage"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidPIN is returned when an unlock attempt does not match the parent PIN.
	ErrInvalidPIN = errors.New("session: incorrect parent PIN")
	// ErrNotLocked is returned by PIN entry while the session is not locked.
	ErrNotLocked = errors.New("session: not locked")
	// ErrInvalidDuration is returned when a session is started without a positive length.
	ErrInvalidDuration = errors.New("session: duration must be positive")
	// ErrLocked is returned by Start and End while the session is locked.
	// Only Unlock leaves the locked state.
	ErrLocked = errors.New("session: locked")
)

// Data is the persisted session record. Duration is in minutes; zero means
// no budget is configured.
type Data struct {
	StartedAt *time.Time `json:"startedAt"`
	Duration  int        `json:"duration"`
	IsLocked  bool       `json:"isLocked"`
}

// Default returns the unconfigured session record.
func Default() Data {
	return Data{}
}

// State is the coarse guardian state.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateActive       State = "active"
	StateLocked       State = "locked"
)

// Status is a snapshot of the guardian for callers.
type Status struct {
	State     State          `json:"state"`
	StartedAt *time.Time     `json:"startedAt"`
	Duration  int            `json:"duration"`
	Remaining *time.Duration `json:"-"`
	// RemainingMs mirrors Remaining for JSON consumers; nil when no budget applies.
	RemainingMs *int64 `json:"remainingMs"`
}

// PINSource supplies the current parent PIN.
type PINSource interface {
	ParentPIN() string
}

// Guardian owns the session record.
type Guardian struct {
	store  storage.Store
	pins   PINSource
	clock  clock.Clock
	logger zerolog.Logger

	mu      sync.Mutex
	current Data
	onLock  []func()
}

// NewGuardian loads the session record from store. A missing or malformed
// record yields an unconfigured session.
func NewGuardian(ctx context.Context, store storage.Store, pins PINSource, clk clock.Clock, logger zerolog.Logger) *Guardian {
	if clk == nil {
		clk = clock.Real{}
	}
	g := &Guardian{
		store:  store,
		pins:   pins,
		clock:  clk,
		logger: logger.With().Str("component", "session").Logger(),
	}
	g.current = storage.Load(ctx, store, storage.KeySession, Default(), g.logger)
	if g.current.Duration < 0 {
		g.logger.Warn().Int("duration", g.current.Duration).Msg("Negative session duration, treating as unconfigured")
		g.current = Default()
	}
	return g
}

// OnLock registers fn to run each time the session transitions to locked.
func (g *Guardian) OnLock(fn func()) {
	g.mu.Lock()
	g.onLock = append(g.onLock, fn)
	g.mu.Unlock()
}

// Start begins a session of the given length in minutes.
func (g *Guardian) Start(ctx context.Context, minutes int) (Status, error) {
	if minutes <= 0 {
		return g.Status(), ErrInvalidDuration
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current.IsLocked {
		return g.statusLocked(), ErrLocked
	}

	now := g.clock.Now().UTC()
	next := Data{StartedAt: &now, Duration: minutes}
	if err := g.persist(ctx, next); err != nil {
		return g.statusLocked(), err
	}

	g.logger.Info().Int("minutes", minutes).Time("started_at", now).Msg("Session started")
	return g.statusLocked(), nil
}

// Tick recomputes the remaining time and locks the session the first time
// it reaches zero. Further ticks while locked have no side effects.
func (g *Guardian) Tick(ctx context.Context) Status {
	g.mu.Lock()

	remaining := g.remainingLocked()
	if remaining == nil || *remaining > 0 || g.current.IsLocked {
		status := g.statusLocked()
		g.mu.Unlock()
		return status
	}

	next := g.current
	next.IsLocked = true
	if err := g.persist(ctx, next); err != nil {
		// Lock in memory even when the write fails.
		g.current = next
	}
	callbacks := append([]func(){}, g.onLock...)
	status := g.statusLocked()
	g.mu.Unlock()

	metrics.SessionLocks.Inc()
	g.logger.Info().Int("minutes", next.Duration).Msg("Session time used up, locking")
	for _, fn := range callbacks {
		fn()
	}
	return status
}

// Unlock clears the lock and the session start when pin matches the parent
// PIN. A wrong PIN leaves the record untouched.
func (g *Guardian) Unlock(ctx context.Context, pin string) (Status, error) {
	if pin != g.pins.ParentPIN() {
		metrics.UnlockAttempts.WithLabelValues("invalid").Inc()
		g.logger.Info().Msg("Unlock attempt with incorrect PIN")
		return g.Status(), ErrInvalidPIN
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.current
	next.IsLocked = false
	next.StartedAt = nil
	if err := g.persist(ctx, next); err != nil {
		return g.statusLocked(), err
	}

	metrics.UnlockAttempts.WithLabelValues("ok").Inc()
	g.logger.Info().Msg("Session unlocked")
	return g.statusLocked(), nil
}

// End drops the session record, leaving the guardian unconfigured. A locked
// session cannot be ended.
func (g *Guardian) End(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current.IsLocked {
		return g.statusLocked(), ErrLocked
	}

	if err := g.store.Delete(ctx, storage.KeySession); err != nil {
		g.logger.Error().Err(err).Msg("Failed to delete session")
		return g.statusLocked(), fmt.Errorf("delete session: %w", err)
	}
	g.current = Default()
	g.logger.Info().Msg("Session ended")
	return g.statusLocked(), nil
}

// Data returns a copy of the session record.
func (g *Guardian) Data() Data {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current.clone()
}

// Locked reports whether the session is currently locked.
func (g *Guardian) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current.IsLocked
}

// Status returns a snapshot without performing the lock check.
func (g *Guardian) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

// Remaining returns the time left, or nil when no budget applies.
func (g *Guardian) Remaining() *time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked()
}

func (g *Guardian) remainingLocked() *time.Duration {
	if g.current.StartedAt == nil || g.current.Duration <= 0 {
		return nil
	}
	end := g.current.StartedAt.Add(time.Duration(g.current.Duration) * time.Minute)
	remaining := end.Sub(g.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

func (g *Guardian) statusLocked() Status {
	data := g.current.clone()
	status := Status{
		StartedAt: data.StartedAt,
		Duration:  data.Duration,
		Remaining: g.remainingLocked(),
	}
	if status.Remaining != nil {
		ms := status.Remaining.Milliseconds()
		status.RemainingMs = &ms
	}

	switch {
	case data.IsLocked:
		status.State = StateLocked
	case status.Remaining != nil:
		status.State = StateActive
	default:
		status.State = StateUnconfigured
	}
	return status
}

// persist writes next and adopts it as current. Callers hold g.mu.
func (g *Guardian) persist(ctx context.Context, next Data) error {
	if err := storage.Save(ctx, g.store, storage.KeySession, next); err != nil {
		g.logger.Error().Err(err).Msg("Failed to persist session")
		return fmt.Errorf("persist session: %w", err)
	}
	g.current = next
	return nil
}

func (d Data) clone() Data {
	if d.StartedAt != nil {
		started := *d.StartedAt
		d.StartedAt = &started
	}
	return d
}
