package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodtune/brightboard/internal/schedule"
	"github.com/rs/zerolog"
)

// PINLength is the number of digits in a parent PIN.
const PINLength = 4

// DefaultConfirmDelay is how long a full PIN stays on screen before it is checked.
const DefaultConfirmDelay = 300 * time.Millisecond

// ErrInvalidDigit is returned for keypad input other than 0-9.
var ErrInvalidDigit = errors.New("session: keypad accepts digits 0-9 only")

// PadState is what the lock screen renders.
type PadState struct {
	Entered  int  `json:"entered"`
	Pending  bool `json:"pending"`
	Error    bool `json:"error"`
	Unlocked bool `json:"unlocked"`
}

// PinPad accumulates keypad digits and checks a complete PIN after a short
// display delay. The delay is cosmetic; attempts are never rate limited.
type PinPad struct {
	guardian *Guardian
	tasks    *schedule.Group
	delay    time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	digits   []byte
	pending  bool
	failed   bool
	unlocked bool
}

// NewPinPad creates a keypad bound to guardian.
func NewPinPad(guardian *Guardian, scheduler schedule.Scheduler, delay time.Duration, logger zerolog.Logger) *PinPad {
	if delay < 0 {
		delay = DefaultConfirmDelay
	}
	return &PinPad{
		guardian: guardian,
		tasks:    schedule.NewGroup(scheduler),
		delay:    delay,
		logger:   logger.With().Str("component", "pinpad").Logger(),
	}
}

// Press appends digit. The fourth digit schedules the unlock attempt; input
// is ignored until that attempt has run.
func (p *PinPad) Press(ctx context.Context, digit string) (PadState, error) {
	if len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
		return p.State(), ErrInvalidDigit
	}
	if !p.guardian.Locked() {
		return p.State(), ErrNotLocked
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending || len(p.digits) >= PINLength {
		return p.stateLocked(), nil
	}

	p.digits = append(p.digits, digit[0])
	p.failed = false
	p.unlocked = false

	if len(p.digits) == PINLength {
		pin := string(p.digits)
		p.pending = true
		confirmCtx := context.WithoutCancel(ctx)
		p.tasks.After(p.delay, func() {
			p.confirm(confirmCtx, pin)
		})
	}
	return p.stateLocked(), nil
}

// Backspace removes the last digit unless a check is pending.
func (p *PinPad) Backspace() PadState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.pending && len(p.digits) > 0 {
		p.digits = p.digits[:len(p.digits)-1]
	}
	return p.stateLocked()
}

// State returns the current keypad state.
func (p *PinPad) State() PadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// Close cancels a pending check and clears the entered digits.
func (p *PinPad) Close() {
	p.tasks.CancelAll()

	p.mu.Lock()
	p.digits = nil
	p.pending = false
	p.mu.Unlock()
}

func (p *PinPad) confirm(ctx context.Context, pin string) {
	_, err := p.guardian.Unlock(ctx, pin)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.digits = nil
	p.pending = false
	p.failed = err != nil
	p.unlocked = err == nil

	if err != nil && !errors.Is(err, ErrInvalidPIN) {
		p.logger.Error().Err(err).Msg("Unlock failed")
	}
}

func (p *PinPad) stateLocked() PadState {
	return PadState{
		Entered:  len(p.digits),
		Pending:  p.pending,
		Error:    p.failed,
		Unlocked: p.unlocked,
	}
}
