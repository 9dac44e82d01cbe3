package focus

import (
	"strconv"
	"sync"

	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/rs/zerolog"
)

// Navigator answers directional key presses for one scope at a time. It is
// only active in TV mode.
type Navigator struct {
	logger zerolog.Logger

	mu      sync.Mutex
	enabled bool
	focused string
}

// NewNavigator creates a disabled navigator.
func NewNavigator(logger zerolog.Logger) *Navigator {
	return &Navigator{
		logger: logger.With().Str("component", "focus").Logger(),
	}
}

// SetEnabled turns directional navigation on or off.
func (n *Navigator) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.enabled = enabled
	n.mu.Unlock()
}

// Handle indexes elements within scope and applies key starting from the
// element the caller reports as focused. An empty or unknown focused id
// means nothing has focus, so an arrow key lands on the first element.
// It reports whether the key was consumed; Enter, Space and every other
// key are left to the platform.
func (n *Navigator) Handle(scope Rect, elements []Element, focused, key string) (string, bool) {
	ix := NewIndex(scope, elements)

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := ix.byID[focused]; !ok {
		focused = ""
	}
	n.focused = focused

	dir, ok := KeyDirection(key)
	if !ok || !n.enabled {
		return n.focused, false
	}

	next, moved := ix.Next(n.focused, dir)
	metrics.FocusMoves.WithLabelValues(string(dir), strconv.FormatBool(moved && next != n.focused)).Inc()
	if moved {
		n.focused = next
	}
	n.logger.Debug().
		Int("elements", ix.Len()).
		Str("key", key).
		Str("focus", n.focused).
		Msg("Focus moved")
	return n.focused, true
}

// Focused returns the element focused by the last handled key.
func (n *Navigator) Focused() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.focused
}
