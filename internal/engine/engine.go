// Package engine is the round and scoring state machine shared by every
// round-based game.
//
// A game supplies a Definition: how to generate a round, how to judge an
// answer, how many rounds to play and how to turn the result into stars.
// An Instance runs one play of that definition. After each answer the
// instance rejects input until a scheduled advance moves it to the next
// round, and reports the final star count exactly once per completion.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/goodtune/brightboard/internal/schedule"
	"github.com/rs/zerolog"
)

var (
	// ErrAwaitingAdvance is returned for answers submitted while a round is resolving.
	ErrAwaitingAdvance = errors.New("engine: round is resolving")
	// ErrGameComplete is returned for answers submitted after the last round.
	ErrGameComplete = errors.New("engine: game is complete")
	// ErrClosed is returned once the instance has been torn down.
	ErrClosed = errors.New("engine: play is closed")
	// ErrBadAnswer is returned when an answer cannot be decoded.
	ErrBadAnswer = errors.New("engine: malformed answer")
)

// DefaultAdvanceDelay is how long a resolved round stays on screen.
const DefaultAdvanceDelay = time.Second

// Default cue names played on resolution.
const (
	CueCorrect = "success"
	CueWrong   = "error"
)

// Definition describes one round-based game.
type Definition[R, A any] struct {
	ID           string
	TotalRounds  int
	AdvanceDelay time.Duration

	// Generate builds the next round. It may only carry state between
	// rounds through acc.
	Generate func(acc *Accumulator, rng *rand.Rand) R
	// Evaluate judges answer against round without side effects.
	Evaluate func(round R, answer A) bool
	Rating   Rating

	// View returns what the player sees of a round. Defaults to the round itself.
	View func(round R) any
	// RoundCue names a cue to play when a round starts, if any.
	RoundCue func(round R) string

	CorrectCue string
	WrongCue   string

	// RetryOnWrong keeps the player on the same round after a wrong answer.
	// The round reopens after RetryDelay instead of advancing.
	RetryOnWrong bool
	RetryDelay   time.Duration
}

func (d *Definition[R, A]) validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("engine: definition has no id")
	case d.TotalRounds <= 0:
		return fmt.Errorf("engine: %s: total rounds must be positive", d.ID)
	case d.Generate == nil:
		return fmt.Errorf("engine: %s: no round generator", d.ID)
	case d.Evaluate == nil:
		return fmt.Errorf("engine: %s: no answer evaluator", d.ID)
	case d.Rating == nil:
		return fmt.Errorf("engine: %s: no star rating", d.ID)
	}
	return nil
}

// CuePlayer plays named sound cues. Implementations must not block or panic.
type CuePlayer interface {
	PlayCue(name string)
	PlayStars(count int)
}

// Reporter receives the star count of each completed play.
type Reporter interface {
	ReportCompletion(ctx context.Context, gameID string, stars int) error
}

// Options are the collaborators of an Instance.
type Options struct {
	Scheduler schedule.Scheduler
	Cues      CuePlayer
	Reporter  Reporter
	Rand      *rand.Rand
	Logger    zerolog.Logger

	// AdvanceDelay applies to definitions that set none.
	AdvanceDelay time.Duration
}

// Phase is the coarse instance state.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseResolving  Phase = "resolving"
	PhaseComplete   Phase = "complete"
)

// Snapshot is a read-only view of an instance.
type Snapshot struct {
	GameID      string `json:"gameId"`
	Phase       Phase  `json:"phase"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	Score       int    `json:"score"`
	Mistakes    int    `json:"mistakes"`
	Hints       int    `json:"hints"`
	Prompt      any    `json:"prompt,omitempty"`
	LastCorrect *bool  `json:"lastCorrect,omitempty"`
	Stars       *int   `json:"stars,omitempty"`
}

// Play is the type-erased surface of an Instance.
type Play interface {
	GameID() string
	Snapshot() Snapshot
	SubmitJSON(ctx context.Context, answer json.RawMessage) (Snapshot, error)
	Hint() Snapshot
	PlayAgain() Snapshot
	Close()
}

// Instance is one play of a Definition.
type Instance[R, A any] struct {
	def      Definition[R, A]
	cues     CuePlayer
	reporter Reporter
	tasks    *schedule.Group
	logger   zerolog.Logger

	mu          sync.Mutex
	rng         *rand.Rand
	acc         Accumulator
	round       R
	roundIndex  int
	score       int
	mistakes    int
	hints       int
	awaiting    bool
	complete    bool
	reported    bool
	closed      bool
	stars       int
	lastCorrect *bool
	generation  uint64
}

// New starts a play of def at round 1.
func New[R, A any](def Definition[R, A], opts Options) (*Instance[R, A], error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	if def.AdvanceDelay <= 0 {
		def.AdvanceDelay = opts.AdvanceDelay
	}
	if def.AdvanceDelay <= 0 {
		def.AdvanceDelay = DefaultAdvanceDelay
	}
	if def.RetryDelay <= 0 {
		def.RetryDelay = def.AdvanceDelay
	}
	if def.CorrectCue == "" {
		def.CorrectCue = CueCorrect
	}
	if def.WrongCue == "" {
		def.WrongCue = CueWrong
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cues := opts.Cues
	if cues == nil {
		cues = silent{}
	}

	inst := &Instance[R, A]{
		def:      def,
		cues:     cues,
		reporter: opts.Reporter,
		tasks:    schedule.NewGroup(opts.Scheduler),
		logger:   opts.Logger.With().Str("component", "engine").Str("game", def.ID).Logger(),
		rng:      rng,
	}

	inst.mu.Lock()
	cue := inst.startLocked()
	inst.mu.Unlock()
	inst.playCue(cue)

	return inst, nil
}

// GameID returns the definition id.
func (i *Instance[R, A]) GameID() string {
	return i.def.ID
}

// Submit judges answer for the current round. At most one answer is scored
// per round; later answers get ErrAwaitingAdvance until the round advances.
func (i *Instance[R, A]) Submit(answer A) (Snapshot, error) {
	i.mu.Lock()

	switch {
	case i.closed:
		snap := i.snapshotLocked()
		i.mu.Unlock()
		return snap, ErrClosed
	case i.complete:
		snap := i.snapshotLocked()
		i.mu.Unlock()
		metrics.RoundsRejected.WithLabelValues(i.def.ID).Inc()
		return snap, ErrGameComplete
	case i.awaiting:
		snap := i.snapshotLocked()
		i.mu.Unlock()
		metrics.RoundsRejected.WithLabelValues(i.def.ID).Inc()
		return snap, ErrAwaitingAdvance
	}

	correct := i.def.Evaluate(i.round, answer)
	if correct {
		i.score++
	} else {
		i.mistakes++
	}
	i.lastCorrect = &correct
	i.awaiting = true

	gen := i.generation
	delay := i.def.AdvanceDelay
	if !correct && i.def.RetryOnWrong {
		delay = i.def.RetryDelay
	}
	i.tasks.After(delay, func() {
		i.advance(gen)
	})

	snap := i.snapshotLocked()
	i.mu.Unlock()

	result, cue := "wrong", i.def.WrongCue
	if correct {
		result, cue = "correct", i.def.CorrectCue
	}
	metrics.RoundsAnswered.WithLabelValues(i.def.ID, result).Inc()
	i.playCue(cue)

	i.logger.Debug().
		Int("round", snap.Round).
		Bool("correct", correct).
		Int("score", snap.Score).
		Int("mistakes", snap.Mistakes).
		Msg("Round resolved")

	return snap, nil
}

// SubmitJSON decodes answer and submits it.
func (i *Instance[R, A]) SubmitJSON(_ context.Context, answer json.RawMessage) (Snapshot, error) {
	var a A
	if err := json.Unmarshal(answer, &a); err != nil {
		return i.Snapshot(), fmt.Errorf("%w: %v", ErrBadAnswer, err)
	}
	return i.Submit(a)
}

// Hint records that the player asked for help on the current round.
func (i *Instance[R, A]) Hint() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.closed && !i.complete && !i.awaiting {
		i.hints++
	}
	return i.snapshotLocked()
}

// PlayAgain discards the current play, cancelling any pending advance, and
// starts over at round 1 with a fresh round.
func (i *Instance[R, A]) PlayAgain() Snapshot {
	i.tasks.CancelAll()

	i.mu.Lock()
	if i.closed {
		snap := i.snapshotLocked()
		i.mu.Unlock()
		return snap
	}
	cue := i.startLocked()
	snap := i.snapshotLocked()
	i.mu.Unlock()

	i.playCue(cue)
	i.logger.Debug().Msg("Play restarted")
	return snap
}

// Close tears the instance down. Pending advances never fire afterwards.
func (i *Instance[R, A]) Close() {
	i.mu.Lock()
	i.closed = true
	i.generation++
	i.mu.Unlock()

	if n := i.tasks.CancelAll(); n > 0 {
		i.logger.Debug().Int("cancelled", n).Msg("Cancelled pending advance")
	}
}

// Snapshot returns the current state.
func (i *Instance[R, A]) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snapshotLocked()
}

func (i *Instance[R, A]) advance(gen uint64) {
	i.mu.Lock()
	if gen != i.generation || i.closed || !i.awaiting {
		i.mu.Unlock()
		return
	}
	i.awaiting = false

	if i.def.RetryOnWrong && i.lastCorrect != nil && !*i.lastCorrect {
		i.lastCorrect = nil
		i.mu.Unlock()
		return
	}

	if i.roundIndex >= i.def.TotalRounds {
		i.complete = true
		i.stars = clamp(i.def.Rating(i.resultLocked()))
		report := !i.reported
		i.reported = true
		stars := i.stars
		i.mu.Unlock()

		if report {
			i.finish(stars)
		}
		return
	}

	i.roundIndex++
	i.acc.Round = i.roundIndex
	i.round = i.def.Generate(&i.acc, i.rng)
	i.lastCorrect = nil
	cue := i.roundCueLocked()
	i.mu.Unlock()

	i.playCue(cue)
}

func (i *Instance[R, A]) finish(stars int) {
	i.cues.PlayStars(stars)

	i.logger.Info().Int("stars", stars).Msg("Game complete")

	if i.reporter == nil {
		return
	}
	if err := i.reporter.ReportCompletion(context.Background(), i.def.ID, stars); err != nil {
		i.logger.Error().Err(err).Int("stars", stars).Msg("Failed to record completion")
	}
}

// startLocked resets counters and generates round 1. It returns the round cue.
func (i *Instance[R, A]) startLocked() string {
	i.generation++
	i.acc.reset()
	i.roundIndex = 1
	i.acc.Round = 1
	i.score = 0
	i.mistakes = 0
	i.hints = 0
	i.awaiting = false
	i.complete = false
	i.reported = false
	i.stars = 0
	i.lastCorrect = nil
	i.round = i.def.Generate(&i.acc, i.rng)
	return i.roundCueLocked()
}

func (i *Instance[R, A]) roundCueLocked() string {
	if i.def.RoundCue == nil {
		return ""
	}
	return i.def.RoundCue(i.round)
}

func (i *Instance[R, A]) resultLocked() Result {
	return Result{
		Score:       i.score,
		Mistakes:    i.mistakes,
		TotalRounds: i.def.TotalRounds,
		Hints:       i.hints,
	}
}

func (i *Instance[R, A]) snapshotLocked() Snapshot {
	snap := Snapshot{
		GameID:      i.def.ID,
		Phase:       PhaseInProgress,
		Round:       i.roundIndex,
		TotalRounds: i.def.TotalRounds,
		Score:       i.score,
		Mistakes:    i.mistakes,
		Hints:       i.hints,
		LastCorrect: i.lastCorrect,
	}
	switch {
	case i.complete:
		snap.Phase = PhaseComplete
		stars := i.stars
		snap.Stars = &stars
	case i.awaiting:
		snap.Phase = PhaseResolving
	}
	if !i.complete {
		if i.def.View != nil {
			snap.Prompt = i.def.View(i.round)
		} else {
			snap.Prompt = i.round
		}
	}
	return snap
}

func (i *Instance[R, A]) playCue(name string) {
	if name == "" {
		return
	}
	i.cues.PlayCue(name)
}

type silent struct{}

func (silent) PlayCue(string) {}
func (silent) PlayStars(int)  {}
