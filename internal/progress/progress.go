// Package progress records completed games and the star totals derived from them.
package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goodtune/brightboard/internal/clock"
	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/goodtune/brightboard/internal/storage"
	"github.com/rs/zerolog"
)

// MaxStars is the highest rating a single completion can earn.
const MaxStars = 3

// GameProgress is the per-game record.
type GameProgress struct {
	BestScore      int        `json:"bestScore"`
	CompletedCount int        `json:"completedCount"`
	LastPlayedAt   *time.Time `json:"lastPlayedAt"`
	TotalStars     int        `json:"totalStars"`
}

// Data is the persisted progress record. TotalStars always equals the sum
// of every game's TotalStars.
type Data struct {
	TotalStars int                      `json:"totalStars"`
	Games      map[string]*GameProgress `json:"games"`
}

// Empty returns the zero-valued progress record.
func Empty() Data {
	return Data{Games: make(map[string]*GameProgress)}
}

// Ledger is the only writer of the progress record.
type Ledger struct {
	store  storage.Store
	clock  clock.Clock
	logger zerolog.Logger

	mu sync.Mutex
}

// NewLedger creates a ledger over store.
func NewLedger(store storage.Store, clk clock.Clock, logger zerolog.Logger) *Ledger {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Ledger{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "progress").Logger(),
	}
}

// Progress returns the current record, reconciling the aggregate if the
// stored copy disagrees with its per-game records.
func (l *Ledger) Progress(ctx context.Context) Data {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Game returns the record for gameID, or nil if it was never completed.
func (l *Ledger) Game(ctx context.Context, gameID string) *GameProgress {
	data := l.Progress(ctx)
	return data.Games[gameID]
}

// RecordCompletion adds stars to gameID and to the aggregate in a single
// record write.
func (l *Ledger) RecordCompletion(ctx context.Context, gameID string, stars int, completed bool) (Data, error) {
	if stars < 0 {
		stars = 0
	}
	if stars > MaxStars {
		stars = MaxStars
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load(ctx)
	game, ok := data.Games[gameID]
	if !ok {
		game = &GameProgress{}
		data.Games[gameID] = game
	}

	now := l.clock.Now().UTC()
	game.TotalStars += stars
	game.LastPlayedAt = &now
	if stars > game.BestScore {
		game.BestScore = stars
	}
	if completed {
		game.CompletedCount++
	}
	data.TotalStars += stars

	if err := storage.Save(ctx, l.store, storage.KeyProgress, data); err != nil {
		l.logger.Error().Err(err).Str("game", gameID).Msg("Failed to persist progress")
		return data, fmt.Errorf("record completion: %w", err)
	}

	if completed {
		metrics.GamesCompleted.WithLabelValues(gameID).Inc()
		metrics.StarsAwarded.WithLabelValues(gameID).Observe(float64(stars))
	}

	l.logger.Info().
		Str("game", gameID).
		Int("stars", stars).
		Int("game_total", game.TotalStars).
		Int("total_stars", data.TotalStars).
		Msg("Completion recorded")

	return data, nil
}

// ReportCompletion records a finished play of gameID.
func (l *Ledger) ReportCompletion(ctx context.Context, gameID string, stars int) error {
	_, err := l.RecordCompletion(ctx, gameID, stars, true)
	return err
}

// ResetAll replaces the progress record with its empty default.
func (l *Ledger) ResetAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := storage.Save(ctx, l.store, storage.KeyProgress, Empty()); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	l.logger.Info().Msg("Progress reset")
	return nil
}

func (l *Ledger) load(ctx context.Context) Data {
	data := storage.Load(ctx, l.store, storage.KeyProgress, Empty(), l.logger)
	if data.Games == nil {
		data.Games = make(map[string]*GameProgress)
	}

	for id, game := range data.Games {
		if game == nil {
			delete(data.Games, id)
		}
	}
	if sum := data.Sum(); sum != data.TotalStars {
		l.logger.Warn().
			Int("stored_total", data.TotalStars).
			Int("sum", sum).
			Msg("Star total disagrees with game records, using sum")
		data.TotalStars = sum
	}
	return data
}

// Sum returns the total of every game's stars.
func (d Data) Sum() int {
	sum := 0
	for _, game := range d.Games {
		sum += game.TotalStars
	}
	return sum
}
