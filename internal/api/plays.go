package api

import (
	"fmt"

	"github.com/goodtune/brightboard/internal/engine"
	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// playTable holds active plays. The least recently used play is closed when
// the table is full.
type playTable struct {
	cache *lru.Cache[string, engine.Play]
}

func newPlayTable(size int, logger zerolog.Logger) (*playTable, error) {
	cache, err := lru.NewWithEvict[string, engine.Play](size, func(id string, p engine.Play) {
		p.Close()
		metrics.ActivePlays.Dec()
		logger.Debug().Str("play_id", id).Str("game", p.GameID()).Msg("Play closed")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create play table: %w", err)
	}
	return &playTable{cache: cache}, nil
}

func (t *playTable) add(p engine.Play) string {
	id := uuid.NewString()
	t.cache.Add(id, p)
	metrics.ActivePlays.Inc()
	return id
}

func (t *playTable) get(id string) (engine.Play, bool) {
	return t.cache.Get(id)
}

func (t *playTable) remove(id string) bool {
	return t.cache.Remove(id)
}

func (t *playTable) len() int {
	return t.cache.Len()
}

func (t *playTable) closeAll() int {
	n := t.cache.Len()
	t.cache.Purge()
	return n
}
