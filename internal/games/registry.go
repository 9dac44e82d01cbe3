package games

import (
	"fmt"

	"github.com/goodtune/brightboard/internal/engine"
)

// PlayOptions tune a new play. Level only affects games with selectable
// levels; zero means the easiest.
type PlayOptions struct {
	Level int `json:"level"`
}

type builder func(opts PlayOptions, eo engine.Options) (engine.Play, error)

func round[R, A any](def func(PlayOptions) engine.Definition[R, A]) builder {
	return func(opts PlayOptions, eo engine.Options) (engine.Play, error) {
		inst, err := engine.New(def(opts), eo)
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func fixed[R, A any](def func() engine.Definition[R, A]) builder {
	return round(func(PlayOptions) engine.Definition[R, A] { return def() })
}

// Scorer rates a game that reports one result instead of playing rounds.
type Scorer func(FreePlayResult) int

// FreePlayResult is the outcome of a game that is not round-based.
type FreePlayResult struct {
	Pairs  int `json:"pairs,omitempty"`
	Moves  int `json:"moves,omitempty"`
	Caught int `json:"caught,omitempty"`
	Target int `json:"target,omitempty"`
}

// Registry maps catalog entries to their implementations.
type Registry struct {
	games    []Game
	builders map[string]builder
	scorers  map[string]Scorer
}

// NewRegistry returns the registry for the full catalog.
func NewRegistry() *Registry {
	return &Registry{
		games: Catalog,
		builders: map[string]builder{
			ColorMatch:       fixed(colorMatch),
			ShapeTap:         fixed(shapeTap),
			AnimalSounds:     fixed(animalSounds),
			CountingCritters: fixed(countingCritters),
			ShadowMatch:      fixed(shadowMatch),
			PatternPuzzle:    fixed(patternPuzzle),
			SortingFun:       fixed(sortingFun),
			WeatherMatch:     fixed(weatherMatch),
			AnimalHabitat:    fixed(animalHabitat),
			StoryBuilder:     fixed(storyBuilder),
			NumberLine:       fixed(numberLine),
			MathBubbles: round(func(o PlayOptions) engine.Definition[MathRound, int] {
				return mathBubbles(o.Level)
			}),
			SpellingBuilder: fixed(spellingBuilder),
		},
		scorers: map[string]Scorer{
			MemoryFlip: func(r FreePlayResult) int { return engine.MemoryRating(r.Pairs, r.Moves) },
			BugCatcher: func(r FreePlayResult) int { return engine.CatchRating(r.Caught, r.Target) },
		},
	}
}

// Games lists the games for mode.
func (r *Registry) Games(mode Mode) []Game {
	return ByMode(mode)
}

// Lookup returns the catalog entry for id, or ErrComingSoon when the entry
// has no implementation.
func (r *Registry) Lookup(id string) (Game, error) {
	g, err := ByID(id)
	if err != nil {
		return Game{}, err
	}
	isRound := r.roundBased(id)
	_, isFree := r.scorers[id]
	if !isRound && !isFree {
		return g, fmt.Errorf("%w: %s", ErrComingSoon, id)
	}
	return g, nil
}

// roundBased reports whether id is played through the engine.
func (r *Registry) roundBased(id string) bool {
	_, ok := r.builders[id]
	return ok
}

// NewPlay starts a round-based play of id.
func (r *Registry) NewPlay(id string, opts PlayOptions, eo engine.Options) (engine.Play, error) {
	if _, err := r.Lookup(id); err != nil {
		return nil, err
	}
	build, ok := r.builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRoundBased, id)
	}
	return build(opts, eo)
}

// Score rates a single free-play result for id.
func (r *Registry) Score(id string, result FreePlayResult) (int, error) {
	if _, err := r.Lookup(id); err != nil {
		return 0, err
	}
	score, ok := r.scorers[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFreePlay, id)
	}
	return score(result), nil
}
