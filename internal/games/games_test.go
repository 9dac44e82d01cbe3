package games

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/goodtune/brightboard/internal/engine"
	"github.com/goodtune/brightboard/internal/schedule"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(sched schedule.Scheduler) engine.Options {
	return engine.Options{
		Scheduler: sched,
		Rand:      rand.New(rand.NewPCG(42, 99)),
		Logger:    zerolog.Nop(),
	}
}

func TestByMode(t *testing.T) {
	assert.Len(t, ByMode(ModeAll), 15)

	little := ByMode(ModeLittle)
	for _, g := range little {
		assert.Contains(t, []Mode{ModeLittle, ModeAll}, g.Mode, g.ID)
	}
	assert.Len(t, little, 11)

	big := ByMode(ModeBig)
	assert.Len(t, big, 10)
}

func TestByID(t *testing.T) {
	g, err := ByID(SpellingBuilder)
	require.NoError(t, err)
	assert.Equal(t, Hard, g.Difficulty)

	_, err = ByID("space-race")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAll, m)

	_, err = ParseMode("teen")
	assert.Error(t, err)
}

func TestRegistry_EveryGameIsPlayable(t *testing.T) {
	r := NewRegistry()

	for _, g := range Catalog {
		_, err := r.Lookup(g.ID)
		require.NoError(t, err, g.ID)

		if !r.roundBased(g.ID) {
			_, err := r.NewPlay(g.ID, PlayOptions{}, testOptions(schedule.NewManual()))
			assert.ErrorIs(t, err, ErrNotRoundBased, g.ID)
			continue
		}

		play, err := r.NewPlay(g.ID, PlayOptions{Level: 2}, testOptions(schedule.NewManual()))
		require.NoError(t, err, g.ID)
		snap := play.Snapshot()
		assert.Equal(t, 1, snap.Round, g.ID)
		assert.NotNil(t, snap.Prompt, g.ID)
		_, err = json.Marshal(snap)
		assert.NoError(t, err, g.ID)
		play.Close()
	}
}

func TestRegistry_ComingSoon(t *testing.T) {
	r := NewRegistry()
	delete(r.builders, ColorMatch)

	_, err := r.Lookup(ColorMatch)
	assert.ErrorIs(t, err, ErrComingSoon)

	_, err = r.NewPlay("nope", PlayOptions{}, testOptions(nil))
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestRegistry_Score(t *testing.T) {
	r := NewRegistry()

	stars, err := r.Score(MemoryFlip, FreePlayResult{Pairs: 6, Moves: 7})
	require.NoError(t, err)
	assert.Equal(t, 3, stars)

	stars, err = r.Score(BugCatcher, FreePlayResult{Caught: 2, Target: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, stars)

	_, err = r.Score(ColorMatch, FreePlayResult{})
	assert.ErrorIs(t, err, ErrNotFreePlay)
}

func TestWeatherMatch_ExactSet(t *testing.T) {
	def := weatherMatch()
	r := WeatherRound{correct: []string{"A", "B", "C"}}

	assert.False(t, def.Evaluate(r, []string{"A", "B", "D"}))
	assert.False(t, def.Evaluate(r, []string{"A", "B"}))
	assert.False(t, def.Evaluate(r, []string{"A", "B", "C", "D"}))
	assert.True(t, def.Evaluate(r, []string{"C", "B", "A"}))
}

type cueLog []string

func (c *cueLog) PlayCue(name string) { *c = append(*c, name) }
func (c *cueLog) PlayStars(int)       {}

func TestWeatherMatch_PlaysAnswerCues(t *testing.T) {
	sched := schedule.NewManual()
	cues := &cueLog{}
	opts := testOptions(sched)
	opts.Cues = cues

	inst, err := engine.New(weatherMatch(), opts)
	require.NoError(t, err)
	defer inst.Close()

	_, err = inst.Submit(nil)
	require.NoError(t, err)
	sched.Advance(1500 * time.Millisecond)

	round := inst.Snapshot().Prompt.(WeatherRound)
	_, err = inst.Submit(round.correct)
	require.NoError(t, err)

	assert.Contains(t, *cues, "wrong")
	assert.Contains(t, *cues, "correct")
	assert.NotContains(t, *cues, engine.CueCorrect)
	assert.NotContains(t, *cues, engine.CueWrong)
}

func TestSortingFun_ExactSequence(t *testing.T) {
	def := sortingFun()
	r := SortRound{correct: []string{"🐜", "🐈", "🐘"}}

	assert.True(t, def.Evaluate(r, []string{"🐜", "🐈", "🐘"}))
	assert.False(t, def.Evaluate(r, []string{"🐈", "🐜", "🐘"}))
}

func TestCatalogGames_DoNotRepeatContent(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	def := patternPuzzle()
	var acc engine.Accumulator

	seen := map[string]bool{}
	for i := 1; i <= def.TotalRounds; i++ {
		acc.Round = i
		r := def.Generate(&acc, rng)
		key, _ := json.Marshal(r.Sequence)
		assert.False(t, seen[string(key)], "pattern %s repeated", key)
		seen[string(key)] = true
	}
}

func TestNearbyOptions(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for answer := 0; answer < 20; answer++ {
		opts := nearbyOptions(rng, answer, 1)
		assert.Len(t, opts, 4)
		assert.Contains(t, opts, answer)

		seen := map[int]bool{}
		for _, o := range opts {
			assert.False(t, seen[o], "duplicate option %d", o)
			seen[o] = true
			if o != answer {
				assert.GreaterOrEqual(t, o, 1)
			}
		}
	}
}

func TestMathBubbles_AlternatesOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	def := mathBubbles(1)
	var acc engine.Accumulator

	for i := 1; i <= def.TotalRounds; i++ {
		acc.Round = i
		r := def.Generate(&acc, rng)
		if i%2 == 1 {
			assert.Equal(t, "add", r.Operation)
			assert.Equal(t, r.A+r.B, r.answer)
		} else {
			assert.Equal(t, "subtract", r.Operation)
			assert.GreaterOrEqual(t, r.answer, 0)
		}
		assert.LessOrEqual(t, r.A, 10)
		assert.Contains(t, r.Options, r.answer)
	}
}

func TestSpellingBuilder_RetriesWrongWord(t *testing.T) {
	sched := schedule.NewManual()
	play, err := NewRegistry().NewPlay(SpellingBuilder, PlayOptions{}, testOptions(sched))
	require.NoError(t, err)
	defer play.Close()

	inst := play.(*engine.Instance[SpellingRound, string])
	word := inst.Snapshot().Prompt.(SpellingRound).word

	_, err = inst.Submit("ZZZ")
	require.NoError(t, err)
	sched.Advance(time.Second)
	assert.Equal(t, word, inst.Snapshot().Prompt.(SpellingRound).word)
	assert.Equal(t, 1, inst.Snapshot().Round)

	_, err = inst.Submit(word)
	require.NoError(t, err)
	sched.Advance(1500 * time.Millisecond)
	assert.Equal(t, 2, inst.Snapshot().Round)
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrComingSoon, ErrUnknownGame))
}
