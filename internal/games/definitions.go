package games

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/goodtune/brightboard/internal/engine"
)

const (
	shortDelay  = 1000 * time.Millisecond
	mediumDelay = 1200 * time.Millisecond
	longDelay   = 1500 * time.Millisecond
	storyDelay  = 2000 * time.Millisecond
)

// ColorRound asks the player to find Target among Options.
type ColorRound struct {
	Target  colorItem   `json:"target"`
	Options []colorItem `json:"options"`
}

func colorMatch() engine.Definition[ColorRound, string] {
	return engine.Definition[ColorRound, string]{
		ID:           ColorMatch,
		TotalRounds:  5,
		AdvanceDelay: shortDelay,
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) ColorRound {
			return ColorRound{
				Target:  colors[rng.IntN(len(colors))],
				Options: shuffled(rng, colors),
			}
		},
		Evaluate: func(r ColorRound, answer string) bool { return answer == r.Target.Name },
		Rating:   engine.MistakeRating,
	}
}

// ShapeRound shows eight shapes; tapping any copy of Target is correct.
type ShapeRound struct {
	Target  string   `json:"target"`
	Options []string `json:"options"`
}

func shapeTap() engine.Definition[ShapeRound, string] {
	return engine.Definition[ShapeRound, string]{
		ID:           ShapeTap,
		TotalRounds:  5,
		AdvanceDelay: shortDelay,
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) ShapeRound {
			target := shapes[rng.IntN(len(shapes))]
			options := []string{target, target}
			distractors := slices.DeleteFunc(slices.Clone(shapes), func(s string) bool { return s == target })
			for len(options) < 8 {
				options = append(options, distractors[rng.IntN(len(distractors))])
			}
			return ShapeRound{Target: target, Options: shuffled(rng, options)}
		},
		Evaluate: func(r ShapeRound, answer string) bool { return answer == r.Target },
		Rating:   engine.MistakeRating,
	}
}

// AnimalRound plays the target animal's cue; the player picks who made it.
type AnimalRound struct {
	Sound   string   `json:"sound"`
	Options []animal `json:"options"`
	target  animal
}

func animalSounds() engine.Definition[AnimalRound, string] {
	return engine.Definition[AnimalRound, string]{
		ID:           AnimalSounds,
		TotalRounds:  5,
		AdvanceDelay: longDelay,
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) AnimalRound {
			target := animals[rng.IntN(len(animals))]
			return AnimalRound{
				Sound:   target.Sound,
				Options: shuffled(rng, animals),
				target:  target,
			}
		},
		Evaluate: func(r AnimalRound, answer string) bool { return answer == r.target.Name },
		Rating:   engine.MistakeRating,
		RoundCue: func(r AnimalRound) string { return "animal:" + r.target.Name },
	}
}

// CountRound shows Count critters; the player picks the count.
type CountRound struct {
	Critter string `json:"critter"`
	Count   int    `json:"count"`
	Options []int  `json:"options"`
}

func countingCritters() engine.Definition[CountRound, int] {
	return engine.Definition[CountRound, int]{
		ID:           CountingCritters,
		TotalRounds:  5,
		AdvanceDelay: shortDelay,
		CorrectCue:   "correct",
		WrongCue:     "wrong",
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) CountRound {
			// Difficulty is tracked in tenths and climbs 0.3 a round.
			if acc.Round <= 1 {
				acc.Difficulty = 10
			} else {
				acc.Difficulty = min(30, acc.Difficulty+3)
			}
			maxCount := 5
			switch acc.Difficulty / 10 {
			case 2:
				maxCount = 10
			case 3:
				maxCount = 15
			}
			count := rng.IntN(maxCount) + 1
			return CountRound{
				Critter: critters[rng.IntN(len(critters))],
				Count:   count,
				Options: nearbyOptions(rng, count, 1),
			}
		},
		Evaluate: func(r CountRound, answer int) bool { return answer == r.Count },
		Rating:   engine.ProportionalRating,
	}
}

// ShadowRound shows Target's silhouette among four Options.
type ShadowRound struct {
	Target  shadowItem   `json:"target"`
	Options []shadowItem `json:"options"`
}

func shadowMatch() engine.Definition[ShadowRound, string] {
	return engine.Definition[ShadowRound, string]{
		ID:           ShadowMatch,
		TotalRounds:  6,
		AdvanceDelay: mediumDelay,
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) ShadowRound {
			options := shuffled(rng, shadowItems)[:4]
			return ShadowRound{Target: options[rng.IntN(len(options))], Options: options}
		},
		Evaluate: func(r ShadowRound, answer string) bool { return answer == r.Target.Emoji },
		Rating:   engine.ProportionalRating,
	}
}

// PatternRound asks for the item that continues Sequence.
type PatternRound struct {
	Sequence []string `json:"sequence"`
	Options  []string `json:"options"`
	answer   string
}

func patternPuzzle() engine.Definition[PatternRound, string] {
	return engine.Definition[PatternRound, string]{
		ID:           PatternPuzzle,
		TotalRounds:  5,
		AdvanceDelay: mediumDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) PatternRound {
			p := patterns[acc.Draw(rng, len(patterns))]
			return PatternRound{Sequence: p.sequence, Options: p.options, answer: p.answer}
		},
		Evaluate: func(r PatternRound, answer string) bool { return answer == r.answer },
		Rating:   engine.ProportionalRating,
	}
}

// SortRound asks for Items in the order Instruction describes.
type SortRound struct {
	Instruction string   `json:"instruction"`
	Items       []string `json:"items"`
	correct     []string
}

func sortingFun() engine.Definition[SortRound, []string] {
	return engine.Definition[SortRound, []string]{
		ID:           SortingFun,
		TotalRounds:  5,
		AdvanceDelay: longDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) SortRound {
			c := sortingChallenges[acc.Draw(rng, len(sortingChallenges))]
			return SortRound{Instruction: c.instruction, Items: shuffled(rng, c.correct), correct: c.correct}
		},
		Evaluate: func(r SortRound, answer []string) bool { return engine.ExactSequence(r.correct, answer) },
		Rating:   engine.ProportionalRating,
	}
}

// WeatherRound asks for exactly the three items that suit the weather.
type WeatherRound struct {
	Weather string   `json:"weather"`
	Name    string   `json:"name"`
	Items   []string `json:"items"`
	correct []string
}

func weatherMatch() engine.Definition[WeatherRound, []string] {
	return engine.Definition[WeatherRound, []string]{
		ID:           WeatherMatch,
		TotalRounds:  5,
		AdvanceDelay: longDelay,
		CorrectCue:   "correct",
		WrongCue:     "wrong",
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) WeatherRound {
			w := weatherData[rng.IntN(len(weatherData))]
			items := append(slices.Clone(w.items), w.wrong[:3]...)
			return WeatherRound{Weather: w.emoji, Name: w.name, Items: shuffled(rng, items), correct: w.items}
		},
		Evaluate: func(r WeatherRound, answer []string) bool { return engine.ExactSet(r.correct, answer) },
		Rating:   engine.ProportionalRating,
	}
}

// HabitatRound asks where Animal lives.
type HabitatRound struct {
	Animal   string    `json:"animal"`
	Habitats []habitat `json:"habitats"`
	correct  string
}

func animalHabitat() engine.Definition[HabitatRound, string] {
	return engine.Definition[HabitatRound, string]{
		ID:           AnimalHabitat,
		TotalRounds:  6,
		AdvanceDelay: mediumDelay,
		Generate: func(_ *engine.Accumulator, rng *rand.Rand) HabitatRound {
			h := habitats[rng.IntN(len(habitats))]
			return HabitatRound{
				Animal:   h.animals[rng.IntN(len(h.animals))],
				Habitats: habitats,
				correct:  h.Name,
			}
		},
		Evaluate: func(r HabitatRound, answer string) bool { return answer == r.correct },
		Rating:   engine.ProportionalRating,
	}
}

// StoryRound asks for the scenes of a story in order. Answers are the
// scene texts.
type StoryRound struct {
	Title  string  `json:"title"`
	Scenes []scene `json:"scenes"`
	order  []string
}

func storyBuilder() engine.Definition[StoryRound, []string] {
	return engine.Definition[StoryRound, []string]{
		ID:           StoryBuilder,
		TotalRounds:  4,
		AdvanceDelay: storyDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) StoryRound {
			s := stories[acc.Draw(rng, len(stories))]
			order := make([]string, len(s.scenes))
			for i, sc := range s.scenes {
				order[i] = sc.Text
			}
			return StoryRound{Title: s.title, Scenes: shuffled(rng, s.scenes), order: order}
		},
		Evaluate: func(r StoryRound, answer []string) bool { return engine.ExactSequence(r.order, answer) },
		Rating:   engine.ProportionalRating,
	}
}

// NumberLineRound hides one number of an arithmetic run. Missing numbers
// are null.
type NumberLineRound struct {
	Numbers []*int `json:"numbers"`
	Options []int  `json:"options"`
	answer  int
}

func numberLine() engine.Definition[NumberLineRound, int] {
	return engine.Definition[NumberLineRound, int]{
		ID:           NumberLine,
		TotalRounds:  6,
		AdvanceDelay: mediumDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) NumberLineRound {
			level := 1
			if acc.Round >= 4 {
				level = 2
			}
			acc.Difficulty = level

			start, step, length := rng.IntN(5), 1, 5
			if level > 1 {
				start, length = rng.IntN(10), 6
				if rng.IntN(2) == 1 {
					step = 2
				}
			}

			missing := rng.IntN(length-2) + 1
			numbers := make([]*int, length)
			answer := 0
			for i := range numbers {
				n := start + i*step
				if i == missing {
					answer = n
					continue
				}
				numbers[i] = &n
			}
			return NumberLineRound{Numbers: numbers, Options: nearbyOptions(rng, answer, 0), answer: answer}
		},
		Evaluate: func(r NumberLineRound, answer int) bool { return answer == r.answer },
		Rating:   engine.ProportionalRating,
	}
}

// MathRound is an addition or subtraction problem with four answer bubbles.
type MathRound struct {
	A         int    `json:"a"`
	B         int    `json:"b"`
	Operation string `json:"operation"`
	Options   []int  `json:"options"`
	answer    int
}

func mathBubbles(level int) engine.Definition[MathRound, int] {
	maxNum := 10
	if level >= 2 {
		maxNum = 20
	}
	return engine.Definition[MathRound, int]{
		ID:           MathBubbles,
		TotalRounds:  8,
		AdvanceDelay: mediumDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) MathRound {
			acc.Difficulty = level
			a, b := rng.IntN(maxNum)+1, rng.IntN(maxNum)+1
			r := MathRound{Operation: "add"}
			if acc.Round%2 == 0 {
				r.Operation = "subtract"
				if a < b {
					a, b = b, a
				}
				r.answer = a - b
			} else {
				r.answer = a + b
			}
			r.A, r.B = a, b

			options := []int{r.answer}
			for len(options) < 4 {
				offset := rng.IntN(5) + 1
				if rng.IntN(2) == 0 {
					offset = -offset
				}
				wrong := r.answer + offset
				if wrong >= 0 && !slices.Contains(options, wrong) {
					options = append(options, wrong)
				}
			}
			r.Options = shuffled(rng, options)
			return r
		},
		Evaluate: func(r MathRound, answer int) bool { return answer == r.answer },
		Rating:   engine.AccuracyRating,
	}
}

// SpellingRound asks the player to build a word from Letters. A wrong
// spelling retries the same word.
type SpellingRound struct {
	Emoji   string   `json:"emoji"`
	Hint    string   `json:"hint"`
	Length  int      `json:"length"`
	Letters []string `json:"letters"`
	word    string
}

func spellingBuilder() engine.Definition[SpellingRound, string] {
	return engine.Definition[SpellingRound, string]{
		ID:           SpellingBuilder,
		TotalRounds:  5,
		AdvanceDelay: longDelay,
		RetryOnWrong: true,
		RetryDelay:   shortDelay,
		Generate: func(acc *engine.Accumulator, rng *rand.Rand) SpellingRound {
			w := words[acc.Draw(rng, len(words))]
			letters := strings.Split(w.word, "")
			var extras []string
			for c := 'A'; c <= 'Z'; c++ {
				if !strings.ContainsRune(w.word, c) {
					extras = append(extras, string(c))
				}
			}
			letters = append(letters, shuffled(rng, extras[:4])[:2]...)
			return SpellingRound{
				Emoji:   w.emoji,
				Hint:    w.hint,
				Length:  len(w.word),
				Letters: shuffled(rng, letters),
				word:    w.word,
			}
		},
		Evaluate: func(r SpellingRound, answer string) bool { return strings.EqualFold(answer, r.word) },
		Rating:   engine.SpellingRating,
	}
}

// nearbyOptions returns answer plus three distinct wrong values within a
// few of it, none below floor, in random order.
func nearbyOptions(rng *rand.Rand, answer, floor int) []int {
	options := []int{answer}
	for spread := 2; len(options) < 4; spread++ {
		for tries := 0; tries < 16 && len(options) < 4; tries++ {
			wrong := answer + rng.IntN(2*spread+1) - spread
			if wrong >= floor && !slices.Contains(options, wrong) {
				options = append(options, wrong)
			}
		}
	}
	return shuffled(rng, options)
}

func shuffled[T any](rng *rand.Rand, in []T) []T {
	out := slices.Clone(in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
