// Package games holds the game catalog and the round definitions that run
// each game on the engine.
package games

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownGame is returned for ids that are not in the catalog.
	ErrUnknownGame = errors.New("games: unknown game")
	// ErrComingSoon is returned for catalog entries that cannot be played yet.
	ErrComingSoon = errors.New("games: coming soon")
	// ErrNotRoundBased is returned when a round play is requested for a game
	// that reports a single result instead.
	ErrNotRoundBased = errors.New("games: game is scored from a single result")
	// ErrNotFreePlay is returned when a single result is posted for a round-based game.
	ErrNotFreePlay = errors.New("games: game is played in rounds")
)

// Mode is the age band a game targets.
type Mode string

const (
	ModeLittle Mode = "little"
	ModeBig    Mode = "big"
	ModeAll    Mode = "all"
)

// ParseMode validates a mode string. An empty string means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAll, nil
	case ModeLittle, ModeBig, ModeAll:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("games: unknown mode %q", s)
	}
}

// Difficulty labels a game for the hub.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Game is a catalog entry.
type Game struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	Mode        Mode       `json:"mode"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Catalog is the fixed list of games in hub order.
var Catalog = []Game{
	{ID: ColorMatch, Title: "Color Match", Description: "Find the matching color!", Icon: "🎨", Color: "red", Mode: ModeLittle, Difficulty: Easy},
	{ID: ShapeTap, Title: "Shape Tap", Description: "Tap the right shape!", Icon: "🔷", Color: "blue", Mode: ModeLittle, Difficulty: Easy},
	{ID: AnimalSounds, Title: "Animal Sounds", Description: "Match the animal sound!", Icon: "🐾", Color: "green", Mode: ModeLittle, Difficulty: Easy},
	{ID: CountingCritters, Title: "Counting Critters", Description: "Count the bugs!", Icon: "🐛", Color: "orange", Mode: ModeLittle, Difficulty: Easy},
	{ID: ShadowMatch, Title: "Shadow Match", Description: "Find the shadow!", Icon: "👤", Color: "purple", Mode: ModeLittle, Difficulty: Easy},
	{ID: MemoryFlip, Title: "Memory Flip", Description: "Find matching pairs!", Icon: "🃏", Color: "purple", Mode: ModeAll, Difficulty: Medium},
	{ID: PatternPuzzle, Title: "Pattern Puzzle", Description: "Complete the pattern!", Icon: "🧩", Color: "pink", Mode: ModeAll, Difficulty: Medium},
	{ID: SortingFun, Title: "Sorting Fun", Description: "Put things in order!", Icon: "📊", Color: "teal", Mode: ModeAll, Difficulty: Medium},
	{ID: WeatherMatch, Title: "Weather Match", Description: "Dress for the weather!", Icon: "🌤️", Color: "blue", Mode: ModeAll, Difficulty: Medium},
	{ID: AnimalHabitat, Title: "Animal Habitat", Description: "Where do animals live?", Icon: "🌲", Color: "green", Mode: ModeAll, Difficulty: Medium},
	{ID: StoryBuilder, Title: "Story Builder", Description: "Put the story in order!", Icon: "📖", Color: "purple", Mode: ModeBig, Difficulty: Medium},
	{ID: BugCatcher, Title: "Bug Catcher", Description: "Catch the right bugs!", Icon: "🦋", Color: "green", Mode: ModeAll, Difficulty: Medium},
	{ID: NumberLine, Title: "Number Line", Description: "Find the missing number!", Icon: "🔢", Color: "teal", Mode: ModeBig, Difficulty: Medium},
	{ID: MathBubbles, Title: "Math Bubbles", Description: "Pop the right answer!", Icon: "🫧", Color: "orange", Mode: ModeBig, Difficulty: Medium},
	{ID: SpellingBuilder, Title: "Spelling Builder", Description: "Build the word!", Icon: "📝", Color: "teal", Mode: ModeBig, Difficulty: Hard},
}

// Game ids.
const (
	ColorMatch       = "color-match"
	ShapeTap         = "shape-tap"
	AnimalSounds     = "animal-sounds"
	CountingCritters = "counting-critters"
	ShadowMatch      = "shadow-match"
	MemoryFlip       = "memory-flip"
	PatternPuzzle    = "pattern-puzzle"
	SortingFun       = "sorting-fun"
	WeatherMatch     = "weather-match"
	AnimalHabitat    = "animal-habitat"
	StoryBuilder     = "story-builder"
	BugCatcher       = "bug-catcher"
	NumberLine       = "number-line"
	MathBubbles      = "math-bubbles"
	SpellingBuilder  = "spelling-builder"
)

// ByID looks up a catalog entry.
func ByID(id string) (Game, error) {
	for _, g := range Catalog {
		if g.ID == id {
			return g, nil
		}
	}
	return Game{}, fmt.Errorf("%w: %s", ErrUnknownGame, id)
}

// ByMode lists the games for an age band. ModeAll lists everything; other
// modes include the games shared by every band.
func ByMode(mode Mode) []Game {
	out := make([]Game, 0, len(Catalog))
	for _, g := range Catalog {
		if mode == ModeAll || g.Mode == mode || g.Mode == ModeAll {
			out = append(out, g)
		}
	}
	return out
}
