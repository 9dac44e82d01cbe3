package engine

// MaxStars is the best possible rating.
const MaxStars = 3

// Result is the performance a rating is computed from.
type Result struct {
	Score       int `json:"score"`
	Mistakes    int `json:"mistakes"`
	TotalRounds int `json:"totalRounds"`
	Hints       int `json:"hints"`
}

// Rating maps a finished game to 0-3 stars. Implementations must be
// monotonic: more mistakes or fewer correct answers never earn more stars.
type Rating func(Result) int

// MistakeRating: no mistakes is 3 stars, up to two is 2, any success is 1.
func MistakeRating(r Result) int {
	switch {
	case r.Mistakes == 0:
		return 3
	case r.Mistakes <= 2:
		return 2
	case r.Score > 0:
		return 1
	default:
		return 0
	}
}

// AccuracyRating is used by arithmetic games: 90% with at most one mistake
// is 3 stars, 70% is 2, any success is 1.
func AccuracyRating(r Result) int {
	pct := percent(r)
	switch {
	case pct >= 0.9 && r.Mistakes <= 1:
		return 3
	case pct >= 0.7:
		return 2
	case r.Score > 0:
		return 1
	default:
		return 0
	}
}

// ProportionalRating awards ceil(score/total * 3) stars.
func ProportionalRating(r Result) int {
	if r.TotalRounds <= 0 {
		return 0
	}
	if r.Score <= 0 {
		return 0
	}
	return clamp((r.Score*MaxStars + r.TotalRounds - 1) / r.TotalRounds)
}

// SpellingRating: a perfect game without hints is 3 stars, 80% is 2, any
// success is 1.
func SpellingRating(r Result) int {
	switch {
	case r.Score >= r.TotalRounds && r.TotalRounds > 0 && r.Hints == 0:
		return 3
	case percent(r) >= 0.8:
		return 2
	case r.Score > 0:
		return 1
	default:
		return 0
	}
}

// MemoryRating rates a card-matching game by pairs found per move.
// Finishing always earns at least one star.
func MemoryRating(pairs, moves int) int {
	if moves <= 0 {
		return 1
	}
	ratio := float64(pairs) / float64(moves)
	switch {
	case ratio >= 0.8:
		return 3
	case ratio >= 0.5:
		return 2
	default:
		return 1
	}
}

// CatchRating rates a timed catching game by how many targets were caught.
func CatchRating(caught, target int) int {
	switch {
	case target > 0 && caught >= target:
		return 3
	case target > 0 && float64(caught) >= float64(target)/2:
		return 2
	case caught > 0:
		return 1
	default:
		return 0
	}
}

func percent(r Result) float64 {
	if r.TotalRounds <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalRounds)
}

func clamp(stars int) int {
	if stars < 0 {
		return 0
	}
	if stars > MaxStars {
		return MaxStars
	}
	return stars
}
