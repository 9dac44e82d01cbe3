package engine

import "math/rand/v2"

// Accumulator is the only state a round generator may carry from one round
// to the next. Catalog-driven games record drawn content indices in it to
// avoid repeats.
type Accumulator struct {
	Round       int
	UsedIndices []int
	Difficulty  int
}

// Draw picks a catalog index in [0,n) that has not been used yet. Once every
// index has been used the history is cleared and drawing starts over.
func (a *Accumulator) Draw(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if len(a.UsedIndices) >= n {
		a.UsedIndices = a.UsedIndices[:0]
	}

	used := make(map[int]bool, len(a.UsedIndices))
	for _, idx := range a.UsedIndices {
		used[idx] = true
	}
	free := make([]int, 0, n-len(used))
	for i := 0; i < n; i++ {
		if !used[i] {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		a.UsedIndices = a.UsedIndices[:0]
		return a.Draw(rng, n)
	}

	idx := free[rng.IntN(len(free))]
	a.UsedIndices = append(a.UsedIndices, idx)
	return idx
}

func (a *Accumulator) reset() {
	a.Round = 0
	a.UsedIndices = nil
	a.Difficulty = 0
}
