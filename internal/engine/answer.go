package engine

// ExactSet reports whether submitted holds exactly the members of target.
// Order is ignored; duplicates in submitted make it unequal.
func ExactSet[T comparable](target, submitted []T) bool {
	if len(target) != len(submitted) {
		return false
	}
	want := make(map[T]int, len(target))
	for _, v := range target {
		want[v]++
	}
	for _, v := range submitted {
		if want[v] == 0 {
			return false
		}
		want[v]--
	}
	return true
}

// ExactSequence reports whether submitted equals target element by element.
func ExactSequence[T comparable](target, submitted []T) bool {
	if len(target) != len(submitted) {
		return false
	}
	for i := range target {
		if target[i] != submitted[i] {
			return false
		}
	}
	return true
}
