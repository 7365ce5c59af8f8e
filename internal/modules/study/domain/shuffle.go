package domain

import "math/rand/v2"

// Shuffle returns a uniformly permuted copy of cards. A nil rng uses the
// global source.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng == nil {
		rand.Shuffle(len(out), swap)
		return out
	}
	rng.Shuffle(len(out), swap)
	return out
}
