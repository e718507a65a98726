package searcher

import (
	"golang.org/x/exp/rand"

	"trains/game"
)

// sampleAction draws one legal action proportionally to its probability.
// Weights need not be normalized.
func sampleAction(rng *rand.Rand, actions []game.LegalAction) game.LegalAction {
	total := 0.0
	for _, a := range actions {
		total += a.Probability
	}
	pick := rng.Float64() * total
	for _, a := range actions {
		pick -= a.Probability
		if pick <= 0 {
			return a
		}
	}
	return actions[len(actions)-1]
}
