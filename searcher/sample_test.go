package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"trains/game"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestSampleAction(t *testing.T) {
	pass := game.LegalAction{Action: game.PassAction{}, Probability: 1}
	pick := game.LegalAction{Action: game.TrainCardPickAction{}, Probability: 0}

	t.Run("zero weight is never drawn", func(t *testing.T) {
		rng := testRng(1)
		for i := 0; i < 100; i++ {
			require.Equal(t, pass, sampleAction(rng, []game.LegalAction{pass, pick}))
		}
	})

	t.Run("draws roughly follow the weights", func(t *testing.T) {
		rng := testRng(2)
		actions := []game.LegalAction{
			{Action: game.PassAction{}, Probability: 1},
			{Action: game.TrainCardPickAction{}, Probability: 3},
		}
		picks := 0
		const n = 10000
		for i := 0; i < n; i++ {
			if _, ok := sampleAction(rng, actions).Action.(game.TrainCardPickAction); ok {
				picks++
			}
		}
		require.InDelta(t, 0.75, float64(picks)/n, 0.03,
			"unnormalized weights one and three")
	})
}
