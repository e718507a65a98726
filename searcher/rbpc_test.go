package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trains/game"
)

func TestDummyRbpc(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	oracle := DummyRbpc(s, 0)
	require.Equal(t, 1.0, oracle(game.NewDestinationCardSet(0), true))
	require.Equal(t, 1.0, oracle(game.DestinationCardSet(0), false))
}

func TestPathRbpc(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	box := s.Box()

	t.Run("no builds yet explains everything", func(t *testing.T) {
		oracle := PathRbpc(s, 0)
		require.Equal(t, 1.0, oracle(game.NewDestinationCardSet(1), true))
	})

	s = s.Apply(game.BuildAction{Route: box.RouteBetween("A", "C", "red").ID, Cards: game.CardSet{red: 1}})
	oracle := PathRbpc(s, 0)

	t.Run("a route on the card's shortest path is expected", func(t *testing.T) {
		// A-C lies on the length three A-F corridor
		require.Equal(t, 1.0, oracle(game.NewDestinationCardSet(0), true))
	})

	t.Run("a route off every card's path is penalized", func(t *testing.T) {
		// A-E runs direct, skipping C
		require.Equal(t, 0.5, oracle(game.NewDestinationCardSet(1), true))
	})

	t.Run("the baseline stays neutral", func(t *testing.T) {
		require.Equal(t, 1.0, oracle(game.DestinationCardSet(0), false))
	})
}
