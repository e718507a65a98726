package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trains/game"
)

func TestLongestPath(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 3}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	box := s.Box()

	require.Equal(t, 0, LongestPath(s, 0), "no routes, no path")

	s = s.Apply(game.BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: game.CardSet{red: 2}})
	s = s.Apply(game.PassAction{})
	s = s.Apply(game.BuildAction{Route: box.RouteBetween("A", "C", "red").ID, Cards: game.CardSet{red: 1}})

	require.Equal(t, 3, LongestPath(s, 0), "E to A to C in one walk")
	require.Equal(t, 0, LongestPath(s, 1))
}

func TestFinalScores(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2, blue: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	box := s.Box()

	// Alice builds down to one train, forcing the last round
	s = s.Apply(game.BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: game.CardSet{red: 2}})
	s = s.Apply(game.PassAction{})
	s = s.Apply(game.BuildAction{Route: box.RouteBetween("B", "C", "blue").ID, Cards: game.CardSet{blue: 1}})
	s = s.Apply(game.PassAction{})
	s = s.Apply(game.BuildAction{Route: box.RouteBetween("C", "D", "blue").ID, Cards: game.CardSet{blue: 1}})
	s = s.Apply(game.PassAction{})
	s = s.Apply(s.LegalActions()[0].Action)
	require.True(t, s.GameOver())

	// Alice: 1 start, 5 in routes, 3 for the completed A-E card, 5 bonus.
	// Bob: 1 start, minus 5 for two incomplete cards.
	require.Equal(t, []int{14, -4}, FinalScores(s))
}
