package engine

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"trains/game"
	"trains/searcher"
)

func TestPlayGameWithRandomActors(t *testing.T) {
	box := game.SmallBox([]string{"Alice", "Bob"})
	gameActor := NewGameActor(box, 11)
	alice := searcher.NewRandomActor(box, 0, 12)
	bob := searcher.NewRandomActor(box, 1, 13)

	result, err := PlayGame(gameActor, []game.Actor{alice, bob},
		zerolog.New(io.Discard), 0)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.ID)
	require.Len(t, result.Scores, 2)
	require.Greater(t, result.Moves, 0)
	require.True(t, gameActor.State.GameOver())

	// every player's observed state followed the game to the same end
	require.True(t, alice.State.GameOver())
	require.True(t, bob.State.GameOver())
	for p := range box.Players {
		require.Equal(t, gameActor.State.FullHand(game.Player(p)).Points,
			alice.State.Hand(game.Player(p)).KnownPoints,
			"the final reveal makes every score public")
	}
	require.Equal(t, result.Scores[result.Winner],
		maxScore(result.Scores), "the winner holds the top score")
}

func maxScore(scores []int) int {
	best := scores[0]
	for _, s := range scores[1:] {
		best = max(best, s)
	}
	return best
}

func TestPlayGameSeatMismatch(t *testing.T) {
	box := game.SmallBox([]string{"Alice", "Bob"})
	gameActor := NewGameActor(box, 1)
	alice := searcher.NewRandomActor(box, 0, 2)

	_, err := PlayGame(gameActor, []game.Actor{alice}, zerolog.New(io.Discard), 0)
	require.ErrorContains(t, err, "2 players, got 1")
}

func TestPlayGameMoveCap(t *testing.T) {
	box := game.SmallBox([]string{"Alice", "Bob"})
	gameActor := NewGameActor(box, 1)
	alice := searcher.NewRandomActor(box, 0, 2)
	bob := searcher.NewRandomActor(box, 1, 3)

	_, err := PlayGame(gameActor, []game.Actor{alice, bob}, zerolog.New(io.Discard), 3)
	require.ErrorContains(t, err, "did not finish within 3 moves")
}

func TestGameActorRejectsPlayerTurns(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 1}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	gameActor := &GameActor{State: s, dealer: newDealer(1)}

	_, err := gameActor.GetAction()
	require.Error(t, err, "a player start turn is not the game's to play")
}

func TestGameActorValidates(t *testing.T) {
	box := game.SmallBox([]string{"Alice", "Bob"})
	gameActor := NewGameActor(box, 9)

	require.Error(t, gameActor.ValidateAction(game.PassAction{}),
		"nobody passes before the initial deal")

	action, err := gameActor.GetAction()
	require.NoError(t, err)
	require.NoError(t, gameActor.ValidateAction(action))
	gameActor.ObserveAction(action)
	require.Equal(t, game.PlayerInitialDestinationCardChoiceTurn{Player: 0}, gameActor.State.Turn())
}
