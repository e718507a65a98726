package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trains/game"
)

// smallState sets up a two player game on the small box with a scripted
// initial deal, both selections resolved, and Alice about to move.
func smallState(t *testing.T, aliceTrains, bobTrains, faceUp game.CardSet) *game.KnownState {
	t.Helper()
	box := game.SmallBox([]string{"Alice", "Bob"})
	deal := game.InitialDealAction{FaceUp: faceUp}
	deal.TrainCards[0] = aliceTrains
	deal.TrainCards[1] = bobTrains
	deal.DestinationCards[0] = game.NewDestinationCardSet(0, 1)
	deal.DestinationCards[1] = game.NewDestinationCardSet(2, 3)
	s := game.NewKnownState(box).Apply(deal)
	s = s.Apply(game.DestinationCardSelectionAction{Selected: game.NewDestinationCardSet(1), Count: 1})
	s = s.Apply(game.DestinationCardSelectionAction{Selected: game.NewDestinationCardSet(2, 3), Count: 2})
	return s.Apply(s.LegalActions()[0].Action)
}

func TestInitialDeal(t *testing.T) {
	box := game.SmallBox([]string{"Alice", "Bob"})
	s := game.NewKnownState(box)
	d := newDealer(5)

	deal := d.initialDeal(s)
	for p := range box.Players {
		require.Equal(t, box.StartingTrainCards, deal.TrainCards[p].Total())
		require.Equal(t, box.StartingDestCardsRange[1], deal.DestinationCards[p].Count())
	}
	require.Equal(t, box.FaceUpTrainCards, deal.FaceUp.Total())
	require.NoError(t, game.ValidateAction(s, deal))

	s = s.Apply(deal)
	require.Equal(t, game.PlayerInitialDestinationCardChoiceTurn{Player: 0}, s.Turn())
	require.Equal(t, 28-2*box.StartingTrainCards-box.FaceUpTrainCards, s.TrainCardPileSize())
	require.Equal(t, 6-2*box.StartingDestCardsRange[1], s.DestinationCardPileSize())
}

func TestTrainDeal(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 1}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	s = s.Apply(game.TrainCardPickAction{})
	require.IsType(t, game.TrainCardDealTurn{}, s.Turn())

	d := newDealer(5)
	deal := d.trainDeal(s, 1)
	require.Equal(t, 1, deal.Count)
	require.Equal(t, 1, deal.Cards.Total())
	_, leftover := game.Subtract(s.TrainCardPileDistribution(), deal.Cards)
	require.Equal(t, game.CardSet{}, leftover, "the card comes from the pile")
	require.NoError(t, game.ValidateAction(s, deal))
}

func TestDestinationDeal(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 1}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	s = s.Apply(game.DestinationCardPickAction{})
	require.IsType(t, game.DestinationCardDealTurn{}, s.Turn())

	d := newDealer(5)
	deal := d.destinationDeal(s)
	require.Equal(t, 2, deal.Count, "the pile still covers a full deal")
	require.True(t, deal.Cards.IsSubsetOf(destinationPile(s)))
	require.NoError(t, game.ValidateAction(s, deal))
}

func TestDestinationPile(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 1}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	// Alice kept 1 of cards 0 and 1, Bob kept 2 and 3; the rest is the pile
	require.Equal(t, game.NewDestinationCardSet(0, 4, 5), destinationPile(s))
}
