package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// smallGame sets up a two player game on the small box with a scripted
// initial deal. Card IDs on the small box: 0 A-F, 1 A-E, 2 B-D, 3 C-D,
// 4 C-F, 5 E-F.
func smallGame(t *testing.T, aliceTrains, bobTrains, faceUp CardSet, aliceDest, bobDest DestinationCardSet) *KnownState {
	t.Helper()
	box := SmallBox([]string{"Alice", "Bob"})
	deal := InitialDealAction{FaceUp: faceUp}
	deal.TrainCards[0] = aliceTrains
	deal.TrainCards[1] = bobTrains
	deal.DestinationCards[0] = aliceDest
	deal.DestinationCards[1] = bobDest
	return NewKnownState(box).Apply(deal)
}

// startPlay plays out the initial selections and the reveal, leaving Alice
// on her first regular turn.
func startPlay(t *testing.T, s *KnownState, aliceKeep, bobKeep DestinationCardSet) *KnownState {
	t.Helper()
	s = s.Apply(DestinationCardSelectionAction{Selected: aliceKeep, Count: aliceKeep.Count()})
	s = s.Apply(DestinationCardSelectionAction{Selected: bobKeep, Count: bobKeep.Count()})
	require.IsType(t, RevealInitialDestinationCardChoicesTurn{}, s.Turn())
	return s.Apply(s.LegalActions()[0].Action)
}

func TestInitialDealAndSelection(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))

	require.Equal(t, PlayerInitialDestinationCardChoiceTurn{Player: 0}, s.Turn())
	require.Equal(t, 28-4, s.TrainCardPileSize())
	require.Equal(t, 6-4, s.DestinationCardPileSize())
	require.Equal(t, CardSet{red: 1}, s.FullHand(0).TrainCards)
	require.Equal(t, 5, s.FullHand(0).RemainingTrains)
	require.Equal(t, 1, s.FullHand(0).Points)

	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))
	require.Equal(t, PlayerStartTurn{Player: 0, LastTurnForced: NoPlayer}, s.Turn())
	require.Equal(t, NewDestinationCardSet(1), s.FullHand(0).DestinationCards)
	require.Equal(t, NewDestinationCardSet(1), s.FullHand(0).IncompleteDestinationCards)
	require.Equal(t, DestinationCardSet(0), s.FullHand(0).UnselectedDestinationCards)
	require.Equal(t, 3, s.DestinationCardPileSize(), "the returned card goes back to the pile")
}

func TestBuildRoute(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	box := s.Box()
	route := box.RouteBetween("A", "C", "red")
	s = s.Apply(BuildAction{Route: route.ID, Cards: CardSet{red: 1}})

	hand := s.FullHand(0)
	require.Equal(t, CardSet{}, hand.TrainCards)
	require.Equal(t, 4, hand.RemainingTrains)
	require.Equal(t, 2, hand.Points, "starting score plus the length one route")
	require.Equal(t, Player(0), s.RouteOwner(route.ID))
	require.True(t, s.PlayerClusters(0).Joined(box.CityByName("A"), box.CityByName("C")))
	require.Equal(t, CardSet{red: 1}, s.DiscardedTrainCards())
	require.Equal(t, PlayerStartTurn{Player: 1, LastTurnForced: NoPlayer}, s.Turn())
}

func TestBuildCompletesDestinationCard(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 2}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	route := s.Box().RouteBetween("A", "E", "")
	s = s.Apply(BuildAction{Route: route.ID, Cards: CardSet{red: 2}})

	hand := s.FullHand(0)
	require.Equal(t, 7, hand.Points, "route points plus the completed card's value")
	require.Equal(t, NewDestinationCardSet(1), hand.CompleteDestinationCards)
	require.Equal(t, DestinationCardSet(0), hand.IncompleteDestinationCards)
}

func TestFaceUpDraws(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	// first draw takes the face-up blue card and triggers a refill
	s = s.Apply(TrainCardPickAction{DrawKnown: true, Selected: blue})
	require.Equal(t, TrainCardDealTurn{
		Count: 1,
		To:    NoPlayer,
		Next:  PlayerTrainCardDrawMidTurn{Player: 0, LastTurnForced: NoPlayer},
	}, s.Turn())
	require.Equal(t, CardSet{red: 1, blue: 1}, s.FullHand(0).TrainCards)

	s = s.Apply(TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	require.Equal(t, CardSet{red: 2}, s.FaceUpTrainCards())
	require.Equal(t, PlayerTrainCardDrawMidTurn{Player: 0, LastTurnForced: NoPlayer}, s.Turn())

	// second draw goes face down and ends the turn after the deal
	s = s.Apply(TrainCardPickAction{})
	require.Equal(t, TrainCardDealTurn{
		Count: 1,
		To:    0,
		Next:  PlayerStartTurn{Player: 1, LastTurnForced: NoPlayer},
	}, s.Turn())

	before := s.TrainCardPileSize()
	s = s.Apply(TrainCardDealAction{Cards: CardSet{blue: 1}, Count: 1})
	require.Equal(t, CardSet{red: 1, blue: 2}, s.FullHand(0).TrainCards)
	require.Equal(t, before-1, s.TrainCardPileSize())
	require.Equal(t, PlayerStartTurn{Player: 1, LastTurnForced: NoPlayer}, s.Turn())
}

func TestFaceUpWildcardEndsTurn(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{Wildcard: 1, red: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	s = s.Apply(TrainCardPickAction{DrawKnown: true, Selected: Wildcard})
	require.Equal(t, TrainCardDealTurn{
		Count: 1,
		To:    NoPlayer,
		Next:  PlayerStartTurn{Player: 1, LastTurnForced: NoPlayer},
	}, s.Turn(), "a face-up wildcard ends the turn")
	require.Equal(t, 1, s.FullHand(0).TrainCards[Wildcard])
}

func TestWildcardClearForcesRedeal(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{Wildcard: 1, red: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	s = s.Apply(TrainCardPickAction{DrawKnown: true, Selected: red})
	// refilling with a second wildcard reaches the clearing threshold
	s = s.Apply(TrainCardDealAction{Cards: CardSet{Wildcard: 1}, Count: 1})

	require.Equal(t, CardSet{}, s.FaceUpTrainCards())
	require.Equal(t, CardSet{Wildcard: 2}, s.DiscardedTrainCards())
	turn, ok := s.Turn().(TrainCardDealTurn)
	require.True(t, ok)
	require.Equal(t, s.Box().FaceUpTrainCards, turn.Count)
	require.Equal(t, 1, turn.Redeals)
	require.Equal(t, PlayerTrainCardDrawMidTurn{Player: 0, LastTurnForced: NoPlayer}, turn.Next)

	s = s.Apply(TrainCardDealAction{Cards: CardSet{red: 1, blue: 1}, Count: 2})
	require.Equal(t, CardSet{red: 1, blue: 1}, s.FaceUpTrainCards())
	require.Equal(t, PlayerTrainCardDrawMidTurn{Player: 0, LastTurnForced: NoPlayer}, s.Turn())
}

func TestDestinationCardDraw(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(2, 3))

	s = s.Apply(DestinationCardPickAction{})
	require.Equal(t, DestinationCardDealTurn{To: 0, LastTurnForced: NoPlayer}, s.Turn())

	actions := s.LegalActions()
	require.Len(t, actions, 3, "three ways to deal two of the three pile cards")
	for _, la := range actions {
		require.InDelta(t, 1.0/3, la.Probability, 1e-9)
	}

	s = s.Apply(DestinationCardDealAction{Cards: NewDestinationCardSet(4, 5), Count: 2})
	require.Equal(t, PlayerDestinationCardDrawMidTurn{Player: 0, LastTurnForced: NoPlayer}, s.Turn())
	require.Equal(t, 1, s.DestinationCardPileSize())

	s = s.Apply(DestinationCardSelectionAction{Selected: NewDestinationCardSet(5), Count: 1})
	require.Equal(t, NewDestinationCardSet(1, 5), s.FullHand(0).DestinationCards)
	require.Equal(t, 2, s.DestinationCardPileSize(), "the declined card returns to the pile")
	require.Equal(t, PlayerStartTurn{Player: 1, LastTurnForced: NoPlayer}, s.Turn())
}

func TestLastRoundAndFinalScoring(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 2, blue: 2}, CardSet{}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	s = startPlay(t, s, NewDestinationCardSet(1), NewDestinationCardSet(3))

	box := s.Box()
	s = s.Apply(BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: CardSet{red: 2}})
	s = s.Apply(PassAction{})
	s = s.Apply(BuildAction{Route: box.RouteBetween("B", "C", "blue").ID, Cards: CardSet{blue: 1}})
	s = s.Apply(PassAction{})
	s = s.Apply(BuildAction{Route: box.RouteBetween("C", "D", "blue").ID, Cards: CardSet{blue: 1}})

	// Alice dropped to one train, so Bob gets the last turn
	require.Equal(t, 1, s.FullHand(0).RemainingTrains)
	require.Equal(t, PlayerStartTurn{Player: 1, LastTurnForced: 0}, s.Turn())

	s = s.Apply(PassAction{})
	require.Equal(t, RevealFinalDestinationCardsTurn{}, s.Turn())
	require.False(t, s.GameOver())

	s = s.Apply(s.LegalActions()[0].Action)
	require.True(t, s.GameOver())
	require.Equal(t, 9, s.FullHand(0).Points)
	require.Equal(t, 0, s.FullHand(1).Points, "the incomplete card costs its value")
	require.Equal(t, Player(0), s.Winner())
}

func TestLegalActionsSatisfyValidator(t *testing.T) {
	const red, blue = Color(0), Color(1)
	s := smallGame(t,
		CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))

	rng := rand.New(rand.NewSource(7))
	deckTotal := s.Box().TrainCardDeck.Total()
	for step := 0; step < 400 && !s.GameOver(); step++ {
		actions := s.LegalActions()
		require.NotEmpty(t, actions, "step %d stuck at %T", step, s.Turn())
		la := actions[rng.Intn(len(actions))]
		require.NoError(t, ValidateAction(s, la.Action), "step %d action %T", step, la.Action)
		s = s.Apply(la.Action)

		onTable := s.TrainCardPileSize() + s.DiscardedTrainCards().Total() +
			s.FaceUpTrainCards().Total()
		inHands := 0
		for p := range s.Box().Players {
			inHands += s.FullHand(Player(p)).TrainCards.Total()
		}
		require.Equal(t, deckTotal, onTable+inHands, "train cards conserved at step %d", step)
		require.Equal(t, s.TrainCardPileSize(), s.TrainCardPileDistribution().Total(),
			"pile size matches its composition at step %d", step)
	}
}

func TestKnownStateHash(t *testing.T) {
	const red, blue = Color(0), Color(1)
	deal := func() *KnownState {
		return smallGame(t,
			CardSet{red: 1}, CardSet{blue: 1}, CardSet{red: 1, blue: 1},
			NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	}

	require.Equal(t, deal().Hash(), deal().Hash(), "identical states share a hash")

	other := smallGame(t,
		CardSet{blue: 1}, CardSet{red: 1}, CardSet{red: 1, blue: 1},
		NewDestinationCardSet(0, 1), NewDestinationCardSet(2, 3))
	require.NotEqual(t, deal().Hash(), other.Hash())
}
