package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCensorAction(t *testing.T) {
	const red, blue = Color(0), Color(1)

	t.Run("initial deal keeps only the observer's cards", func(t *testing.T) {
		deal := InitialDealAction{FaceUp: CardSet{red: 1, blue: 1}}
		deal.TrainCards[0] = CardSet{red: 1}
		deal.TrainCards[1] = CardSet{blue: 1}
		deal.DestinationCards[0] = NewDestinationCardSet(0, 1)
		deal.DestinationCards[1] = NewDestinationCardSet(2, 3)

		censored := CensorAction(InitialTurn{}, deal, 1).(InitialDealAction)
		require.Equal(t, CardSet{}, censored.TrainCards[0])
		require.Equal(t, DestinationCardSet(0), censored.DestinationCards[0])
		require.Equal(t, deal.TrainCards[1], censored.TrainCards[1])
		require.Equal(t, deal.DestinationCards[1], censored.DestinationCards[1])
		require.Equal(t, deal.FaceUp, censored.FaceUp, "the face-up display is public")
	})

	t.Run("initial selections hide even the count", func(t *testing.T) {
		turn := PlayerInitialDestinationCardChoiceTurn{Player: 0}
		action := DestinationCardSelectionAction{Selected: NewDestinationCardSet(1), Count: 1}

		censored := CensorAction(turn, action, 1).(DestinationCardSelectionAction)
		require.Equal(t, HiddenCount, censored.Count)
		require.Equal(t, DestinationCardSet(0), censored.Selected)

		require.Equal(t, action, CensorAction(turn, action, 0),
			"the selecting player sees their own selection")
	})

	t.Run("mid game selections keep the count", func(t *testing.T) {
		turn := PlayerDestinationCardDrawMidTurn{Player: 0}
		action := DestinationCardSelectionAction{Selected: NewDestinationCardSet(4), Count: 1}

		censored := CensorAction(turn, action, 1).(DestinationCardSelectionAction)
		require.Equal(t, 1, censored.Count)
		require.Equal(t, DestinationCardSet(0), censored.Selected)
	})

	t.Run("hidden deals keep the count only", func(t *testing.T) {
		turn := TrainCardDealTurn{Count: 1, To: 0, Next: PlayerStartTurn{Player: 1}}
		action := TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1}

		censored := CensorAction(turn, action, 1).(TrainCardDealAction)
		require.Equal(t, CardSet{}, censored.Cards)
		require.Equal(t, 1, censored.Count)

		require.Equal(t, action, CensorAction(turn, action, 0))

		faceUpTurn := TrainCardDealTurn{Count: 1, To: NoPlayer, Next: PlayerStartTurn{Player: 1}}
		require.Equal(t, action, CensorAction(faceUpTurn, action, 1),
			"face-up deals are public")
	})
}

// syncedGame runs the same actions through the all-seeing state and Bob's
// observed state, applying to Bob whatever the censor lets him see.
type syncedGame struct {
	known    *KnownState
	observed *ObservedState
}

func newSyncedGame(box *Box) *syncedGame {
	return &syncedGame{
		known:    NewKnownState(box),
		observed: NewObservedState(box, 1),
	}
}

func (g *syncedGame) play(t *testing.T, action Action) {
	t.Helper()
	censored := CensorAction(g.known.Turn(), action, 1)
	g.known = g.known.Apply(action)
	g.observed = g.observed.Apply(censored)

	require.Equal(t, g.known.Turn(), g.observed.Turn(), "turn machines in step")
	require.Equal(t, g.known.TrainCardPileSize(), g.observed.TrainCardPileSize())
	require.Equal(t, g.known.Hand(1), g.observed.Hand(1), "own hand fully visible")
	for p := range g.known.Box().Players {
		require.Equal(t, g.known.Hand(Player(p)).TrainCardsCount,
			g.observed.Hand(Player(p)).TrainCardsCount)
	}
	// the invisible cards are the pile plus opponents' hidden hand cards
	hidden := 0
	for p := range g.known.Box().Players {
		view := g.observed.Hand(Player(p))
		hidden += view.TrainCardsCount - view.KnownTrainCards.Total()
	}
	require.Equal(t, g.observed.TrainCardPileSize()+hidden,
		g.observed.TrainCardPileDistribution().Total())
}

func playedSyncedGame(t *testing.T) *syncedGame {
	t.Helper()
	const red, blue = Color(0), Color(1)
	g := newSyncedGame(SmallBox([]string{"Alice", "Bob"}))

	deal := InitialDealAction{FaceUp: CardSet{red: 1, blue: 1}}
	deal.TrainCards[0] = CardSet{red: 1}
	deal.TrainCards[1] = CardSet{blue: 1}
	deal.DestinationCards[0] = NewDestinationCardSet(0, 1)
	deal.DestinationCards[1] = NewDestinationCardSet(2, 3)
	g.play(t, deal)

	g.play(t, DestinationCardSelectionAction{Selected: NewDestinationCardSet(1), Count: 1})
	g.play(t, DestinationCardSelectionAction{Selected: NewDestinationCardSet(2, 3), Count: 2})
	g.play(t, g.known.LegalActions()[0].Action)
	return g
}

func TestObservedStateTracksKnownState(t *testing.T) {
	const red = Color(0)
	g := playedSyncedGame(t)

	require.Equal(t, PlayerStartTurn{Player: 0, LastTurnForced: NoPlayer}, g.observed.Turn())
	require.False(t, g.observed.HandIsKnown(0))
	require.Equal(t, 1, g.observed.Hand(0).DestinationCardsCount,
		"the reveal fixes the opponent's kept count")
	require.Equal(t, g.known.DestinationCardPileSize(), g.observed.DestinationCardPileSize())

	// Alice draws face down, then again; Bob only learns the counts
	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	require.Equal(t, 2, g.observed.Hand(0).TrainCardsCount)
	require.Equal(t, CardSet{}, g.observed.Hand(0).KnownTrainCards)

	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	g.play(t, PassAction{})

	// building reveals the hidden cards spent
	box := g.known.Box()
	distBefore := g.observed.TrainCardPileDistribution()
	g.play(t, BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: CardSet{red: 2}})
	require.Equal(t, 1, g.observed.Hand(0).TrainCardsCount)
	require.Equal(t, distBefore[red]-2, g.observed.TrainCardPileDistribution()[red])
	require.Equal(t, Player(0), g.observed.RouteOwner(box.RouteBetween("A", "E", "").ID))
}

func TestObservedFinalReveal(t *testing.T) {
	g := playedSyncedGame(t)
	const red = Color(0)
	box := g.known.Box()

	// Alice draws twice face down, then builds down to the train limit
	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	g.play(t, PassAction{})
	g.play(t, BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: CardSet{red: 2}})
	g.play(t, PassAction{})
	g.play(t, BuildAction{Route: box.RouteBetween("A", "C", "red").ID, Cards: CardSet{red: 1}})
	g.play(t, PassAction{})
	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	g.play(t, TrainCardPickAction{})
	g.play(t, TrainCardDealAction{Cards: CardSet{red: 1}, Count: 1})
	g.play(t, PassAction{})
	g.play(t, BuildAction{Route: box.RouteBetween("D", "F", "red").ID, Cards: CardSet{red: 1}})

	require.Equal(t, PlayerStartTurn{Player: 1, LastTurnForced: 0}, g.observed.Turn())

	g.play(t, PassAction{})
	require.Equal(t, RevealFinalDestinationCardsTurn{}, g.observed.Turn())

	g.play(t, g.known.LegalActions()[0].Action)
	require.True(t, g.observed.GameOver())
	require.Equal(t, NewDestinationCardSet(1), g.observed.Hand(0).KnownDestinationCards,
		"the reveal shows Alice's cards")
	require.Equal(t, g.known.FullHand(0).Points, g.observed.Hand(0).KnownPoints)
	require.Equal(t, 9, g.observed.Hand(0).KnownPoints)
	require.Equal(t, -4, g.observed.Hand(1).KnownPoints,
		"both of Bob's cards come up incomplete")
	require.Equal(t, g.known.Winner(), g.observed.Winner())
}

func TestEachAssumedHand(t *testing.T) {
	g := playedSyncedGame(t)
	s := g.observed

	total := 0.0
	hands := 0
	s.EachAssumedHand(0, nil, func(assumed State, weight float64) bool {
		hands++
		total += weight
		require.True(t, assumed.HandIsKnown(0))
		view := assumed.Hand(0)
		require.Equal(t, 1, view.KnownTrainCards.Total(), "the hidden train card is assigned")
		require.Equal(t, 1, view.KnownDestinationCards.Count())
		require.Equal(t, assumed.TrainCardPileSize(), assumed.TrainCardPileDistribution().Total(),
			"no invisible cards remain once every hand is known")
		return true
	})
	require.Greater(t, hands, 1)
	require.InDelta(t, 1.0, total, 1e-9,
		"deal weights with a unit building oracle form a distribution")

	t.Run("stops when yield returns false", func(t *testing.T) {
		calls := 0
		s.EachAssumedHand(0, nil, func(State, float64) bool {
			calls++
			return false
		})
		require.Equal(t, 1, calls)
	})

	t.Run("known hands yield themselves", func(t *testing.T) {
		s.EachAssumedHand(1, nil, func(assumed State, weight float64) bool {
			require.Equal(t, 1.0, weight)
			require.Equal(t, s.Hash(), assumed.Hash())
			return true
		})
	})
}

func TestSampleAssumedHand(t *testing.T) {
	g := playedSyncedGame(t)
	rng := rand.New(rand.NewSource(3))

	assumed := g.observed.SampleAssumedHand(0, rng)
	require.True(t, assumed.HandIsKnown(0))
	require.Equal(t, 1, assumed.Hand(0).KnownTrainCards.Total())
	require.Equal(t, 1, assumed.Hand(0).KnownDestinationCards.Count())
	require.Equal(t, assumed.TrainCardPileSize(), assumed.TrainCardPileDistribution().Total())

	require.False(t, g.observed.HandIsKnown(0), "sampling leaves the original untouched")
}

func TestObservedBuildProbabilities(t *testing.T) {
	const red = Color(0)
	g := playedSyncedGame(t)
	s := g.observed

	// Alice holds one hidden card; Bob weighs her builds by the chance she
	// has the cards. Red pile from Bob's view: 10 minus one face-up.
	var buildProb float64
	for _, la := range s.LegalActions() {
		if build, ok := la.Action.(BuildAction); ok && build.Cards == SingleCard(red) {
			buildProb = la.Probability
			break
		}
	}
	pile := s.TrainCardPileDistribution()
	want := ProbabilityOfCards(SingleCard(red), 1, pile)
	require.InDelta(t, want, buildProb, 1e-9)
	require.Greater(t, buildProb, 0.0)
}

func TestRevealChoiceActions(t *testing.T) {
	const red, blue = Color(0), Color(1)
	g := newSyncedGame(SmallBox([]string{"Alice", "Bob"}))

	deal := InitialDealAction{FaceUp: CardSet{red: 1, blue: 1}}
	deal.TrainCards[0] = CardSet{red: 1}
	deal.TrainCards[1] = CardSet{blue: 1}
	deal.DestinationCards[0] = NewDestinationCardSet(0, 1)
	deal.DestinationCards[1] = NewDestinationCardSet(2, 3)
	g.play(t, deal)
	g.play(t, DestinationCardSelectionAction{Selected: NewDestinationCardSet(1), Count: 1})
	g.play(t, DestinationCardSelectionAction{Selected: NewDestinationCardSet(2, 3), Count: 2})

	actions := g.observed.LegalActions()
	require.Len(t, actions, 2, "Alice may have kept one or two cards")
	for _, la := range actions {
		reveal := la.Action.(RevealDestinationCardSelectionsAction)
		require.Equal(t, 2, reveal.Kept[1], "Bob's own count is fixed")
		require.InDelta(t, 0.5, la.Probability, 1e-9)
	}
}
