package game

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// HiddenCount marks a censored action whose card count is not visible to the
// observer either, such as initial destination card selections before the
// reveal.
const HiddenCount = -1

// mcDealSamples is how many Monte Carlo samples back the train card deal
// distribution. Exact enumeration of multi-card deals is far too slow.
const mcDealSamples = 100

// HandView is one player's hand as some perspective sees it. Known flag set
// means the view is complete; otherwise the Known* fields are the visible
// subset and the counts cover the rest.
type HandView struct {
	KnownDestinationCards           DestinationCardSet
	DestinationCardsCount           int
	KnownUnselectedDestinationCards DestinationCardSet
	UnselectedDestinationCardsCount int
	KnownTrainCards                 CardSet
	TrainCardsCount                 int
	RemainingTrains                 int

	KnownPoints                     int
	KnownCompleteDestinationCards   DestinationCardSet
	KnownIncompleteDestinationCards DestinationCardSet

	Known bool
}

// KnownHand is a fully visible hand.
type KnownHand struct {
	DestinationCards           DestinationCardSet
	UnselectedDestinationCards DestinationCardSet
	TrainCards                 CardSet
	RemainingTrains            int

	Points                     int
	CompleteDestinationCards   DestinationCardSet
	IncompleteDestinationCards DestinationCardSet
}

// View widens a known hand into the fully known view of it.
func (h KnownHand) View() HandView {
	return HandView{
		KnownDestinationCards:           h.DestinationCards,
		DestinationCardsCount:           h.DestinationCards.Count(),
		KnownUnselectedDestinationCards: h.UnselectedDestinationCards,
		UnselectedDestinationCardsCount: h.UnselectedDestinationCards.Count(),
		KnownTrainCards:                 h.TrainCards,
		TrainCardsCount:                 h.TrainCards.Total(),
		RemainingTrains:                 h.RemainingTrains,
		KnownPoints:                     h.Points,
		KnownCompleteDestinationCards:   h.CompleteDestinationCards,
		KnownIncompleteDestinationCards: h.IncompleteDestinationCards,
		Known:                           true,
	}
}

// LegalAction is an action available in some state, with the probability of
// it being playable. For chance turns the probability is the chance of the
// deck producing those cards; for player turns it is the probability that the
// player holds the cards the action spends, 1 when the hand is known.
type LegalAction struct {
	Action      Action
	Probability float64
}

// RouteBuildProbability estimates how likely a player would have built the
// routes they have built, given that they hold the destination cards passed
// in. Called with ok=false for the baseline that disregards destination
// cards. Used to weight assumed hands.
type RouteBuildProbability func(cards DestinationCardSet, ok bool) float64

// UnitRouteBuildProbability weights every destination hand equally.
func UnitRouteBuildProbability(DestinationCardSet, bool) float64 { return 1 }

// State is an immutable snapshot of a game from some perspective. KnownState
// sees every hand; ObservedState sees the game as one player does, with
// opponents' hidden cards folded into pile distributions.
//
// NextState panics when the action's type does not fit the current turn; that
// is a driver bug, not a rule violation. Rule violations are the business of
// Validate.
type State interface {
	Box() *Box
	Turn() TurnState
	Hand(p Player) HandView
	HandIsKnown(p Player) bool

	FaceUpTrainCards() CardSet
	DiscardedTrainCards() CardSet
	TrainCardPileDistribution() CardSet
	TrainCardPileSize() int
	DestinationCardPileSize() int
	RouteOwner(id RouteID) Player
	PlayerClusters(p Player) Clusters

	NextState(a Action) State
	LegalActions() []LegalAction

	// EachAssumedHand calls yield for every completion of player p's hand
	// consistent with what this perspective has seen, with an unnormalized
	// weight combining the deal probability and the route building
	// probability ratio. Enumeration stops when yield returns false.
	EachAssumedHand(p Player, rbpc RouteBuildProbability, yield func(State, float64) bool)

	GameOver() bool
	Winner() Player
	Hash() uint64
}

// tableau is the public part of a state: everything on the table that every
// perspective agrees on, plus the pile distributions of the cards this
// perspective cannot see.
type tableau struct {
	box *Box

	discarded CardSet
	faceUp    CardSet

	// trainPile is the multiset of train cards whose location this
	// perspective cannot see; trainPileSize is the physical draw pile size,
	// which can be smaller when opponents hold hidden cards.
	trainPile     CardSet
	trainPileSize int

	destPile     DestinationCardSet
	destPileSize int

	routeOwner []Player // by RouteID, NoPlayer when unbuilt
	clusters   [MaxPlayers]Clusters

	turn TurnState
}

func newTableau(box *Box) tableau {
	owners := make([]Player, len(box.Routes))
	for i := range owners {
		owners[i] = NoPlayer
	}
	var clusters [MaxPlayers]Clusters
	for p := range box.Players {
		clusters[p] = NewClusters(box)
	}
	var destPile DestinationCardSet
	for _, card := range box.DestinationCards {
		destPile = destPile.Add(card.ID)
	}
	return tableau{
		box:           box,
		trainPile:     box.TrainCardDeck,
		trainPileSize: box.TrainCardDeck.Total(),
		destPile:      destPile,
		destPileSize:  len(box.DestinationCards),
		routeOwner:    owners,
		clusters:      clusters,
		turn:          InitialTurn{},
	}
}

func (t *tableau) Box() *Box                          { return t.box }
func (t *tableau) Turn() TurnState                    { return t.turn }
func (t *tableau) FaceUpTrainCards() CardSet          { return t.faceUp }
func (t *tableau) DiscardedTrainCards() CardSet       { return t.discarded }
func (t *tableau) TrainCardPileDistribution() CardSet { return t.trainPile }
func (t *tableau) TrainCardPileSize() int             { return t.trainPileSize }
func (t *tableau) DestinationCardPileSize() int       { return t.destPileSize }
func (t *tableau) RouteOwner(id RouteID) Player       { return t.routeOwner[id] }
func (t *tableau) PlayerClusters(p Player) Clusters   { return t.clusters[p] }

func (t *tableau) GameOver() bool {
	_, over := t.turn.(GameOverTurn)
	return over
}

// withRoute returns a copy of the owner table with one route claimed.
func (t *tableau) withRoute(id RouteID, p Player) []Player {
	owners := make([]Player, len(t.routeOwner))
	copy(owners, t.routeOwner)
	owners[id] = p
	return owners
}

// drawPileEmpty reports whether a face-down draw is impossible: nothing left
// in the pile and nothing in the discard to reshuffle.
func (t *tableau) drawPileEmpty() bool {
	return t.trainPileSize+t.discarded.Total() == 0
}

// routeBuildable applies the parallel route rule: a built route blocks its
// parallels entirely below the player minimum, and blocks only the owner's
// own parallels at or above it.
func (t *tableau) routeBuildable(id RouteID, p Player) bool {
	if t.routeOwner[id] != NoPlayer {
		return false
	}
	if len(t.box.Players) >= t.box.DoubleRoutesMinPlayers {
		for _, par := range t.box.ParallelRoutes(id) {
			if t.routeOwner[par] == p {
				return false
			}
		}
		return true
	}
	for _, par := range t.box.ParallelRoutes(id) {
		if t.routeOwner[par] != NoPlayer {
			return false
		}
	}
	return true
}

// buildCardSets enumerates the ways a hand can pay for a route: for each
// usable color, every split between color cards and wildcards, plus the all
// wildcard payment.
func buildCardSets(box *Box, route Route, hand CardSet, yield func(CardSet) bool) bool {
	colors := []Color{route.Color}
	if route.Color == AnyColor {
		colors = colors[:0]
		for c := 0; c < box.NumColors(); c++ {
			colors = append(colors, Color(c))
		}
	}
	for _, color := range colors {
		maxColor := min(hand[color], route.Length)
		maxWild := min(hand[Wildcard], route.Length-1)
		for colorCards := route.Length - maxWild; colorCards <= maxColor; colorCards++ {
			if colorCards <= 0 {
				continue
			}
			var cards CardSet
			cards[color] = colorCards
			cards[Wildcard] = route.Length - colorCards
			if !yield(cards) {
				return false
			}
		}
	}
	if hand[Wildcard] >= route.Length {
		var cards CardSet
		cards[Wildcard] = route.Length
		if !yield(cards) {
			return false
		}
	}
	return true
}

// faceUpDrawActions lists the train card draws available: each face-up color,
// wildcards excluded on the second draw, plus the face-down draw when the
// pile can produce a card.
func (t *tableau) faceUpDrawActions(second bool) []LegalAction {
	var actions []LegalAction
	for c, count := range t.faceUp {
		if count > 0 && !(second && Color(c) == Wildcard) {
			actions = append(actions, LegalAction{
				Action:      TrainCardPickAction{DrawKnown: true, Selected: Color(c)},
				Probability: 1,
			})
		}
	}
	if !t.drawPileEmpty() {
		actions = append(actions, LegalAction{Action: TrainCardPickAction{}, Probability: 1})
	}
	return actions
}

// trainDealActions samples the distribution of a count-card deal from the
// pile, folding the discard in when the pile is short. Sampling is seeded
// from the state hash so identical states enumerate identical chances.
func trainDealActions(t *tableau, count int, seed uint64) []LegalAction {
	pile := t.trainPile
	if t.trainPileSize < count {
		pile = Merge(pile, t.discarded)
	}
	available := min(count, pile.Total())

	results := make(map[CardSet]int)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < mcDealSamples; i++ {
		results[SampleCards(rng, pile, available)]++
	}
	actions := make([]LegalAction, 0, len(results))
	for cards, n := range results {
		actions = append(actions, LegalAction{
			Action:      TrainCardDealAction{Cards: cards, Count: available},
			Probability: float64(n) / mcDealSamples,
		})
	}
	return actions
}

// destinationDealActions enumerates every possible destination card deal from
// the pile, each equally likely.
func destinationDealActions(pile DestinationCardSet, count int) []LegalAction {
	prob := 1 / Binomial(pile.Count(), count)
	var actions []LegalAction
	pile.Combinations(count, func(cards DestinationCardSet) bool {
		actions = append(actions, LegalAction{
			Action:      DestinationCardDealAction{Cards: cards, Count: count},
			Probability: prob,
		})
		return true
	})
	return actions
}

// selectionActions enumerates the subsets of unselected destination cards a
// player may keep, from the range minimum up to keeping all of them.
func selectionActions(unselected DestinationCardSet, minKeep int) []LegalAction {
	var actions []LegalAction
	for keep := minKeep; keep <= unselected.Count(); keep++ {
		unselected.Combinations(keep, func(cards DestinationCardSet) bool {
			actions = append(actions, LegalAction{
				Action:      DestinationCardSelectionAction{Selected: cards, Count: keep},
				Probability: 1,
			})
			return true
		})
	}
	return actions
}

// SampleCards draws n cards from the pile without replacement.
func SampleCards(rng *rand.Rand, pile CardSet, n int) CardSet {
	var drawn CardSet
	total := pile.Total()
	for i := 0; i < n && total > 0; i++ {
		pick := rng.Intn(total)
		for c, count := range pile {
			if pick < count {
				pile[c]--
				drawn[c]++
				break
			}
			pick -= count
		}
		total--
	}
	return drawn
}

// ExactDrawProbability is the probability that n cards drawn from the pile
// without replacement are exactly the multiset drawn, where n is the size of
// drawn.
func ExactDrawProbability(drawn, pile CardSet) float64 {
	p := 1.0
	for c, count := range drawn {
		p *= Binomial(pile[c], count)
	}
	return p / Binomial(pile.Total(), drawn.Total())
}

// completedBy splits a set of destination cards by whether the clusters join
// their endpoints.
func completedBy(box *Box, cl Clusters, cards DestinationCardSet) (complete, incomplete DestinationCardSet) {
	for _, id := range cards.IDs() {
		card := box.DestinationCards[id]
		if cl.Joined(card.A, card.B) {
			complete = complete.Add(id)
		} else {
			incomplete = incomplete.Add(id)
		}
	}
	return complete, incomplete
}

// destinationValueSum totals the point values of a set of destination cards.
func destinationValueSum(box *Box, cards DestinationCardSet) int {
	sum := 0
	for _, id := range cards.IDs() {
		sum += box.DestinationCards[id].Value
	}
	return sum
}

func hashInt(h hash.Hash64, v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func hashCardSet(h hash.Hash64, s CardSet) {
	for _, n := range s {
		hashInt(h, n)
	}
}

func hashTurn(h hash.Hash64, turn TurnState) {
	switch t := turn.(type) {
	case InitialTurn:
		hashInt(h, 1)
	case PlayerInitialDestinationCardChoiceTurn:
		hashInt(h, 2)
		hashInt(h, int(t.Player))
	case RevealInitialDestinationCardChoicesTurn:
		hashInt(h, 3)
	case PlayerStartTurn:
		hashInt(h, 4)
		hashInt(h, int(t.Player))
		hashInt(h, int(t.LastTurnForced))
	case PlayerTrainCardDrawMidTurn:
		hashInt(h, 5)
		hashInt(h, int(t.Player))
		hashInt(h, int(t.LastTurnForced))
	case PlayerDestinationCardDrawMidTurn:
		hashInt(h, 6)
		hashInt(h, int(t.Player))
		hashInt(h, int(t.LastTurnForced))
	case DestinationCardDealTurn:
		hashInt(h, 7)
		hashInt(h, int(t.To))
		hashInt(h, int(t.LastTurnForced))
	case TrainCardDealTurn:
		hashInt(h, 8)
		hashInt(h, t.Count)
		hashInt(h, int(t.To))
		hashInt(h, t.Redeals)
		hashTurn(h, t.Next)
	case RevealFinalDestinationCardsTurn:
		hashInt(h, 9)
	case GameOverTurn:
		hashInt(h, 10)
	}
}

func (t *tableau) hashInto(h hash.Hash64) {
	hashCardSet(h, t.discarded)
	hashCardSet(h, t.faceUp)
	hashCardSet(h, t.trainPile)
	hashInt(h, t.trainPileSize)
	hashInt(h, int(t.destPile))
	hashInt(h, t.destPileSize)
	for _, owner := range t.routeOwner {
		hashInt(h, int(owner))
	}
	hashTurn(h, t.turn)
}

func hashHandView(h hash.Hash64, v HandView) {
	hashInt(h, int(v.KnownDestinationCards))
	hashInt(h, v.DestinationCardsCount)
	hashInt(h, int(v.KnownUnselectedDestinationCards))
	hashInt(h, v.UnselectedDestinationCardsCount)
	hashCardSet(h, v.KnownTrainCards)
	hashInt(h, v.TrainCardsCount)
	hashInt(h, v.RemainingTrains)
	hashInt(h, v.KnownPoints)
	hashInt(h, int(v.KnownCompleteDestinationCards))
	hashInt(h, int(v.KnownIncompleteDestinationCards))
	if v.Known {
		hashInt(h, 1)
	} else {
		hashInt(h, 0)
	}
}

func newHasher() hash.Hash64 { return fnv.New64a() }
