// Package searcher implements the decision-making side of the game: utility
// functions over states, and expectimax, Monte Carlo expectiminimax and MCTS
// searchers built on them.
package searcher

import (
	"math"

	"trains/game"
)

// Utility is a per-player value of a state, indexed by seat.
type Utility [game.MaxPlayers]float64

func (u Utility) Add(o Utility) Utility {
	for i := range u {
		u[i] += o[i]
	}
	return u
}

func (u Utility) Scale(k float64) Utility {
	for i := range u {
		u[i] *= k
	}
	return u
}

// UtilityFunction scores a state for every player.
type UtilityFunction interface {
	Utility(s game.State) Utility
}

// BuildRoutesUtility rewards only built routes and hoarding one color. Meant
// for tests, where its simplicity makes optimal play predictable.
type BuildRoutesUtility struct{}

func (BuildRoutesUtility) Utility(s game.State) Utility {
	box := s.Box()
	var u Utility
	for _, route := range box.Routes {
		if owner := s.RouteOwner(route.ID); owner != game.NoPlayer {
			u[owner] += float64(box.RoutePoints[route.Length])
		}
	}
	for p := range box.Players {
		maxCards := 0
		for _, n := range s.Hand(game.Player(p)).KnownTrainCards {
			maxCards = max(maxCards, n)
		}
		u[p] += float64(maxCards) * 0.75
	}
	return u
}

// ExpectedScoreUtility estimates each player's final score. It projects the
// remaining turns of the game from everyone's trains and cards, estimates the
// cards and builds needed to finish the player's destination cards, turns
// that into a completion probability, and combines route income, destination
// values and points already scored.
type ExpectedScoreUtility struct {
	// Discount scales points not yet scored.
	Discount float64
	// DistanceNormalizer damps large summed distances, since per-card
	// distances overlap on real boards.
	DistanceNormalizer func(float64) float64
	// FinishProbability maps remaining and needed turns to the chance of
	// completing the destination cards in time.
	FinishProbability func(remaining, needed float64) float64
}

// NewExpectedScoreUtility returns the estimator with the tuned defaults.
func NewExpectedScoreUtility() *ExpectedScoreUtility {
	return &ExpectedScoreUtility{
		Discount:           1,
		DistanceNormalizer: func(x float64) float64 { return math.Pow(x, 0.9) },
		FinishProbability: func(remaining, needed float64) float64 {
			return 1 / (1 + math.Exp(-3.3*(1-needed/remaining)-0.5*remaining+2.1))
		},
	}
}

// averageCardsPerDrawTurn is the expected cards gained by a draw turn, a
// little under two because wildcard face-up picks end the turn early.
const averageCardsPerDrawTurn = 1.75

func averageRouteLength(box *game.Box) float64 {
	total := 0
	for _, r := range box.Routes {
		total += r.Length
	}
	return float64(total) / float64(len(box.Routes))
}

func averageRouteValue(box *game.Box) float64 {
	total := 0
	for _, r := range box.Routes {
		total += box.RoutePoints[r.Length]
	}
	return float64(total) / float64(len(box.Routes))
}

func averageLeftoverTrainCards(box *game.Box) float64 {
	return float64(box.NumColors()) / 3
}

func averageKeptDestinationCards(box *game.Box) float64 {
	return float64(box.DealtDestCardsRange[0]+box.DealtDestCardsRange[1]) / 2
}

func (f *ExpectedScoreUtility) Utility(s game.State) Utility {
	return f.utility(s, f.destinationScore)
}

// utility carries the shared scaffolding of the two estimator variants, with
// the destination scoring swapped in.
func (f *ExpectedScoreUtility) utility(s game.State, destScore destinationScorer) Utility {
	box := s.Box()
	var extraTrainCards, extraDestCards [game.MaxPlayers]int

	switch turn := s.Turn().(type) {
	case game.GameOverTurn:
		var u Utility
		for p := range box.Players {
			u[p] = float64(s.Hand(game.Player(p)).KnownPoints)
		}
		return u
	case game.PlayerTrainCardDrawMidTurn:
		extraTrainCards[turn.Player]++
	case game.TrainCardDealTurn:
		if turn.To != game.NoPlayer {
			extraTrainCards[turn.To]++
		}
		if mid, ok := turn.Next.(game.PlayerTrainCardDrawMidTurn); ok {
			extraTrainCards[mid.Player]++
		}
	case game.DestinationCardDealTurn:
		extraDestCards[turn.To] += box.DealtDestCardsRange[1]
	}

	remaining := f.remainingTurns(s)
	var u Utility
	for p := range box.Players {
		player := game.Player(p)
		hand := s.Hand(player)
		additional := f.routeBuildingScore(box, remaining, hand) +
			destScore(s, remaining, player, hand, extraTrainCards[p], extraDestCards[p])
		u[p] = float64(hand.KnownPoints) + f.Discount*additional
	}
	return u
}

type destinationScorer func(s game.State, remaining float64, p game.Player, hand game.HandView, extraTrains, extraDest int) float64

// remainingTurns projects how many turns the game has left: the soonest any
// player can run out of trains, counting both their build turns and the draw
// turns needed to fuel them.
func (f *ExpectedScoreUtility) remainingTurns(s game.State) float64 {
	box := s.Box()
	remaining := math.Inf(1)
	for p := range box.Players {
		hand := s.Hand(game.Player(p))
		trains := float64(hand.RemainingTrains)
		turns := trains/averageRouteLength(box) +
			(trains+averageLeftoverTrainCards(box)-float64(hand.TrainCardsCount))/averageCardsPerDrawTurn
		remaining = math.Min(remaining, turns)
	}
	return remaining
}

// routeBuildingScore estimates points still to come from plain route
// building. Splitting the remaining turns between drawing and building gives
//
//	buildTurns = (cards + turns*cardsPerDraw - leftovers) / (avgLength + cardsPerDraw)
func (f *ExpectedScoreUtility) routeBuildingScore(box *game.Box, remaining float64, hand game.HandView) float64 {
	buildTurns := (float64(hand.TrainCardsCount) +
		remaining*averageCardsPerDrawTurn -
		averageLeftoverTrainCards(box)) /
		(averageRouteLength(box) + averageCardsPerDrawTurn)
	return averageRouteValue(box) * buildTurns
}

// destinationScore estimates the net points from destination cards by summing
// each incomplete card's own shortest completion, which overcounts when cards
// overlap; the normalizer damps that.
func (f *ExpectedScoreUtility) destinationScore(s game.State, remaining float64, p game.Player, hand game.HandView, extraTrains, extraDest int) float64 {
	box := s.Box()
	unknownCount := float64(hand.DestinationCardsCount-hand.KnownDestinationCards.Count()) +
		float64(hand.UnselectedDestinationCardsCount+extraDest)*averageKeptDestinationCards(box)
	trainCardsCount := hand.TrainCardsCount + extraTrains
	hiddenHandCards := trainCardsCount - hand.KnownTrainCards.Total()
	clusters := s.PlayerClusters(p)

	knownSummed := 0.0
	for _, id := range hand.KnownIncompleteDestinationCards.IDs() {
		card := box.DestinationCards[id]
		path, ok := bestRoutePath(s, p, card.A, card.B)
		if !ok {
			knownSummed += float64(clusters.Distance(card.A, card.B))
			continue
		}
		knownSummed += float64(max(cardsNeeded(hand.KnownTrainCards, path, box)-hiddenHandCards, 0))
	}

	unknownSummed := averageRouteLength(box) * unknownCount
	totalDistance := f.DistanceNormalizer(knownSummed + unknownSummed)

	cardsToFinish := math.Max(totalDistance+averageLeftoverTrainCards(box)-float64(trainCardsCount), 0)
	needed := cardsToFinish/averageCardsPerDrawTurn + totalDistance/averageRouteLength(box)
	complete := f.FinishProbability(remaining, needed)

	knownValues := 0.0
	for _, id := range hand.KnownIncompleteDestinationCards.IDs() {
		knownValues += float64(box.DestinationCards[id].Value)
	}
	unknownValues := unknownCount * averageRouteValue(box)
	return (2*complete - 1) * (knownValues + unknownValues)
}

// ImprovedExpectedScoreUtility routes all incomplete destination cards
// jointly instead of summing per-card distances, which stops overlapping
// cards from inflating the estimate.
type ImprovedExpectedScoreUtility struct {
	ExpectedScoreUtility
}

// NewImprovedExpectedScoreUtility returns the joint-routing estimator with
// the tuned defaults.
func NewImprovedExpectedScoreUtility() *ImprovedExpectedScoreUtility {
	return &ImprovedExpectedScoreUtility{ExpectedScoreUtility: *NewExpectedScoreUtility()}
}

func (f *ImprovedExpectedScoreUtility) Utility(s game.State) Utility {
	return f.utility(s, f.destinationScore)
}

func (f *ImprovedExpectedScoreUtility) destinationScore(s game.State, remaining float64, p game.Player, hand game.HandView, extraTrains, extraDest int) float64 {
	box := s.Box()
	unknownCount := float64(hand.DestinationCardsCount-hand.KnownDestinationCards.Count()) +
		float64(hand.UnselectedDestinationCardsCount+extraDest)*averageKeptDestinationCards(box)
	trainCardsCount := hand.TrainCardsCount + extraTrains

	var pairs [][2]game.City
	for _, id := range hand.KnownIncompleteDestinationCards.IDs() {
		card := box.DestinationCards[id]
		pairs = append(pairs, [2]game.City{card.A, card.B})
	}
	knownCardsNeeded := 0
	knownDistance := 0
	for _, path := range bestRoutePaths(s, p, pairs) {
		needed := max(cardsNeeded(hand.KnownTrainCards, path, box), 0)
		distance := 0
		for _, r := range path {
			distance += r.Length
		}
		knownCardsNeeded = max(knownCardsNeeded, needed)
		knownDistance = max(knownDistance, distance)
	}

	unknownDistance := f.DistanceNormalizer(averageRouteLength(box) * unknownCount)
	unknownCardsNeeded := unknownDistance - math.Sqrt(float64(trainCardsCount))

	totalCardsNeeded := float64(knownCardsNeeded) + unknownCardsNeeded
	totalDistance := float64(knownDistance) + unknownDistance

	cardsToFinish := math.Max(totalCardsNeeded+averageLeftoverTrainCards(box)-float64(trainCardsCount), 0)
	needed := cardsToFinish/averageCardsPerDrawTurn + totalDistance/averageRouteLength(box)
	complete := f.FinishProbability(remaining, needed)

	knownValues := 0.0
	for _, id := range hand.KnownIncompleteDestinationCards.IDs() {
		knownValues += float64(box.DestinationCards[id].Value)
	}
	unknownValues := unknownCount * averageRouteValue(box)
	return (2*complete - 1) * (knownValues + unknownValues)
}

// RelativeUtility rescores a base utility as each player's margin over their
// best opponent, which is what winning actually needs.
type RelativeUtility struct {
	Base UtilityFunction
}

func (f RelativeUtility) Utility(s game.State) Utility {
	absolute := f.Base.Utility(s)
	players := len(s.Box().Players)
	var u Utility
	for p := 0; p < players; p++ {
		bestOther := math.Inf(-1)
		for o := 0; o < players; o++ {
			if o != p {
				bestOther = math.Max(bestOther, absolute[o])
			}
		}
		u[p] = absolute[p] - bestOther
	}
	return u
}
