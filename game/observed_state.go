package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// ObservedState is the game as one player sees it. Opponents' hidden cards
// live in the pile distributions: trainPile holds every train card whose
// location the perspective cannot see, and destPile every destination card
// that could still be in the pile or a hidden hand.
//
// An observed state consumes censored actions; CensorAction turns the
// engine's authoritative action into what a given observer sees.
type ObservedState struct {
	tableau
	perspective Player
	hands       [MaxPlayers]HandView
}

// NewObservedState sets up a fresh game seen from one player's seat.
func NewObservedState(box *Box, perspective Player) *ObservedState {
	s := &ObservedState{tableau: newTableau(box), perspective: perspective}
	for p := range box.Players {
		s.hands[p] = HandView{
			RemainingTrains: box.StartingTrains,
			KnownPoints:     box.StartingScore,
			Known:           Player(p) == perspective,
		}
	}
	return s
}

func (s *ObservedState) Perspective() Player      { return s.perspective }
func (s *ObservedState) Hand(p Player) HandView   { return s.hands[p] }
func (s *ObservedState) HandIsKnown(p Player) bool { return s.hands[p].Known }

func (s *ObservedState) NextState(a Action) State { return s.Apply(a) }

func (s *ObservedState) clone() *ObservedState {
	next := *s
	return &next
}

// CensorAction strips from an action whatever the observer cannot see: cards
// dealt into an opponent's hand, and which destination cards an opponent
// kept. Initial selections lose even their count, which the reveal turn later
// announces.
func CensorAction(turn TurnState, a Action, observer Player) Action {
	switch t := turn.(type) {
	case InitialTurn:
		deal, ok := a.(InitialDealAction)
		if !ok {
			return a
		}
		censored := InitialDealAction{FaceUp: deal.FaceUp}
		censored.TrainCards[observer] = deal.TrainCards[observer]
		censored.DestinationCards[observer] = deal.DestinationCards[observer]
		return censored
	case PlayerInitialDestinationCardChoiceTurn:
		if _, ok := a.(DestinationCardSelectionAction); ok && t.Player != observer {
			return DestinationCardSelectionAction{Count: HiddenCount}
		}
	case PlayerDestinationCardDrawMidTurn:
		if sel, ok := a.(DestinationCardSelectionAction); ok && t.Player != observer {
			return DestinationCardSelectionAction{Count: sel.Count}
		}
	case DestinationCardDealTurn:
		if deal, ok := a.(DestinationCardDealAction); ok && t.To != observer {
			return DestinationCardDealAction{Count: deal.Count}
		}
	case TrainCardDealTurn:
		if deal, ok := a.(TrainCardDealAction); ok && t.To != NoPlayer && t.To != observer {
			return TrainCardDealAction{Count: deal.Count}
		}
	}
	return a
}

// Apply plays one censored action and returns the resulting state. Like
// KnownState.Apply it panics when the action's type does not fit the turn.
func (s *ObservedState) Apply(action Action) *ObservedState {
	switch turn := s.turn.(type) {
	case InitialTurn:
		a, ok := action.(InitialDealAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyInitialDeal(a)

	case PlayerInitialDestinationCardChoiceTurn:
		a, ok := action.(DestinationCardSelectionAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyInitialSelection(turn, a)

	case RevealInitialDestinationCardChoicesTurn:
		a, ok := action.(RevealDestinationCardSelectionsAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		next := s.clone()
		dealt := s.box.StartingDestCardsRange[1]
		for p := range s.box.Players {
			if s.hands[p].Known {
				continue
			}
			next.hands[p].DestinationCardsCount = a.Kept[p]
			next.destPileSize += dealt - a.Kept[p]
		}
		next.turn = PlayerStartTurn{Player: 0, LastTurnForced: NoPlayer}
		return next

	case PlayerStartTurn:
		switch a := action.(type) {
		case PassAction:
			next := s.clone()
			next.turn = s.afterTurnOf(turn.Player, turn.LastTurnForced)
			return next
		case BuildAction:
			return s.applyBuild(turn.Player, turn.LastTurnForced, a)
		case TrainCardPickAction:
			return s.applyTrainPick(turn.Player, turn.LastTurnForced, a, false)
		case DestinationCardPickAction:
			next := s.clone()
			next.turn = DestinationCardDealTurn{To: turn.Player, LastTurnForced: turn.LastTurnForced}
			return next
		default:
			panic(unexpectedAction(action, s.turn))
		}

	case PlayerTrainCardDrawMidTurn:
		switch a := action.(type) {
		case TrainCardPickAction:
			return s.applyTrainPick(turn.Player, turn.LastTurnForced, a, true)
		case PassAction:
			next := s.clone()
			next.turn = s.afterTurnOf(turn.Player, turn.LastTurnForced)
			return next
		default:
			panic(unexpectedAction(action, s.turn))
		}

	case PlayerDestinationCardDrawMidTurn:
		a, ok := action.(DestinationCardSelectionAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applySelection(turn.Player, turn.LastTurnForced, a)

	case DestinationCardDealTurn:
		a, ok := action.(DestinationCardDealAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyDestinationDeal(turn, a)

	case TrainCardDealTurn:
		a, ok := action.(TrainCardDealAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyTrainDeal(turn, a)

	case RevealFinalDestinationCardsTurn:
		a, ok := action.(RevealFinalDestinationCardsAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyFinalReveal(a)

	case GameOverTurn:
		if _, ok := action.(PassAction); !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s

	default:
		panic(fmt.Sprintf("unhandled turn type %T", s.turn))
	}
}

func (s *ObservedState) afterTurnOf(p Player, forced Player) TurnState {
	return PlayerStartTurnOrEnd(s.box.NextPlayer(p), forcedAfter(s.box, p, forced, s.hands[p].RemainingTrains))
}

func (s *ObservedState) applyInitialDeal(a InitialDealAction) *ObservedState {
	box := s.box
	me := s.perspective
	next := s.clone()
	for p := range box.Players {
		if Player(p) == me || s.hands[p].Known {
			next.hands[p].KnownTrainCards = a.TrainCards[p]
			next.hands[p].TrainCardsCount = a.TrainCards[p].Total()
			next.hands[p].KnownUnselectedDestinationCards = a.DestinationCards[p]
			next.hands[p].UnselectedDestinationCardsCount = a.DestinationCards[p].Count()
			next.trainPile = mustRemove(next.trainPile, a.TrainCards[p])
			next.destPile = next.destPile.Diff(a.DestinationCards[p])
		} else {
			next.hands[p].TrainCardsCount = box.StartingTrainCards
			next.hands[p].UnselectedDestinationCardsCount = box.StartingDestCardsRange[1]
		}
	}
	next.faceUp = a.FaceUp
	next.trainPile = mustRemove(next.trainPile, a.FaceUp)
	next.trainPileSize = s.trainPileSize -
		len(box.Players)*box.StartingTrainCards - a.FaceUp.Total()
	next.destPileSize = s.destPileSize - len(box.Players)*box.StartingDestCardsRange[1]
	next.turn = PlayerInitialDestinationCardChoiceTurn{Player: 0}
	return next
}

func (s *ObservedState) applyInitialSelection(turn PlayerInitialDestinationCardChoiceTurn, a DestinationCardSelectionAction) *ObservedState {
	p := turn.Player
	next := s.clone()
	if s.hands[p].Known {
		returned := s.hands[p].KnownUnselectedDestinationCards.Diff(a.Selected)
		next.hands[p].KnownUnselectedDestinationCards = 0
		next.hands[p].UnselectedDestinationCardsCount = 0
		next.hands[p].KnownDestinationCards = a.Selected
		next.hands[p].DestinationCardsCount = a.Selected.Count()
		next.hands[p].KnownIncompleteDestinationCards = a.Selected
		next.destPile = s.destPile.Union(returned)
		next.destPileSize = s.destPileSize + returned.Count()
	} else {
		// count hidden until the reveal; assume keep-all and correct there
		next.hands[p].DestinationCardsCount = s.hands[p].UnselectedDestinationCardsCount
		next.hands[p].UnselectedDestinationCardsCount = 0
	}
	if np := s.box.NextPlayer(p); np == 0 {
		next.turn = RevealInitialDestinationCardChoicesTurn{}
	} else {
		next.turn = PlayerInitialDestinationCardChoiceTurn{Player: np}
	}
	return next
}

func (s *ObservedState) applyBuild(p, forced Player, a BuildAction) *ObservedState {
	route := s.box.Routes[a.Route]
	hand := s.hands[p]
	newClusters := s.clusters[p].Connect(route.A, route.B)
	completed, _ := completedBy(s.box, newClusters, hand.KnownIncompleteDestinationCards)

	next := s.clone()
	known, fromHidden := Subtract(hand.KnownTrainCards, a.Cards)
	next.hands[p].KnownTrainCards = known
	next.hands[p].TrainCardsCount = hand.TrainCardsCount - a.Cards.Total()
	next.hands[p].RemainingTrains = hand.RemainingTrains - route.Length
	next.hands[p].KnownPoints = hand.KnownPoints + s.box.RoutePoints[route.Length] +
		destinationValueSum(s.box, completed)
	next.hands[p].KnownCompleteDestinationCards = hand.KnownCompleteDestinationCards.Union(completed)
	next.hands[p].KnownIncompleteDestinationCards = hand.KnownIncompleteDestinationCards.Diff(completed)
	// hidden cards spent on the build become visible in the discard
	next.trainPile = mustRemove(s.trainPile, fromHidden)
	next.discarded = Merge(s.discarded, a.Cards)
	next.routeOwner = s.withRoute(a.Route, p)
	next.clusters[p] = newClusters
	next.turn = PlayerStartTurnOrEnd(s.box.NextPlayer(p),
		forcedAfter(s.box, p, forced, next.hands[p].RemainingTrains))
	return next
}

func (s *ObservedState) applyTrainPick(p, forced Player, a TrainCardPickAction, second bool) *ObservedState {
	forced = forcedAfter(s.box, p, forced, s.hands[p].RemainingTrains)
	var after TurnState
	if second || (a.DrawKnown && a.Selected == Wildcard) {
		after = PlayerStartTurnOrEnd(s.box.NextPlayer(p), forced)
	} else {
		after = PlayerTrainCardDrawMidTurn{Player: p, LastTurnForced: forced}
	}

	next := s.clone()
	if a.DrawKnown {
		if s.faceUp[a.Selected] == 0 {
			panic("picked face-up card that is not there")
		}
		next.hands[p].KnownTrainCards = s.hands[p].KnownTrainCards.With(a.Selected, 1)
		next.hands[p].TrainCardsCount = s.hands[p].TrainCardsCount + 1
		next.faceUp = s.faceUp.With(a.Selected, -1)
		next.turn = TrainCardDealTurn{Count: 1, To: NoPlayer, Next: after}
	} else {
		next.turn = TrainCardDealTurn{Count: 1, To: p, Next: after}
	}
	return next
}

func (s *ObservedState) applySelection(p, forced Player, a DestinationCardSelectionAction) *ObservedState {
	next := s.clone()
	if s.hands[p].Known {
		returned := s.hands[p].KnownUnselectedDestinationCards.Diff(a.Selected)
		completed, incomplete := completedBy(s.box, s.clusters[p], a.Selected)
		next.hands[p].KnownUnselectedDestinationCards = 0
		next.hands[p].UnselectedDestinationCardsCount = 0
		next.hands[p].KnownDestinationCards = s.hands[p].KnownDestinationCards.Union(a.Selected)
		next.hands[p].DestinationCardsCount = s.hands[p].DestinationCardsCount + a.Selected.Count()
		next.hands[p].KnownCompleteDestinationCards = s.hands[p].KnownCompleteDestinationCards.Union(completed)
		next.hands[p].KnownIncompleteDestinationCards = s.hands[p].KnownIncompleteDestinationCards.Union(incomplete)
		next.hands[p].KnownPoints = s.hands[p].KnownPoints + destinationValueSum(s.box, completed)
		next.destPile = s.destPile.Union(returned)
		next.destPileSize = s.destPileSize + returned.Count()
	} else {
		returned := s.hands[p].UnselectedDestinationCardsCount - a.Count
		next.hands[p].DestinationCardsCount = s.hands[p].DestinationCardsCount + a.Count
		next.hands[p].UnselectedDestinationCardsCount = 0
		next.destPileSize = s.destPileSize + returned
	}
	next.turn = PlayerStartTurnOrEnd(s.box.NextPlayer(p), forced)
	return next
}

func (s *ObservedState) applyDestinationDeal(turn DestinationCardDealTurn, a DestinationCardDealAction) *ObservedState {
	next := s.clone()
	if s.hands[turn.To].Known {
		next.hands[turn.To].KnownUnselectedDestinationCards = a.Cards
		next.hands[turn.To].UnselectedDestinationCardsCount = a.Cards.Count()
		next.destPile = s.destPile.Diff(a.Cards)
		next.destPileSize = s.destPileSize - a.Cards.Count()
	} else {
		next.hands[turn.To].UnselectedDestinationCardsCount = a.Count
		next.destPileSize = s.destPileSize - a.Count
	}
	next.turn = PlayerDestinationCardDrawMidTurn{Player: turn.To, LastTurnForced: turn.LastTurnForced}
	return next
}

func (s *ObservedState) applyTrainDeal(turn TrainCardDealTurn, a TrainCardDealAction) *ObservedState {
	next := s.clone()
	if s.trainPileSize < turn.Count && s.discarded.Total() > 0 {
		// reshuffling the discard puts its cards back out of sight
		next.trainPile = Merge(s.trainPile, s.discarded)
		next.trainPileSize = s.trainPileSize + s.discarded.Total()
		next.discarded = CardSet{}
	}

	switch {
	case turn.To == NoPlayer:
		next.trainPile = mustRemove(next.trainPile, a.Cards)
		next.trainPileSize -= a.Cards.Total()
		next.faceUp = Merge(s.faceUp, a.Cards)
		if next.shouldClearFaceUp(turn.Redeals) {
			next.discarded = Merge(next.discarded, next.faceUp)
			next.faceUp = CardSet{}
			next.turn = TrainCardDealTurn{
				Count:   s.box.FaceUpTrainCards,
				To:      NoPlayer,
				Next:    turn.Next,
				Redeals: turn.Redeals + 1,
			}
			return next
		}
	case a.Cards.Total() > 0 || a.Count == 0:
		// a visible deal: the perspective's own draw, or a simulated draw
		// for a hand assumed known
		next.trainPile = mustRemove(next.trainPile, a.Cards)
		next.trainPileSize -= a.Cards.Total()
		next.hands[turn.To].KnownTrainCards = Merge(s.hands[turn.To].KnownTrainCards, a.Cards)
		next.hands[turn.To].TrainCardsCount = s.hands[turn.To].TrainCardsCount + a.Cards.Total()
	default:
		// hidden deal into an opponent's hand: the cards stay out of sight
		next.trainPileSize -= a.Count
		next.hands[turn.To].TrainCardsCount = s.hands[turn.To].TrainCardsCount + a.Count
	}
	next.turn = turn.Next
	return next
}

func (s *ObservedState) applyFinalReveal(a RevealFinalDestinationCardsAction) *ObservedState {
	next := s.clone()
	for p := range s.box.Players {
		cards := a.Cards[p]
		if s.hands[p].Known {
			next.hands[p].KnownPoints -= destinationValueSum(s.box, s.hands[p].KnownIncompleteDestinationCards)
			continue
		}
		newlyVisible := cards.Diff(s.hands[p].KnownDestinationCards)
		complete, incomplete := completedBy(s.box, s.clusters[p], cards)
		next.hands[p].KnownDestinationCards = cards
		next.hands[p].DestinationCardsCount = cards.Count()
		next.hands[p].KnownCompleteDestinationCards = complete
		next.hands[p].KnownIncompleteDestinationCards = incomplete
		next.hands[p].KnownPoints = s.hands[p].KnownPoints +
			destinationValueSum(s.box, complete) - destinationValueSum(s.box, incomplete)
		next.destPile = next.destPile.Diff(newlyVisible)
	}
	next.turn = GameOverTurn{}
	return next
}

func (s *ObservedState) LegalActions() []LegalAction {
	switch turn := s.turn.(type) {
	case InitialTurn:
		return nil

	case PlayerInitialDestinationCardChoiceTurn:
		if !s.hands[turn.Player].Known {
			return []LegalAction{{Action: DestinationCardSelectionAction{Count: HiddenCount}, Probability: 1}}
		}
		return selectionActions(s.hands[turn.Player].KnownUnselectedDestinationCards, s.box.StartingDestCardsRange[0])

	case RevealInitialDestinationCardChoicesTurn:
		return s.revealChoiceActions()

	case PlayerStartTurn:
		var actions []LegalAction
		if s.destPileSize > 0 {
			actions = append(actions, LegalAction{Action: DestinationCardPickAction{}, Probability: 1})
		}
		actions = append(actions, s.faceUpDrawActions(false)...)
		actions = append(actions, LegalAction{Action: PassAction{}, Probability: 1})
		actions = append(actions, s.buildActions(turn.Player)...)
		return actions

	case PlayerTrainCardDrawMidTurn:
		actions := s.faceUpDrawActions(true)
		if len(actions) == 0 {
			actions = append(actions, LegalAction{Action: PassAction{}, Probability: 1})
		}
		return actions

	case PlayerDestinationCardDrawMidTurn:
		if !s.hands[turn.Player].Known {
			kept := s.hands[turn.Player].UnselectedDestinationCardsCount
			var actions []LegalAction
			choices := kept - s.box.DealtDestCardsRange[0] + 1
			for keep := s.box.DealtDestCardsRange[0]; keep <= kept; keep++ {
				actions = append(actions, LegalAction{
					Action:      DestinationCardSelectionAction{Count: keep},
					Probability: 1 / float64(choices),
				})
			}
			return actions
		}
		return selectionActions(s.hands[turn.Player].KnownUnselectedDestinationCards, s.box.DealtDestCardsRange[0])

	case DestinationCardDealTurn:
		count := min(s.box.DealtDestCardsRange[1], s.destPileSize)
		if !s.hands[turn.To].Known {
			return []LegalAction{{Action: DestinationCardDealAction{Count: count}, Probability: 1}}
		}
		return destinationDealActions(s.destPile, count)

	case TrainCardDealTurn:
		if turn.To != NoPlayer && !s.hands[turn.To].Known {
			available := min(turn.Count, s.trainPileSize+s.discarded.Total())
			return []LegalAction{{Action: TrainCardDealAction{Count: available}, Probability: 1}}
		}
		return trainDealActions(&s.tableau, turn.Count, s.Hash())

	case RevealFinalDestinationCardsTurn:
		return s.finalRevealActions()

	case GameOverTurn:
		return []LegalAction{{Action: PassAction{}, Probability: 1}}

	default:
		panic(fmt.Sprintf("unhandled turn type %T", s.turn))
	}
}

// revealChoiceActions enumerates the possible initial keep counts of every
// hidden hand, each combination equally likely.
func (s *ObservedState) revealChoiceActions() []LegalAction {
	box := s.box
	dealt := box.StartingDestCardsRange[1]
	minKeep := box.StartingDestCardsRange[0]

	actions := []LegalAction{{
		Action:      RevealDestinationCardSelectionsAction{},
		Probability: 1,
	}}
	for p := range box.Players {
		var kept []int
		if s.hands[p].Known {
			kept = []int{s.hands[p].KnownDestinationCards.Count()}
		} else {
			for k := minKeep; k <= dealt; k++ {
				kept = append(kept, k)
			}
		}
		var expanded []LegalAction
		for _, la := range actions {
			base := la.Action.(RevealDestinationCardSelectionsAction)
			for _, k := range kept {
				next := base
				next.Kept[p] = k
				expanded = append(expanded, LegalAction{
					Action:      next,
					Probability: la.Probability / float64(len(kept)),
				})
			}
		}
		actions = expanded
	}
	return actions
}

// finalRevealActions enumerates the possible destination card assignments of
// every hidden hand, drawing each in turn from the cards still out of sight.
func (s *ObservedState) finalRevealActions() []LegalAction {
	box := s.box
	var actions []LegalAction

	var assign func(p int, pool DestinationCardSet, reveal RevealFinalDestinationCardsAction, prob float64)
	assign = func(p int, pool DestinationCardSet, reveal RevealFinalDestinationCardsAction, prob float64) {
		if p == len(box.Players) {
			actions = append(actions, LegalAction{Action: reveal, Probability: prob})
			return
		}
		if s.hands[p].Known {
			reveal.Cards[p] = s.hands[p].KnownDestinationCards
			assign(p+1, pool, reveal, prob)
			return
		}
		known := s.hands[p].KnownDestinationCards
		missing := s.hands[p].DestinationCardsCount - known.Count()
		candidates := pool.Diff(known)
		weight := 1 / Binomial(candidates.Count(), missing)
		candidates.Combinations(missing, func(extra DestinationCardSet) bool {
			reveal.Cards[p] = known.Union(extra)
			assign(p+1, pool.Diff(extra), reveal, prob*weight)
			return true
		})
	}
	assign(0, s.destPile, RevealFinalDestinationCardsAction{}, 1)
	return actions
}

// buildActions lists the builds the current player could make. For a hidden
// hand the candidate payments draw on the cards out of sight, weighted by the
// chance the player actually holds them.
func (s *ObservedState) buildActions(p Player) []LegalAction {
	hand := s.hands[p]
	potential := hand.KnownTrainCards
	unknown := hand.TrainCardsCount - hand.KnownTrainCards.Total()
	if !hand.Known {
		for c, n := range s.trainPile {
			potential[c] += min(n, unknown)
		}
	}

	var actions []LegalAction
	for _, route := range s.box.Routes {
		if route.Length > hand.RemainingTrains || !s.routeBuildable(route.ID, p) {
			continue
		}
		buildCardSets(s.box, route, potential, func(cards CardSet) bool {
			prob := 1.0
			if !hand.Known {
				_, fromHidden := Subtract(hand.KnownTrainCards, cards)
				prob = ProbabilityOfCards(fromHidden, unknown, s.trainPile)
				if prob == 0 {
					return true
				}
			}
			actions = append(actions, LegalAction{
				Action:      BuildAction{Route: route.ID, Cards: cards},
				Probability: prob,
			})
			return true
		})
	}
	return actions
}

// EachAssumedHand enumerates completions of player p's hidden cards. Each
// completion's weight combines the chance of the deal and the ratio of route
// building probabilities, unnormalized.
func (s *ObservedState) EachAssumedHand(p Player, rbpc RouteBuildProbability, yield func(State, float64) bool) {
	if s.hands[p].Known {
		yield(s, 1)
		return
	}
	if rbpc == nil {
		rbpc = UnitRouteBuildProbability
	}
	hand := s.hands[p]
	missingDest := hand.DestinationCardsCount - hand.KnownDestinationCards.Count()
	missingUnselected := hand.UnselectedDestinationCardsCount - hand.KnownUnselectedDestinationCards.Count()
	missingTrains := hand.TrainCardsCount - hand.KnownTrainCards.Total()
	baseline := rbpc(0, false)

	stop := false
	destPool := s.destPile
	destWeight := 1 / Binomial(destPool.Count(), missingDest)
	destPool.Combinations(missingDest, func(dest DestinationCardSet) bool {
		destCards := hand.KnownDestinationCards.Union(dest)
		build := rbpc(destCards, true) / baseline

		unselPool := destPool.Diff(dest)
		unselWeight := destWeight / Binomial(unselPool.Count(), missingUnselected)
		unselPool.Combinations(missingUnselected, func(unsel DestinationCardSet) bool {
			eachMultiset(s.trainPile, missingTrains, func(trains CardSet) bool {
				weight := unselWeight * build * ExactDrawProbability(trains, s.trainPile)
				if weight == 0 {
					return true
				}
				if !yield(s.assume(p, dest, unsel, trains), weight) {
					stop = true
				}
				return !stop
			})
			return !stop
		})
		return !stop
	})
}

// SampleAssumedHand draws one completion of player p's hidden cards from the
// deal distribution, ignoring route building evidence.
func (s *ObservedState) SampleAssumedHand(p Player, rng *rand.Rand) *ObservedState {
	if s.hands[p].Known {
		return s
	}
	hand := s.hands[p]
	missingDest := hand.DestinationCardsCount - hand.KnownDestinationCards.Count()
	missingUnselected := hand.UnselectedDestinationCardsCount - hand.KnownUnselectedDestinationCards.Count()
	missingTrains := hand.TrainCardsCount - hand.KnownTrainCards.Total()

	pool := s.destPile.IDs()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	var dest, unsel DestinationCardSet
	for _, id := range pool[:missingDest] {
		dest = dest.Add(id)
	}
	for _, id := range pool[missingDest : missingDest+missingUnselected] {
		unsel = unsel.Add(id)
	}
	trains := SampleCards(rng, s.trainPile, missingTrains)
	return s.assume(p, dest, unsel, trains)
}

// assume makes player p's hand fully known by granting them the given hidden
// cards, pulling them out of the pile distributions.
func (s *ObservedState) assume(p Player, dest, unsel DestinationCardSet, trains CardSet) *ObservedState {
	next := s.clone()
	hand := s.hands[p]
	destCards := hand.KnownDestinationCards.Union(dest)
	complete, incomplete := completedBy(s.box, s.clusters[p], destCards)

	next.hands[p].KnownDestinationCards = destCards
	next.hands[p].KnownUnselectedDestinationCards = hand.KnownUnselectedDestinationCards.Union(unsel)
	next.hands[p].KnownTrainCards = Merge(hand.KnownTrainCards, trains)
	next.hands[p].KnownCompleteDestinationCards = complete
	next.hands[p].KnownIncompleteDestinationCards = incomplete
	next.hands[p].KnownPoints = hand.KnownPoints +
		destinationValueSum(s.box, complete.Diff(hand.KnownCompleteDestinationCards))
	next.hands[p].Known = true
	next.trainPile = mustRemove(s.trainPile, trains)
	next.destPile = s.destPile.Diff(dest).Diff(unsel)
	return next
}

func (s *ObservedState) Winner() Player {
	best := Player(0)
	for p := 1; p < len(s.box.Players); p++ {
		if s.hands[p].KnownPoints > s.hands[best].KnownPoints {
			best = Player(p)
		}
	}
	return best
}

func (s *ObservedState) Hash() uint64 {
	h := newHasher()
	hashInt(h, 2)
	hashInt(h, int(s.perspective))
	s.tableau.hashInto(h)
	for p := range s.box.Players {
		hashHandView(h, s.hands[p])
	}
	return h.Sum64()
}

// eachMultiset enumerates every multiset of the given size drawable from the
// pile, stopping early if yield returns false.
func eachMultiset(pile CardSet, size int, yield func(CardSet) bool) bool {
	var walk func(c int, remaining int, chosen CardSet) bool
	walk = func(c int, remaining int, chosen CardSet) bool {
		if remaining == 0 {
			return yield(chosen)
		}
		if c > int(Wildcard) {
			return true
		}
		rest := 0
		for i := c + 1; i < len(pile); i++ {
			rest += pile[i]
		}
		for take := max(0, remaining-rest); take <= min(pile[c], remaining); take++ {
			chosen[c] = take
			if !walk(c+1, remaining-take, chosen) {
				return false
			}
		}
		chosen[c] = 0
		return true
	}
	return walk(0, size, CardSet{})
}
