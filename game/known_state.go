package game

import "fmt"

// KnownState is a game state with every hand visible. The engine holds one as
// the authoritative record, and searchers use them once a hidden hand has
// been assumed.
type KnownState struct {
	tableau
	hands [MaxPlayers]KnownHand
}

// NewKnownState sets up a fresh game from the box, waiting on the initial
// deal.
func NewKnownState(box *Box) *KnownState {
	s := &KnownState{tableau: newTableau(box)}
	for p := range box.Players {
		s.hands[p] = KnownHand{
			RemainingTrains: box.StartingTrains,
			Points:          box.StartingScore,
		}
	}
	return s
}

func (s *KnownState) Hand(p Player) HandView   { return s.hands[p].View() }
func (s *KnownState) FullHand(p Player) KnownHand { return s.hands[p] }
func (s *KnownState) HandIsKnown(Player) bool  { return true }

func (s *KnownState) NextState(a Action) State { return s.Apply(a) }

// Apply plays one action and returns the resulting state. It panics when the
// action's type does not fit the current turn; rule-level legality is the
// business of Validate.
func (s *KnownState) Apply(action Action) *KnownState {
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
		if _, ok := action.(RevealDestinationCardSelectionsAction); !ok {
			panic(unexpectedAction(action, s.turn))
		}
		next := s.clone()
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
			// only legal when no draw is possible
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
		next := s.clone()
		next.hands[turn.To].UnselectedDestinationCards = a.Cards
		if !a.Cards.IsSubsetOf(s.destPile) {
			panic("dealt destination cards not in the pile")
		}
		next.destPile = s.destPile.Diff(a.Cards)
		next.destPileSize = s.destPileSize - a.Cards.Count()
		next.turn = PlayerDestinationCardDrawMidTurn{Player: turn.To, LastTurnForced: turn.LastTurnForced}
		return next

	case TrainCardDealTurn:
		a, ok := action.(TrainCardDealAction)
		if !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s.applyTrainDeal(turn, a)

	case RevealFinalDestinationCardsTurn:
		if _, ok := action.(RevealFinalDestinationCardsAction); !ok {
			panic(unexpectedAction(action, s.turn))
		}
		next := s.clone()
		for p := range s.box.Players {
			next.hands[p].Points -= destinationValueSum(s.box, s.hands[p].IncompleteDestinationCards)
		}
		next.turn = GameOverTurn{}
		return next

	case GameOverTurn:
		if _, ok := action.(PassAction); !ok {
			panic(unexpectedAction(action, s.turn))
		}
		return s

	default:
		panic(fmt.Sprintf("unhandled turn type %T", s.turn))
	}
}

func (s *KnownState) clone() *KnownState {
	next := *s
	return &next
}

// afterTurnOf rotates past player p, marking p as the last turn trigger if
// their trains just dropped to the threshold.
func (s *KnownState) afterTurnOf(p Player, forced Player) TurnState {
	return PlayerStartTurnOrEnd(s.box.NextPlayer(p), forcedAfter(s.box, p, forced, s.hands[p].RemainingTrains))
}

func forcedAfter(box *Box, p, forced Player, remainingTrains int) Player {
	if forced == NoPlayer && remainingTrains <= box.TrainsToEnd {
		return p
	}
	return forced
}

func (s *KnownState) applyInitialDeal(a InitialDealAction) *KnownState {
	next := s.clone()
	var dealtTrains CardSet
	var dealtDest DestinationCardSet
	dealtDestCount := 0
	for p := range s.box.Players {
		next.hands[p].UnselectedDestinationCards = a.DestinationCards[p]
		next.hands[p].TrainCards = a.TrainCards[p]
		dealtTrains = Merge(dealtTrains, a.TrainCards[p])
		dealtDest = dealtDest.Union(a.DestinationCards[p])
		dealtDestCount += a.DestinationCards[p].Count()
	}
	dealtTrains = Merge(dealtTrains, a.FaceUp)
	next.faceUp = a.FaceUp
	next.trainPile = mustRemove(s.trainPile, dealtTrains)
	next.trainPileSize = s.trainPileSize - dealtTrains.Total()
	next.destPile = s.destPile.Diff(dealtDest)
	next.destPileSize = s.destPileSize - dealtDestCount
	next.turn = PlayerInitialDestinationCardChoiceTurn{Player: 0}
	return next
}

func (s *KnownState) applyInitialSelection(turn PlayerInitialDestinationCardChoiceTurn, a DestinationCardSelectionAction) *KnownState {
	p := turn.Player
	returned := s.hands[p].UnselectedDestinationCards.Diff(a.Selected)
	next := s.clone()
	next.hands[p].UnselectedDestinationCards = 0
	next.hands[p].DestinationCards = a.Selected
	next.hands[p].IncompleteDestinationCards = a.Selected
	next.destPile = s.destPile.Union(returned)
	next.destPileSize = s.destPileSize + returned.Count()
	if np := s.box.NextPlayer(p); np == 0 {
		next.turn = RevealInitialDestinationCardChoicesTurn{}
	} else {
		next.turn = PlayerInitialDestinationCardChoiceTurn{Player: np}
	}
	return next
}

func (s *KnownState) applyBuild(p, forced Player, a BuildAction) *KnownState {
	route := s.box.Routes[a.Route]
	hand := s.hands[p]
	newClusters := s.clusters[p].Connect(route.A, route.B)
	completed, _ := completedBy(s.box, newClusters, hand.IncompleteDestinationCards)

	next := s.clone()
	next.hands[p].TrainCards = mustRemove(hand.TrainCards, a.Cards)
	next.hands[p].RemainingTrains = hand.RemainingTrains - route.Length
	next.hands[p].Points = hand.Points + s.box.RoutePoints[route.Length] + destinationValueSum(s.box, completed)
	next.hands[p].CompleteDestinationCards = hand.CompleteDestinationCards.Union(completed)
	next.hands[p].IncompleteDestinationCards = hand.IncompleteDestinationCards.Diff(completed)
	next.discarded = Merge(s.discarded, a.Cards)
	next.routeOwner = s.withRoute(a.Route, p)
	next.clusters[p] = newClusters
	next.turn = PlayerStartTurnOrEnd(s.box.NextPlayer(p), forcedAfter(s.box, p, forced, next.hands[p].RemainingTrains))
	return next
}

func (s *KnownState) applyTrainPick(p, forced Player, a TrainCardPickAction, second bool) *KnownState {
	forced = forcedAfter(s.box, p, forced, s.hands[p].RemainingTrains)
	var after TurnState
	endsTurn := second || (a.DrawKnown && a.Selected == Wildcard)
	if endsTurn {
		after = PlayerStartTurnOrEnd(s.box.NextPlayer(p), forced)
	} else {
		after = PlayerTrainCardDrawMidTurn{Player: p, LastTurnForced: forced}
	}

	next := s.clone()
	if a.DrawKnown {
		if s.faceUp[a.Selected] == 0 {
			panic("picked face-up card that is not there")
		}
		next.hands[p].TrainCards = s.hands[p].TrainCards.With(a.Selected, 1)
		next.faceUp = s.faceUp.With(a.Selected, -1)
		next.turn = TrainCardDealTurn{Count: 1, To: NoPlayer, Next: after}
	} else {
		next.turn = TrainCardDealTurn{Count: 1, To: p, Next: after}
	}
	return next
}

func (s *KnownState) applySelection(p, forced Player, a DestinationCardSelectionAction) *KnownState {
	returned := s.hands[p].UnselectedDestinationCards.Diff(a.Selected)
	completed, incomplete := completedBy(s.box, s.clusters[p], a.Selected)

	next := s.clone()
	next.hands[p].UnselectedDestinationCards = 0
	next.hands[p].DestinationCards = s.hands[p].DestinationCards.Union(a.Selected)
	next.hands[p].CompleteDestinationCards = s.hands[p].CompleteDestinationCards.Union(completed)
	next.hands[p].IncompleteDestinationCards = s.hands[p].IncompleteDestinationCards.Union(incomplete)
	next.hands[p].Points = s.hands[p].Points + destinationValueSum(s.box, completed)
	next.destPile = s.destPile.Union(returned)
	next.destPileSize = s.destPileSize + returned.Count()
	next.turn = PlayerStartTurnOrEnd(s.box.NextPlayer(p), forced)
	return next
}

func (s *KnownState) applyTrainDeal(turn TrainCardDealTurn, a TrainCardDealAction) *KnownState {
	next := s.clone()
	if s.trainPileSize < turn.Count && s.discarded.Total() > 0 {
		next.trainPile = Merge(s.trainPile, s.discarded)
		next.trainPileSize = s.trainPileSize + s.discarded.Total()
		next.discarded = CardSet{}
	}
	next.trainPile = mustRemove(next.trainPile, a.Cards)
	next.trainPileSize -= a.Cards.Total()

	if turn.To == NoPlayer {
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
		} else {
			next.turn = turn.Next
		}
	} else {
		next.hands[turn.To].TrainCards = Merge(s.hands[turn.To].TrainCards, a.Cards)
		next.turn = turn.Next
	}
	return next
}

// maxFaceUpRedeals caps how many times in a row the wildcard rule may force
// a face-up redeal. A deck reduced to mostly wildcards would otherwise clear
// and redeal the same cards forever.
const maxFaceUpRedeals = 3

// shouldClearFaceUp applies the wildcard rule: too many face-up wildcards
// force a redeal, up to the consecutive redeal cap.
func (t *tableau) shouldClearFaceUp(redeals int) bool {
	return t.faceUp[Wildcard] >= t.box.WildcardsToClear && redeals < maxFaceUpRedeals
}

func (s *KnownState) LegalActions() []LegalAction {
	switch turn := s.turn.(type) {
	case InitialTurn:
		// the engine constructs the initial deal from its decks
		return nil

	case PlayerInitialDestinationCardChoiceTurn:
		return selectionActions(s.hands[turn.Player].UnselectedDestinationCards, s.box.StartingDestCardsRange[0])

	case RevealInitialDestinationCardChoicesTurn:
		var kept [MaxPlayers]int
		for p := range s.box.Players {
			kept[p] = s.hands[p].DestinationCards.Count()
		}
		return []LegalAction{{Action: RevealDestinationCardSelectionsAction{Kept: kept}, Probability: 1}}

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
		return selectionActions(s.hands[turn.Player].UnselectedDestinationCards, s.box.DealtDestCardsRange[0])

	case DestinationCardDealTurn:
		count := min(s.box.DealtDestCardsRange[1], s.destPileSize)
		return destinationDealActions(s.destPile, count)

	case TrainCardDealTurn:
		return trainDealActions(&s.tableau, turn.Count, s.Hash())

	case RevealFinalDestinationCardsTurn:
		var cards [MaxPlayers]DestinationCardSet
		for p := range s.box.Players {
			cards[p] = s.hands[p].DestinationCards
		}
		return []LegalAction{{Action: RevealFinalDestinationCardsAction{Cards: cards}, Probability: 1}}

	case GameOverTurn:
		return []LegalAction{{Action: PassAction{}, Probability: 1}}

	default:
		panic(fmt.Sprintf("unhandled turn type %T", s.turn))
	}
}

func (s *KnownState) buildActions(p Player) []LegalAction {
	var actions []LegalAction
	hand := s.hands[p]
	for _, route := range s.box.Routes {
		if route.Length > hand.RemainingTrains || !s.routeBuildable(route.ID, p) {
			continue
		}
		buildCardSets(s.box, route, hand.TrainCards, func(cards CardSet) bool {
			actions = append(actions, LegalAction{
				Action:      BuildAction{Route: route.ID, Cards: cards},
				Probability: 1,
			})
			return true
		})
	}
	return actions
}

// EachAssumedHand on a known state yields the state itself; every hand is
// already known.
func (s *KnownState) EachAssumedHand(_ Player, _ RouteBuildProbability, yield func(State, float64) bool) {
	yield(s, 1)
}

func (s *KnownState) Winner() Player {
	best := Player(0)
	for p := 1; p < len(s.box.Players); p++ {
		if s.hands[p].Points > s.hands[best].Points {
			best = Player(p)
		}
	}
	return best
}

func (s *KnownState) Hash() uint64 {
	h := newHasher()
	hashInt(h, 1)
	s.tableau.hashInto(h)
	for p := range s.box.Players {
		hashHandView(h, s.hands[p].View())
	}
	return h.Sum64()
}

func unexpectedAction(a Action, turn TurnState) string {
	return fmt.Sprintf("unexpected action %T during %T", a, turn)
}

func mustRemove(s, minus CardSet) CardSet {
	result, leftover := Subtract(s, minus)
	if leftover != (CardSet{}) {
		panic("removing cards that are not there")
	}
	return result
}
