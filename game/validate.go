package game

import "fmt"

// ValidateAction checks an action against the rules in the given state. A nil
// result means the action is legal; otherwise the error says why not. Unlike
// Apply, a wrong action type for the turn is reported rather than panicking,
// so drivers can reject bad actors gracefully.
func ValidateAction(s State, action Action) error {
	box := s.Box()
	switch turn := s.Turn().(type) {
	case InitialTurn:
		a, ok := action.(InitialDealAction)
		if !ok {
			return unexpectedActionError(action, s.Turn())
		}
		return validateInitialDeal(s, a)

	case PlayerInitialDestinationCardChoiceTurn:
		return validateSelection(s, turn.Player, action, box.StartingDestCardsRange[0])

	case RevealInitialDestinationCardChoicesTurn:
		if _, ok := action.(RevealDestinationCardSelectionsAction); !ok {
			return unexpectedActionError(action, s.Turn())
		}
		return nil

	case PlayerStartTurn:
		switch a := action.(type) {
		case PassAction:
			return nil
		case BuildAction:
			return validateBuild(s, turn.Player, a)
		case TrainCardPickAction:
			return validateTrainPick(s, a, false)
		case DestinationCardPickAction:
			if s.DestinationCardPileSize() == 0 {
				return fmt.Errorf("no destination cards left to draw")
			}
			return nil
		default:
			return unexpectedActionError(action, s.Turn())
		}

	case PlayerTrainCardDrawMidTurn:
		switch a := action.(type) {
		case TrainCardPickAction:
			return validateTrainPick(s, a, true)
		case PassAction:
			if len(s.LegalActions()) == 1 {
				return nil
			}
			return fmt.Errorf("cannot pass with a draw available")
		default:
			return unexpectedActionError(action, s.Turn())
		}

	case PlayerDestinationCardDrawMidTurn:
		return validateSelection(s, turn.Player, action, box.DealtDestCardsRange[0])

	case DestinationCardDealTurn:
		a, ok := action.(DestinationCardDealAction)
		if !ok {
			return unexpectedActionError(action, s.Turn())
		}
		want := min(box.DealtDestCardsRange[1], s.DestinationCardPileSize())
		if a.Count != want || (a.Cards != 0 && a.Cards.Count() != want) {
			return fmt.Errorf("destination deal must produce %d cards", want)
		}
		return nil

	case TrainCardDealTurn:
		a, ok := action.(TrainCardDealAction)
		if !ok {
			return unexpectedActionError(action, s.Turn())
		}
		available := min(turn.Count, s.TrainCardPileSize()+s.DiscardedTrainCards().Total())
		dealt := a.Count
		if a.Cards.Total() > 0 {
			dealt = a.Cards.Total()
		}
		if dealt != available {
			return fmt.Errorf("train deal must produce %d cards, got %d", available, dealt)
		}
		return nil

	case RevealFinalDestinationCardsTurn:
		a, ok := action.(RevealFinalDestinationCardsAction)
		if !ok {
			return unexpectedActionError(action, s.Turn())
		}
		for p := range box.Players {
			if hand := s.Hand(Player(p)); hand.Known && a.Cards[p] != hand.KnownDestinationCards {
				return fmt.Errorf("revealed cards do not match %s's hand", box.Players[p])
			}
		}
		return nil

	case GameOverTurn:
		if _, ok := action.(PassAction); !ok {
			return unexpectedActionError(action, s.Turn())
		}
		return nil

	default:
		panic(fmt.Sprintf("unhandled turn type %T", s.Turn()))
	}
}

func validateInitialDeal(s State, a InitialDealAction) error {
	box := s.Box()
	var dealtTrains CardSet
	var seen DestinationCardSet
	for p := range box.Players {
		if a.TrainCards[p].Total() != box.StartingTrainCards {
			return fmt.Errorf("%s must be dealt %d train cards", box.Players[p], box.StartingTrainCards)
		}
		if a.DestinationCards[p].Count() != box.StartingDestCardsRange[1] {
			return fmt.Errorf("%s must be dealt %d destination cards", box.Players[p], box.StartingDestCardsRange[1])
		}
		if seen.Intersect(a.DestinationCards[p]) != 0 {
			return fmt.Errorf("destination cards dealt twice")
		}
		seen = seen.Union(a.DestinationCards[p])
		dealtTrains = Merge(dealtTrains, a.TrainCards[p])
	}
	dealtTrains = Merge(dealtTrains, a.FaceUp)
	if a.FaceUp.Total() != min(box.FaceUpTrainCards, s.TrainCardPileSize()-dealtTrains.Total()+a.FaceUp.Total()) {
		return fmt.Errorf("wrong number of face-up cards")
	}
	if _, leftover := Subtract(s.TrainCardPileDistribution(), dealtTrains); leftover != (CardSet{}) {
		return fmt.Errorf("dealt train cards exceed the deck")
	}
	return nil
}

func validateSelection(s State, p Player, action Action, minKeep int) error {
	a, ok := action.(DestinationCardSelectionAction)
	if !ok {
		return unexpectedActionError(action, s.Turn())
	}
	hand := s.Hand(p)
	count := a.Count
	if a.Selected != 0 {
		count = a.Selected.Count()
	}
	if count != HiddenCount && count < minKeep {
		return fmt.Errorf("must keep at least %d destination cards", minKeep)
	}
	if hand.Known && !a.Selected.IsSubsetOf(hand.KnownUnselectedDestinationCards) {
		return fmt.Errorf("selected destination cards were not dealt")
	}
	return nil
}

func validateBuild(s State, p Player, a BuildAction) error {
	box := s.Box()
	route := box.Routes[a.Route]
	if s.RouteOwner(a.Route) != NoPlayer {
		return fmt.Errorf("route is already built")
	}
	for _, par := range box.ParallelRoutes(a.Route) {
		owner := s.RouteOwner(par)
		if owner == NoPlayer {
			continue
		}
		if len(box.Players) < box.DoubleRoutesMinPlayers {
			return fmt.Errorf("parallel routes need at least %d players", box.DoubleRoutesMinPlayers)
		}
		if owner == p {
			return fmt.Errorf("cannot build both parallel routes")
		}
	}
	if err := validatePayment(box, route, a.Cards); err != nil {
		return err
	}
	hand := s.Hand(p)
	if hand.RemainingTrains < route.Length {
		return fmt.Errorf("not enough trains to build the route")
	}
	if hand.Known {
		if _, leftover := Subtract(hand.KnownTrainCards, a.Cards); leftover != (CardSet{}) {
			return fmt.Errorf("not enough train cards to build the route")
		}
	}
	return nil
}

// validatePayment checks that the cards pay for the route exactly: the right
// total, a single color plus wildcards, and the route's color on colored
// routes.
func validatePayment(box *Box, route Route, cards CardSet) error {
	if cards.Total() != route.Length {
		return fmt.Errorf("building needs exactly %d cards", route.Length)
	}
	color := AnyColor
	for c := 0; c < box.NumColors(); c++ {
		if cards[c] == 0 {
			continue
		}
		if color != AnyColor {
			return fmt.Errorf("cannot mix colors to build a route")
		}
		color = Color(c)
	}
	if route.Color != AnyColor && color != AnyColor && color != route.Color {
		return fmt.Errorf("route needs %s cards", box.Colors[route.Color])
	}
	return nil
}

func validateTrainPick(s State, a TrainCardPickAction, second bool) error {
	if a.DrawKnown {
		if s.FaceUpTrainCards()[a.Selected] == 0 {
			return fmt.Errorf("no face-up cards of that color")
		}
		if second && a.Selected == Wildcard {
			return fmt.Errorf("cannot take a wildcard on the second draw")
		}
		return nil
	}
	if s.TrainCardPileSize()+s.DiscardedTrainCards().Total() == 0 {
		return fmt.Errorf("no train cards left to draw")
	}
	return nil
}

func unexpectedActionError(a Action, turn TurnState) error {
	return fmt.Errorf("unexpected action %T during %T", a, turn)
}
