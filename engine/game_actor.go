package engine

import (
	"fmt"

	"trains/game"
)

// GameActor is the game's own seat at the table: it holds the authoritative
// all-seeing state, produces the deck's actions, and rules on the legality of
// everyone's moves.
type GameActor struct {
	State  *game.KnownState
	dealer *dealer
}

func NewGameActor(box *game.Box, seed uint64) *GameActor {
	return &GameActor{
		State:  game.NewKnownState(box),
		dealer: newDealer(seed),
	}
}

// GetAction produces the deck's next move. Only called on game turns.
func (g *GameActor) GetAction() (game.Action, error) {
	switch turn := g.State.Turn().(type) {
	case game.InitialTurn:
		return g.dealer.initialDeal(g.State), nil

	case game.TrainCardDealTurn:
		return g.dealer.trainDeal(g.State, turn.Count), nil

	case game.DestinationCardDealTurn:
		return g.dealer.destinationDeal(g.State), nil

	case game.RevealInitialDestinationCardChoicesTurn, game.RevealFinalDestinationCardsTurn:
		// the reveals are deterministic, the state knows their content
		return g.State.LegalActions()[0].Action, nil

	default:
		return nil, fmt.Errorf("turn %T does not belong to the game", turn)
	}
}

func (g *GameActor) ValidateAction(a game.Action) error {
	return game.ValidateAction(g.State, a)
}

func (g *GameActor) ObserveAction(a game.Action) {
	g.State = g.State.Apply(a)
}
