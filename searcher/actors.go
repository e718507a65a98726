package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"trains/game"
)

// RandomActor plays a uniformly random legal action. Useful as a baseline
// opponent and for smoke-testing the rules.
type RandomActor struct {
	game.PlayerActor
	rng *rand.Rand
}

func NewRandomActor(box *game.Box, player game.Player, seed uint64) *RandomActor {
	return &RandomActor{
		PlayerActor: game.NewPlayerActor(box, player),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *RandomActor) GetAction() (game.Action, error) {
	actions := a.State.LegalActions()
	if len(actions) == 0 {
		return nil, fmt.Errorf("no legal action found")
	}
	return actions[a.rng.Intn(len(actions))].Action, nil
}

// ExpectimaxActor plays the action picked by an expectimax search over its
// observed state.
type ExpectimaxActor struct {
	game.PlayerActor
	search *Expectimax
}

func NewExpectimaxActor(box *game.Box, player game.Player, search *Expectimax) *ExpectimaxActor {
	return &ExpectimaxActor{
		PlayerActor: game.NewPlayerActor(box, player),
		search:      search,
	}
}

func (a *ExpectimaxActor) GetAction() (game.Action, error) {
	return a.search.FindAction(a.State, a.Player())
}

// McExpectiminimaxActor plays the action picked by a Monte-Carlo
// expectiminimax search.
type McExpectiminimaxActor struct {
	game.PlayerActor
	search *McExpectiminimax
}

func NewMcExpectiminimaxActor(box *game.Box, player game.Player, search *McExpectiminimax) *McExpectiminimaxActor {
	return &McExpectiminimaxActor{
		PlayerActor: game.NewPlayerActor(box, player),
		search:      search,
	}
}

func (a *McExpectiminimaxActor) GetAction() (game.Action, error) {
	return a.search.FindAction(a.State, a.Player())
}

// MctsActor plays the action picked by Monte-Carlo tree search, carrying
// its tree across turns.
type MctsActor struct {
	game.PlayerActor
	search *Mcts
}

func NewMctsActor(box *game.Box, player game.Player, search *Mcts) *MctsActor {
	return &MctsActor{
		PlayerActor: game.NewPlayerActor(box, player),
		search:      search,
	}
}

func (a *MctsActor) GetAction() (game.Action, error) {
	return a.search.FindAction(a.State, a.Player())
}

// ObserveAction keeps both the observed state and the search tree in step
// with the real game.
func (a *MctsActor) ObserveAction(action game.Action) {
	a.PlayerActor.ObserveAction(action)
	a.search.Advance(action, a.State)
}
