package game

// Actor is a participant in a game: the players and the game itself. The
// driver asks the actor whose turn it is for an action, lets every actor veto
// it, then shows it to all of them.
type Actor interface {
	// GetAction picks the action to play. Only called when the current turn
	// belongs to this actor.
	GetAction() (Action, error)

	// ValidateAction lets the actor object to an action before it is played.
	ValidateAction(a Action) error

	// ObserveAction records an action being played, censored to what this
	// actor is allowed to see.
	ObserveAction(a Action)
}

// PlayerActor is the shared base of player-side actors: it keeps an observed
// state in sync with the game. Implementations embed it and provide
// GetAction.
type PlayerActor struct {
	State *ObservedState
}

// NewPlayerActor makes the base for a player actor seated at the given seat.
func NewPlayerActor(box *Box, player Player) PlayerActor {
	return PlayerActor{State: NewObservedState(box, player)}
}

func (a *PlayerActor) Player() Player { return a.State.Perspective() }

func (a *PlayerActor) ObserveAction(action Action) {
	a.State = a.State.Apply(action)
}

// ValidateAction trusts the game actor's validation.
func (a *PlayerActor) ValidateAction(Action) error { return nil }
