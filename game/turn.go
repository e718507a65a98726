package game

// TurnState says whose move it is and what kind of move is expected. Player
// turns wait on a player's decision; game turns wait on the game itself to
// deal or reveal cards. All variants are comparable values.
type TurnState interface {
	// Actor is the player the turn waits on, NoPlayer for game turns.
	Actor() Player

	turnState()
}

// InitialTurn is the very start of the game, before starting hands are dealt.
type InitialTurn struct{}

// PlayerInitialDestinationCardChoiceTurn waits on a player to choose which of
// their dealt destination cards to keep. All players choose before any choice
// is revealed.
type PlayerInitialDestinationCardChoiceTurn struct {
	Player Player
}

// RevealInitialDestinationCardChoicesTurn is the game announcing how many
// destination cards each player kept from the initial deal.
type RevealInitialDestinationCardChoicesTurn struct{}

// PlayerStartTurn is the start of a player's regular turn: build a route,
// draw train cards, or ask for destination cards.
//
// LastTurnForced is the player who triggered the final round by running low
// on trains, NoPlayer while the game is still open-ended. The round ends when
// the turn would rotate back to that player.
type PlayerStartTurn struct {
	Player         Player
	LastTurnForced Player
}

// PlayerTrainCardDrawMidTurn waits on a player's second train card draw.
type PlayerTrainCardDrawMidTurn struct {
	Player         Player
	LastTurnForced Player
}

// PlayerDestinationCardDrawMidTurn waits on a player to choose which of their
// freshly dealt destination cards to keep.
type PlayerDestinationCardDrawMidTurn struct {
	Player         Player
	LastTurnForced Player
}

// DestinationCardDealTurn is the game dealing destination cards to a player
// who asked for them.
type DestinationCardDealTurn struct {
	To             Player
	LastTurnForced Player
}

// TrainCardDealTurn is the game dealing Count train cards, to a player's hand
// or to the face-up display when To is NoPlayer. Next is the turn to enter
// once the dealing is done.
//
// Redeals counts consecutive face-up redeals forced by the wildcard rule, so
// a wildcard-heavy end of deck cannot redeal forever. It only ever depends on
// public information, keeping every perspective's turn machine in step.
type TrainCardDealTurn struct {
	Count   int
	To      Player
	Next    TurnState
	Redeals int
}

// RevealFinalDestinationCardsTurn is the game revealing every player's
// destination cards for scoring, after the last round has been played.
type RevealFinalDestinationCardsTurn struct{}

// GameOverTurn is the terminal state.
type GameOverTurn struct{}

func (InitialTurn) Actor() Player                             { return NoPlayer }
func (t PlayerInitialDestinationCardChoiceTurn) Actor() Player { return t.Player }
func (RevealInitialDestinationCardChoicesTurn) Actor() Player { return NoPlayer }
func (t PlayerStartTurn) Actor() Player                       { return t.Player }
func (t PlayerTrainCardDrawMidTurn) Actor() Player            { return t.Player }
func (t PlayerDestinationCardDrawMidTurn) Actor() Player      { return t.Player }
func (DestinationCardDealTurn) Actor() Player                 { return NoPlayer }
func (TrainCardDealTurn) Actor() Player                       { return NoPlayer }
func (RevealFinalDestinationCardsTurn) Actor() Player         { return NoPlayer }
func (GameOverTurn) Actor() Player                            { return NoPlayer }

func (InitialTurn) turnState()                             {}
func (PlayerInitialDestinationCardChoiceTurn) turnState()  {}
func (RevealInitialDestinationCardChoicesTurn) turnState() {}
func (PlayerStartTurn) turnState()                         {}
func (PlayerTrainCardDrawMidTurn) turnState()              {}
func (PlayerDestinationCardDrawMidTurn) turnState()        {}
func (DestinationCardDealTurn) turnState()                 {}
func (TrainCardDealTurn) turnState()                       {}
func (RevealFinalDestinationCardsTurn) turnState()         {}
func (GameOverTurn) turnState()                            {}

// PlayerStartTurnOrEnd rotates into the given player's start turn, or into
// the final reveal if that player is the one who forced the last round.
func PlayerStartTurnOrEnd(player, lastTurnForced Player) TurnState {
	if lastTurnForced == player {
		return RevealFinalDestinationCardsTurn{}
	}
	return PlayerStartTurn{Player: player, LastTurnForced: lastTurnForced}
}
