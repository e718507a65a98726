package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trains/game"
)

// DefaultMaxMoves caps a game that never terminates, which would point at a
// rules bug rather than a slow game.
const DefaultMaxMoves = 10000

// Result is the outcome of one finished game.
type Result struct {
	ID     uuid.UUID
	Scores []int
	Winner game.Player
	Moves  int
}

// PlayGame drives one game to completion: it asks the actor whose turn it is
// for an action, lets the game actor rule on it, then shows every player the
// action censored to what they may see.
func PlayGame(gameActor *GameActor, players []game.Actor, log zerolog.Logger, maxMoves int) (*Result, error) {
	if len(players) != len(gameActor.State.Box().Players) {
		return nil, fmt.Errorf("box seats %d players, got %d actors", len(gameActor.State.Box().Players), len(players))
	}
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}
	id := uuid.New()
	log = log.With().Str("game", id.String()).Logger()
	log.Info().Int("players", len(players)).Msg("game started")

	moves := 0
	for !gameActor.State.GameOver() {
		if moves >= maxMoves {
			return nil, fmt.Errorf("game did not finish within %d moves", maxMoves)
		}
		turn := gameActor.State.Turn()

		var actor game.Actor = gameActor
		if p := turn.Actor(); p != game.NoPlayer {
			actor = players[p]
		}
		action, err := actor.GetAction()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", moves, err)
		}
		if err := gameActor.ValidateAction(action); err != nil {
			return nil, fmt.Errorf("move %d: illegal action: %w", moves, err)
		}
		for p, player := range players {
			if err := player.ValidateAction(game.CensorAction(turn, action, game.Player(p))); err != nil {
				return nil, fmt.Errorf("move %d: %s objects: %w", moves, gameActor.State.Box().Players[p], err)
			}
		}

		log.Debug().
			Int("move", moves).
			Int("actor", int(turn.Actor())).
			Str("turn", fmt.Sprintf("%T", turn)).
			Str("action", fmt.Sprintf("%T", action)).
			Msg("action played")

		for p, player := range players {
			player.ObserveAction(game.CensorAction(turn, action, game.Player(p)))
		}
		gameActor.ObserveAction(action)
		moves++
	}

	scores := FinalScores(gameActor.State)
	winner := game.Player(0)
	for p := 1; p < len(scores); p++ {
		if scores[p] > scores[winner] {
			winner = game.Player(p)
		}
	}
	log.Info().
		Ints("scores", scores).
		Str("winner", gameActor.State.Box().Players[winner]).
		Int("moves", moves).
		Msg("game over")

	return &Result{ID: id, Scores: scores, Winner: winner, Moves: moves}, nil
}
