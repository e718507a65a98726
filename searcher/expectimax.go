package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"trains/game"
)

// MinimaxPolicy picks which successor a deciding player takes, given the
// utilities of all successors. searcher is the player running the search.
type MinimaxPolicy func(utilities []Utility, decider, searcher game.Player) int

// AdversarialPolicy assumes every opponent plays to hurt the searcher: the
// searcher maximizes their own utility, everyone else minimizes it. With more
// than two players this is pessimistic, but it is the safe default.
func AdversarialPolicy(utilities []Utility, decider, searcher game.Player) int {
	best := 0
	for i, u := range utilities {
		if decider == searcher {
			if u[searcher] > utilities[best][searcher] {
				best = i
			}
		} else {
			if u[searcher] < utilities[best][searcher] {
				best = i
			}
		}
	}
	return best
}

// SelfishPolicy assumes every player simply maximizes their own utility.
func SelfishPolicy(utilities []Utility, decider, _ game.Player) int {
	best := 0
	for i, u := range utilities {
		if u[decider] > utilities[best][decider] {
			best = i
		}
	}
	return best
}

// Expectimax searches the full game tree to a fixed depth: decisions follow
// the minimax policy, chance turns take the probability-weighted expectation,
// and unknown hands are expanded into every assumed hand.
type Expectimax struct {
	utility UtilityFunction
	rbpc    RbpcFactory
	policy  MinimaxPolicy
	depth   int
}

type ExpectimaxOption func(*Expectimax)

func WithDepth(depth int) ExpectimaxOption {
	return func(e *Expectimax) { e.depth = depth }
}

func WithPolicy(policy MinimaxPolicy) ExpectimaxOption {
	return func(e *Expectimax) { e.policy = policy }
}

func WithRbpc(factory RbpcFactory) ExpectimaxOption {
	return func(e *Expectimax) { e.rbpc = factory }
}

func NewExpectimax(utility UtilityFunction, opts ...ExpectimaxOption) *Expectimax {
	if utility == nil {
		panic("expectimax needs a utility function")
	}
	e := &Expectimax{
		utility: utility,
		rbpc:    DummyRbpc,
		policy:  AdversarialPolicy,
		depth:   3,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.depth <= 0 {
		panic("expectimax needs a positive depth")
	}
	return e
}

// FindAction picks the best action for the searcher in the given state. The
// state's turn must belong to the searcher.
func (e *Expectimax) FindAction(s game.State, searcher game.Player) (game.Action, error) {
	if s.Turn().Actor() != searcher {
		return nil, fmt.Errorf("not %s's turn", s.Box().Players[searcher])
	}
	_, action, ok := e.score(s, searcher, e.depth)
	if !ok {
		return nil, fmt.Errorf("no legal action found")
	}
	log.Debug().Msgf("expectimax depth %d picked %T for %s",
		e.depth, action, s.Box().Players[searcher])
	return action, nil
}

// score values a state. When the turn is a decision of a known hand it also
// returns the chosen action.
func (e *Expectimax) score(s game.State, searcher game.Player, depth int) (Utility, game.Action, bool) {
	if depth <= 0 || s.GameOver() {
		return e.utility.Utility(s), nil, false
	}

	decider := s.Turn().Actor()
	if decider == game.NoPlayer {
		// chance turn: expectation over the deck's possibilities
		var expected Utility
		for _, la := range s.LegalActions() {
			u, _, _ := e.score(s.NextState(la.Action), searcher, depth-1)
			expected = expected.Add(u.Scale(la.Probability))
		}
		return expected, nil, false
	}

	if !s.HandIsKnown(decider) {
		// expand every hand the decider could hold, Bayes-weighted by the
		// deal and their visible building
		rbpc := e.rbpc(s, decider)
		var expected Utility
		total := 0.0
		s.EachAssumedHand(decider, rbpc, func(assumed game.State, weight float64) bool {
			u, _, _ := e.score(assumed, searcher, depth-1)
			expected = expected.Add(u.Scale(weight))
			total += weight
			return true
		})
		if total > 0 {
			expected = expected.Scale(1 / total)
		}
		return expected, nil, false
	}

	actions := s.LegalActions()
	utilities := make([]Utility, len(actions))
	for i, la := range actions {
		utilities[i], _, _ = e.score(s.NextState(la.Action), searcher, depth-1)
	}
	best := e.policy(utilities, decider, searcher)
	return utilities[best], actions[best].Action, true
}
