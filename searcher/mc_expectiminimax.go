package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"trains/game"
)

// BreadthFunction limits how many branches a node at the given remaining
// depth explores. Zero means expand every branch exactly.
type BreadthFunction func(depth int) int

func FixedBreadth(n int) BreadthFunction {
	return func(int) int { return n }
}

func UnlimitedBreadth(int) int { return 0 }

// McExpectiminimax is an expectiminimax search where every player maximizes
// their own utility and wide chance nodes are Monte-Carlo sampled instead of
// expanded exactly. Opponents with unknown hands are either expanded into
// assumed hands or valued through the probabilities of their visible actions.
type McExpectiminimax struct {
	utility     UtilityFunction
	rbpc        RbpcFactory
	breadth     BreadthFunction
	depth       int
	assumeHands bool
	rng         *rand.Rand
}

type McExpectiminimaxOption func(*McExpectiminimax)

func WithMcDepth(depth int) McExpectiminimaxOption {
	return func(m *McExpectiminimax) { m.depth = depth }
}

func WithBreadth(breadth BreadthFunction) McExpectiminimaxOption {
	return func(m *McExpectiminimax) { m.breadth = breadth }
}

func WithAssumedHands(assume bool) McExpectiminimaxOption {
	return func(m *McExpectiminimax) { m.assumeHands = assume }
}

func WithMcRbpc(factory RbpcFactory) McExpectiminimaxOption {
	return func(m *McExpectiminimax) { m.rbpc = factory }
}

func WithSeed(seed uint64) McExpectiminimaxOption {
	return func(m *McExpectiminimax) { m.rng = rand.New(rand.NewSource(seed)) }
}

func NewMcExpectiminimax(utility UtilityFunction, opts ...McExpectiminimaxOption) *McExpectiminimax {
	if utility == nil {
		panic("mc expectiminimax needs a utility function")
	}
	m := &McExpectiminimax{
		utility:     utility,
		rbpc:        DummyRbpc,
		breadth:     FixedBreadth(5),
		depth:       4,
		assumeHands: false,
		rng:         rand.New(rand.NewSource(rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.depth <= 0 {
		panic("mc expectiminimax needs a positive depth")
	}
	return m
}

type scoreKey struct {
	hash  uint64
	depth int
}

// FindAction picks the action with the highest expected utility for the
// searcher. Transpositions within one call share a memo table.
func (m *McExpectiminimax) FindAction(s game.State, searcher game.Player) (game.Action, error) {
	if s.Turn().Actor() != searcher {
		return nil, fmt.Errorf("not %s's turn", s.Box().Players[searcher])
	}
	actions := s.LegalActions()
	if len(actions) == 0 {
		return nil, fmt.Errorf("no legal action found")
	}
	memo := map[scoreKey]Utility{}
	best, bestScore := 0, 0.0
	for i, la := range actions {
		u := m.score(s.NextState(la.Action), m.depth-1, memo)
		if i == 0 || u[searcher] > bestScore {
			best, bestScore = i, u[searcher]
		}
	}
	log.Debug().Msgf("mc expectiminimax depth %d picked %T for %s",
		m.depth, actions[best].Action, s.Box().Players[searcher])
	return actions[best].Action, nil
}

func (m *McExpectiminimax) score(s game.State, depth int, memo map[scoreKey]Utility) Utility {
	if depth <= 0 || s.GameOver() {
		return m.utility.Utility(s)
	}
	key := scoreKey{s.Hash(), depth}
	if u, ok := memo[key]; ok {
		return u
	}

	var u Utility
	decider := s.Turn().Actor()
	switch {
	case decider == game.NoPlayer:
		u = m.chance(s, s.LegalActions(), depth, memo)
	case !s.HandIsKnown(decider) && m.assumeHands:
		u = m.assumed(s, decider, depth, memo)
	case !s.HandIsKnown(decider):
		// without assuming a hand the opponent's turn is a chance node
		// over the actions their visible play makes possible
		u = m.chance(s, s.LegalActions(), depth, memo)
	default:
		actions := s.LegalActions()
		for i, la := range actions {
			su := m.score(s.NextState(la.Action), depth-1, memo)
			if i == 0 || su[decider] > u[decider] {
				u = su
			}
		}
	}

	memo[key] = u
	return u
}

// chance takes the expectation over weighted actions, sampling when the
// branching exceeds the breadth limit.
func (m *McExpectiminimax) chance(s game.State, actions []game.LegalAction, depth int, memo map[scoreKey]Utility) Utility {
	var u Utility
	if b := m.breadth(depth); b > 0 && b < len(actions) {
		for i := 0; i < b; i++ {
			next := sampleAction(m.rng, actions).Action
			u = u.Add(m.score(s.NextState(next), depth-1, memo).Scale(1 / float64(b)))
		}
		return u
	}
	total := 0.0
	for _, la := range actions {
		total += la.Probability
	}
	for _, la := range actions {
		u = u.Add(m.score(s.NextState(la.Action), depth-1, memo).Scale(la.Probability / total))
	}
	return u
}

// assumed takes the expectation over the hands the decider could hold.
func (m *McExpectiminimax) assumed(s game.State, decider game.Player, depth int, memo map[scoreKey]Utility) Utility {
	var u Utility
	if b := m.breadth(depth); b > 0 {
		if os, ok := s.(*game.ObservedState); ok {
			for i := 0; i < b; i++ {
				assumed := os.SampleAssumedHand(decider, m.rng)
				u = u.Add(m.score(assumed, depth-1, memo).Scale(1 / float64(b)))
			}
			return u
		}
	}
	rbpc := m.rbpc(s, decider)
	total := 0.0
	s.EachAssumedHand(decider, rbpc, func(assumed game.State, weight float64) bool {
		u = u.Add(m.score(assumed, depth-1, memo).Scale(weight))
		total += weight
		return true
	})
	if total > 0 {
		u = u.Scale(1 / total)
	}
	return u
}
