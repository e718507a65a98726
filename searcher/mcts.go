package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"trains/game"
)

// RolloutPolicy values the state a tree walk ended on.
type RolloutPolicy interface {
	Rollout(s game.State, rng *rand.Rand) Utility
}

// BasicRollout plays random moves to the end of the game and scores the
// winner 1, everyone else 0.
type BasicRollout struct {
	// MaxMoves caps the playout; past it the current leader counts as
	// the winner.
	MaxMoves int
}

func (r BasicRollout) Rollout(s game.State, rng *rand.Rand) Utility {
	maxMoves := r.MaxMoves
	if maxMoves <= 0 {
		maxMoves = 1000
	}
	for i := 0; i < maxMoves && !s.GameOver(); i++ {
		actions := s.LegalActions()
		if len(actions) == 0 {
			break
		}
		s = s.NextState(sampleAction(rng, actions).Action)
	}
	var u Utility
	u[s.Winner()] = 1
	return u
}

// UtilityRollout skips the playout and scores the leaf with a utility
// function directly.
type UtilityRollout struct {
	Utility UtilityFunction
}

func (r UtilityRollout) Rollout(s game.State, _ *rand.Rand) Utility {
	return r.Utility.Utility(s)
}

type mctsNode struct {
	state    game.State
	parent   *mctsNode
	children map[game.Action]*mctsNode
	untried  []game.LegalAction
	// reward accumulates the backed-up utility of the player who chose
	// the action leading here
	reward float64
	visits int
}

func newMctsNode(s game.State, parent *mctsNode) *mctsNode {
	return &mctsNode{
		state:    s,
		parent:   parent,
		children: map[game.Action]*mctsNode{},
		untried:  s.LegalActions(),
	}
}

// chanceTurn reports whether the node's successor is picked by weight
// rather than by value: the deck's turns, and turns of players whose hands
// the searcher cannot see.
func (n *mctsNode) chanceTurn() bool {
	actor := n.state.Turn().Actor()
	return actor == game.NoPlayer || !n.state.HandIsKnown(actor)
}

func (n *mctsNode) q() float64 {
	return n.reward / float64(n.visits)
}

// Mcts grows a search tree by repeated walks: decisions follow UCT, chance
// turns are sampled by probability, and each new leaf is valued by the
// rollout policy. The tree survives between calls so observed actions
// reuse the matching subtree.
type Mcts struct {
	rollout    RolloutPolicy
	iterations int
	explore    float64
	rng        *rand.Rand
	root       *mctsNode
}

type MctsOption func(*Mcts)

func WithIterations(n int) MctsOption {
	return func(m *Mcts) { m.iterations = n }
}

func WithRollout(policy RolloutPolicy) MctsOption {
	return func(m *Mcts) { m.rollout = policy }
}

func WithExploration(c float64) MctsOption {
	return func(m *Mcts) { m.explore = c }
}

func WithMctsSeed(seed uint64) MctsOption {
	return func(m *Mcts) { m.rng = rand.New(rand.NewSource(seed)) }
}

func NewMcts(opts ...MctsOption) *Mcts {
	m := &Mcts{
		rollout:    BasicRollout{},
		iterations: 1000,
		explore:    math.Sqrt2,
		rng:        rand.New(rand.NewSource(rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.iterations <= 0 {
		panic("mcts needs a positive iteration count")
	}
	return m
}

// Advance moves the tree root along an action that happened in the real
// game, keeping the statistics gathered under it.
func (m *Mcts) Advance(action game.Action, s game.State) {
	if m.root != nil {
		if child, ok := m.root.children[action]; ok && child.state.Hash() == s.Hash() {
			child.parent = nil
			m.root = child
			return
		}
	}
	m.root = newMctsNode(s, nil)
}

// FindAction grows the tree from the given state and returns the child of
// the root with the best average reward.
func (m *Mcts) FindAction(s game.State, searcher game.Player) (game.Action, error) {
	if s.Turn().Actor() != searcher {
		return nil, fmt.Errorf("not %s's turn", s.Box().Players[searcher])
	}
	if m.root == nil || m.root.state.Hash() != s.Hash() {
		m.root = newMctsNode(s, nil)
	}
	for i := 0; i < m.iterations; i++ {
		leaf := m.walk(m.root)
		m.backup(leaf, m.rollout.Rollout(leaf.state, m.rng))
	}

	var best game.Action
	bestQ := math.Inf(-1)
	for action, child := range m.root.children {
		if child.visits > 0 && child.q() > bestQ {
			best, bestQ = action, child.q()
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no legal action found")
	}
	log.Debug().Msgf("mcts picked %T for %s after %d iterations",
		best, s.Box().Players[searcher], m.iterations)
	return best, nil
}

// walk descends the tree until it can attach a new node, which it returns.
func (m *Mcts) walk(n *mctsNode) *mctsNode {
	for !n.state.GameOver() {
		if len(n.untried) > 0 {
			return m.expand(n)
		}
		if len(n.children) == 0 {
			return n
		}
		n = m.pick(n)
	}
	return n
}

func (m *Mcts) expand(n *mctsNode) *mctsNode {
	var i int
	if n.chanceTurn() {
		picked := sampleAction(m.rng, n.untried).Action
		for j, la := range n.untried {
			if la.Action == picked {
				i = j
				break
			}
		}
	} else {
		i = m.rng.Intn(len(n.untried))
	}
	la := n.untried[i]
	n.untried[i] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	child := newMctsNode(n.state.NextState(la.Action), n)
	n.children[la.Action] = child
	return child
}

func (m *Mcts) pick(n *mctsNode) *mctsNode {
	if n.chanceTurn() {
		action := sampleAction(m.rng, n.state.LegalActions()).Action
		if child, ok := n.children[action]; ok {
			return child
		}
		child := newMctsNode(n.state.NextState(action), n)
		n.children[action] = child
		return child
	}

	var best *mctsNode
	bestScore := math.Inf(-1)
	logN := math.Log(float64(n.visits))
	for _, child := range n.children {
		score := child.q() + m.explore*math.Sqrt(logN/float64(child.visits))
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// backup adds the rollout utility along the path to the root. A node's
// reward tracks the utility of whoever picked it, so chance-picked nodes
// only count visits.
func (m *Mcts) backup(n *mctsNode, u Utility) {
	for n != nil {
		n.visits++
		if n.parent != nil && !n.parent.chanceTurn() {
			n.reward += u[n.parent.state.Turn().Actor()]
		}
		n = n.parent
	}
}
