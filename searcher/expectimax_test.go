package searcher

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"trains/game"
)

func TestAdversarialPolicy(t *testing.T) {
	utilities := []Utility{{1, 5}, {3, 2}, {2, 4}}

	require.Equal(t, 1, AdversarialPolicy(utilities, 0, 0),
		"the searcher maximizes their own seat")
	require.Equal(t, 0, AdversarialPolicy(utilities, 1, 0),
		"an opponent minimizes the searcher's seat")
}

func TestSelfishPolicy(t *testing.T) {
	utilities := []Utility{{1, 5}, {3, 2}, {2, 4}}

	require.Equal(t, 1, SelfishPolicy(utilities, 0, 0))
	require.Equal(t, 0, SelfishPolicy(utilities, 1, 0),
		"every player maximizes their own seat")
}

func TestExpectimaxFindsBestBuild(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})
	box := s.Box()

	// with the build-routes utility the two red cards are worth 1.5 in hand,
	// 1.75 spent on a length one route and 3 on the length two A-E
	e := NewExpectimax(BuildRoutesUtility{}, WithDepth(1))
	action, err := e.FindAction(s, 0)
	require.NoError(t, err)
	require.Equal(t,
		game.BuildAction{Route: box.RouteBetween("A", "E", "").ID, Cards: game.CardSet{red: 2}},
		action)
}

func TestExpectimaxLooksPastChanceTurns(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	// depth three crosses the deal turns that follow a draw; the search
	// still returns a legal move for Alice
	e := NewExpectimax(BuildRoutesUtility{}, WithDepth(3))
	action, err := e.FindAction(s, 0)
	require.NoError(t, err)
	requireLegal(t, s, action)
}

func TestExpectimaxAssumesUnknownHands(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	known, observed := smallObserved(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	// Alice passes, visibly, and Bob searches a state where her hand is
	// hidden; depth two reaches her assumed decision turns
	pass := game.PassAction{}
	observed = observed.Apply(game.CensorAction(known.Turn(), pass, 1))
	require.False(t, observed.HandIsKnown(0))

	e := NewExpectimax(BuildRoutesUtility{}, WithDepth(2), WithRbpc(PathRbpc))
	action, err := e.FindAction(observed, 1)
	require.NoError(t, err)
	requireLegal(t, observed, action)
}

func TestFindActionLogsChoice(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	_, err := NewExpectimax(BuildRoutesUtility{}, WithDepth(1)).FindAction(s, 0)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "expectimax depth 1 picked game.BuildAction for Alice")
}

func TestExpectimaxDepthZeroIsUtility(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	e := NewExpectimax(BuildRoutesUtility{})
	u, _, picked := e.score(s, 0, 0)
	require.False(t, picked)
	require.Equal(t, BuildRoutesUtility{}.Utility(s), u)
}

func TestExpectimaxWrongTurn(t *testing.T) {
	const red, blue = game.Color(0), game.Color(1)
	s := smallState(t, game.CardSet{red: 2}, game.CardSet{blue: 1}, game.CardSet{red: 1, blue: 1})

	e := NewExpectimax(BuildRoutesUtility{})
	_, err := e.FindAction(s, 1)
	require.ErrorContains(t, err, "Bob")
}

func TestNewExpectimaxPanics(t *testing.T) {
	require.Panics(t, func() { NewExpectimax(nil) })
	require.Panics(t, func() { NewExpectimax(BuildRoutesUtility{}, WithDepth(0)) })
}

// requireLegal asserts the action is one the state offers.
func requireLegal(t *testing.T, s game.State, action game.Action) {
	t.Helper()
	for _, la := range s.LegalActions() {
		if la.Action == action {
			return
		}
	}
	t.Fatalf("action %#v is not legal", action)
}
