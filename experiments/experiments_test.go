package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trains/experiments/metrics"
	"trains/game"
	"trains/searcher"
)

func TestBuildActor(t *testing.T) {
	box := game.SmallBox([]string{"a", "b"})

	tests := []struct {
		config metrics.ActorConfig
		want   game.Actor
	}{
		{metrics.ActorConfig{Kind: "random"}, &searcher.RandomActor{}},
		{metrics.ActorConfig{Kind: "expectimax", Depth: 2}, &searcher.ExpectimaxActor{}},
		{metrics.ActorConfig{Kind: "mcexpectiminimax", Depth: 2, Breadth: 3}, &searcher.McExpectiminimaxActor{}},
		{metrics.ActorConfig{Kind: "mcts", Iterations: 10}, &searcher.MctsActor{}},
		{metrics.ActorConfig{Kind: "mcts-uf", Iterations: 10}, &searcher.MctsActor{}},
	}
	for _, tt := range tests {
		t.Run(tt.config.Kind, func(t *testing.T) {
			actor := buildActor(box, 0, tt.config, 1)
			require.IsType(t, tt.want, actor)
		})
	}

	require.Panics(t, func() {
		buildActor(box, 0, metrics.ActorConfig{Kind: "alphabeta"}, 1)
	})
}

func TestTournamentRun(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	tournament := &Tournament{
		Name: "unit",
		Configs: []metrics.ActorConfig{
			{ID: 1, Kind: "random"},
			{ID: 2, Kind: "random"},
		},
		Box:  game.SmallBox,
		Seed: 99,
	}
	require.NoError(t, tournament.Run())

	records, err := filepath.Glob(filepath.Join("results", "unit", "*", "game_records.csv"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	configs, err := filepath.Glob(filepath.Join("results", "unit", "*", "actor_configs.csv"))
	require.NoError(t, err)
	require.Len(t, configs, 1)
}
