package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"trains/experiments"
	"trains/experiments/metrics"
	"trains/game"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tournament := &experiments.Tournament{
		Name: "searchers",
		Configs: []metrics.ActorConfig{
			{ID: 1, Kind: "random"},
			{ID: 2, Kind: "expectimax", Depth: 3},
			{ID: 3, Kind: "mcexpectiminimax", Depth: 4, Breadth: 5},
			{ID: 4, Kind: "mcts", Iterations: 1000},
			{ID: 5, Kind: "mcts-uf", Iterations: 1000},
		},
		Box:  game.SmallBox,
		Seed: uint64(time.Now().UnixNano()),
	}
	if err := tournament.Run(); err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}
}
