package experiments

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"trains/engine"
	"trains/experiments/metrics"
	"trains/game"
	"trains/searcher"
)

// NumGames is how many games each matchup plays, half with each seating.
const NumGames = 10

// Tournament plays every pair of actor configs against each other and
// reports the results as CSV records plus a summary table.
type Tournament struct {
	Name    string
	Configs []metrics.ActorConfig
	Box     func(players []string) *game.Box
	Seed    uint64
}

func (t *Tournament) Run() error {
	log.Info().Msgf("starting %s tournament...", t.Name)

	matchUps := [][2]metrics.ActorConfig{}
	for i, a := range t.Configs {
		for _, b := range t.Configs[i+1:] {
			matchUps = append(matchUps, [2]metrics.ActorConfig{a, b})
		}
	}

	seed := t.Seed
	count := 0
	records := []metrics.GameRecord{}
	wins := map[int]int{}
	played := map[int]int{}
	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...",
			mi+1, len(matchUps), matchup[0].Kind, matchup[1].Kind)

		for i := 0; i < NumGames; i++ {
			seats := matchup
			if i%2 == 1 {
				// alternate seating so neither config always goes first
				seats[0], seats[1] = seats[1], seats[0]
			}
			seed++
			count++

			record, err := t.playGame(count, seats, seed)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			records = append(records, record)
			wins[record.WinnerConfig]++
			played[seats[0].ID]++
			played[seats[1].ID]++

			log.Info().Msgf("completed matchup %d of %d game %d of %d, winner config %d",
				mi+1, len(matchUps), i+1, NumGames, record.WinnerConfig)
		}
	}

	log.Info().Msgf("completed %s tournament", t.Name)

	writer, err := metrics.NewWriter(t.Name)
	if err != nil {
		return fmt.Errorf("failed to create tournament writer: %w", err)
	}
	if err := writer.WriteActorConfigs(t.Configs); err != nil {
		return fmt.Errorf("failed to store actor configs: %w", err)
	}
	if err := writer.WriteGameRecords(records); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}

	t.printStandings(wins, played)
	return nil
}

func (t *Tournament) playGame(id int, seats [2]metrics.ActorConfig, seed uint64) (metrics.GameRecord, error) {
	box := t.Box([]string{seats[0].Kind, seats[1].Kind})
	gameActor := engine.NewGameActor(box, seed)
	players := []game.Actor{
		buildActor(box, 0, seats[0], seed+1),
		buildActor(box, 1, seats[1], seed+2),
	}

	start := time.Now()
	result, err := engine.PlayGame(gameActor, players, log.Logger.Level(zerolog.WarnLevel), 0)
	if err != nil {
		return metrics.GameRecord{}, err
	}

	return metrics.GameRecord{
		ID:           id,
		Actor1:       seats[0].ID,
		Actor2:       seats[1].ID,
		Winner:       int(result.Winner),
		WinnerConfig: seats[result.Winner].ID,
		Scores:       result.Scores,
		Moves:        result.Moves,
		Duration:     time.Since(start),
	}, nil
}

// buildActor makes the player actor a config describes.
func buildActor(box *game.Box, seat game.Player, config metrics.ActorConfig, seed uint64) game.Actor {
	switch config.Kind {
	case "random":
		return searcher.NewRandomActor(box, seat, seed)

	case "expectimax":
		search := searcher.NewExpectimax(
			searcher.RelativeUtility{Base: searcher.NewImprovedExpectedScoreUtility()},
			searcher.WithDepth(config.Depth),
			searcher.WithRbpc(searcher.PathRbpc),
		)
		return searcher.NewExpectimaxActor(box, seat, search)

	case "mcexpectiminimax":
		search := searcher.NewMcExpectiminimax(
			searcher.RelativeUtility{Base: searcher.NewImprovedExpectedScoreUtility()},
			searcher.WithMcDepth(config.Depth),
			searcher.WithBreadth(searcher.FixedBreadth(config.Breadth)),
			searcher.WithAssumedHands(true),
			searcher.WithSeed(seed),
		)
		return searcher.NewMcExpectiminimaxActor(box, seat, search)

	case "mcts":
		search := searcher.NewMcts(
			searcher.WithIterations(config.Iterations),
			searcher.WithMctsSeed(seed),
		)
		return searcher.NewMctsActor(box, seat, search)

	case "mcts-uf":
		search := searcher.NewMcts(
			searcher.WithIterations(config.Iterations),
			searcher.WithRollout(searcher.UtilityRollout{Utility: searcher.NewImprovedExpectedScoreUtility()}),
			searcher.WithMctsSeed(seed),
		)
		return searcher.NewMctsActor(box, seat, search)

	default:
		panic(fmt.Sprintf("unknown actor kind %q", config.Kind))
	}
}

func (t *Tournament) printStandings(wins, played map[int]int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"id", "kind", "depth", "iterations", "games", "wins", "win rate"})
	for _, config := range t.Configs {
		games := played[config.ID]
		rate := 0.0
		if games > 0 {
			rate = float64(wins[config.ID]) / float64(games)
		}
		tw.AppendRow(table.Row{
			config.ID, config.Kind, config.Depth, config.Iterations,
			games, wins[config.ID], fmt.Sprintf("%.2f", rate),
		})
	}
	tw.Render()
}
