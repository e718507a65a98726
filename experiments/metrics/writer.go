package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ActorConfig describes one configured player for an experiment.
type ActorConfig struct {
	ID         int
	Kind       string // random, expectimax, mcexpectiminimax, mcts, mcts-uf
	Depth      int
	Iterations int
	Breadth    int
}

// GameRecord is the outcome of one experiment game.
type GameRecord struct {
	ID           int
	Actor1       int // ActorConfig.ID, seat 0
	Actor2       int // ActorConfig.ID, seat 1
	Winner       int // seat of the winner
	WinnerConfig int // ActorConfig.ID of the winner
	Scores       []int
	Moves        int
	Duration     time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped results directory for one experiment run.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("results", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteActorConfigs(configs []ActorConfig) error {
	path := filepath.Join(w.baseDir, "actor_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create actor configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "kind", "depth", "iterations", "breadth"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write actor configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Iterations),
			strconv.Itoa(config.Breadth),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write actor config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "actor1", "actor2", "winner_seat", "winner_config", "scores", "moves", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		scores := ""
		for i, s := range record.Scores {
			if i > 0 {
				scores += " "
			}
			scores += strconv.Itoa(s)
		}
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Actor1),
			strconv.Itoa(record.Actor2),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.WinnerConfig),
			scores,
			strconv.Itoa(record.Moves),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}
