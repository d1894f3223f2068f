package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/replay"
)

var flagReplayView bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded game",
	Long: `Re-run a game recorded with 'platformer play --record'.

The recording holds the pack, tuning, seed and every frame of input, so
the run plays out exactly as it did. By default it runs without a
terminal and prints the outcome; --view shows it on screen.

Examples:
  platformer replay run.replay
  platformer replay run.replay --view`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayView, "view", false, "Watch the replay in the terminal")
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Replay of %s, pack %q from level %d\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.PackID, rec.StartLevel+1)
	fmt.Printf("%d frames, %.1fs of play\n", len(rec.Frames), rec.Duration().Seconds())

	if !registry.Exists(rec.GameID) {
		return fmt.Errorf("replay: unknown game %q", rec.GameID)
	}
	game, err := registry.Create(rec.GameID)
	if err != nil {
		return err
	}

	if flagReplayView {
		if err := replay.Prepare(game, rec); err != nil {
			return err
		}
		logger, closeLog, err := fileLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		cfg := runtimeConfig()
		cfg.Seed = rec.Seed
		cfg.TickRate = rec.TickRate
		if err := tui.Run(game, nil, cfg, tui.WithScript(rec.Inputs()), tui.WithLogger(logger)); err != nil {
			return fmt.Errorf("running replay: %w", err)
		}
		return nil
	}

	state, err := replay.Play(game, rec)
	if err != nil {
		return err
	}

	outcome := "stopped"
	switch {
	case state.GameOver && state.Won:
		outcome = "won"
	case state.GameOver:
		outcome = "game over"
	}
	if pg, ok := game.(*platformer.Game); ok {
		fmt.Printf("Result: %s at level %d, score %d\n", outcome, pg.LevelIndex()+1, state.Score)
		return nil
	}
	fmt.Printf("Result: %s, score %d\n", outcome, state.Score)
	return nil
}
