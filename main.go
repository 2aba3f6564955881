// houyi is a stage-based platformer and archery game.
//
// Usage:
//
//	houyi                 - start at the intro
//	houyi --stage 5       - skip ahead to stage 5
//	houyi --watch         - reload prefabs/ edits while running
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagStage     int
	flagAbilities bool
	flagWatch     bool
	flagTuning    string
	flagSeed      uint64
	flagMonitor   bool
	flagAssets    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "houyi",
	Short: "Houyi - shoot down the nine suns",
	Long: `Houyi is a platformer and archery game. Cross each stage, collect its
arrow, then shoot down the sun that rules it.

Examples:
  houyi
  houyi --stage 9 --abilities
  houyi --watch --debug`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Debug logging and overlay")
	rootCmd.Flags().IntVar(&flagStage, "stage", 0, "Skip the intro and start at stage N (1-9)")
	rootCmd.Flags().BoolVar(&flagAbilities, "abilities", false, "Start with every ability unlocked")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Hot reload prefabs/ while running")
	rootCmd.Flags().StringVar(&flagTuning, "tuning", "", "Path to a tuning.yaml overriding the built-in values")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed for sun patterns (0 = time based)")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false, "Use the base monitor instead of the primary one")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory searched for art and sound before the embedded copies")
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "houyi",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagDebug)
	cfg := Config{
		Debug:      flagDebug,
		Stage:      flagStage,
		Abilities:  flagAbilities,
		Watch:      flagWatch,
		TuningPath: flagTuning,
		Seed:       flagSeed,
		AssetsDir:  flagAssets,
	}

	if flagMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	game, err := NewGame(cfg, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(game.tuning.World.Width), int(game.tuning.World.Height))
	ebiten.SetWindowTitle("Houyi")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	logger.Info("starting", "stage", cfg.Stage, "abilities", cfg.Abilities, "watch", cfg.Watch, "seed", game.seed)
	return ebiten.RunGame(game)
}
