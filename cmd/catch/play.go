package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/platform/tui"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round in this terminal.

Controls:
  Mouse drag  - Move the basket
  Left/Right  - Nudge the basket (also A/D, H/L)
  Enter       - Start / continue
  R           - Play again (after time's up)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Items fall at 0.75x speed
  normal - Default speed
  hard   - Items fall at 1.25x speed

Examples:
  catch play
  catch play --difficulty easy
  catch play --config ./my-catch.yaml
  catch play --seed 42 --log-file catch.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "name", os.Getenv("USER"), "Name to prefill on the leaderboard form")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig()
	logger, closeLog := newLogger("catch", true)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the round still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:  gameCfg,
		Runtime: rt,
		Store:   store,
		Logger:  logger,
		Player:  flagPlayer,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
