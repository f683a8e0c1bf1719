// catch is a timed arcade game: drag a basket to catch falling fruit,
// dodge hazards, and beat the leaderboard before the clock runs out.
//
// Usage:
//
//	catch play       - Play a round in this terminal
//	catch serve      - Start SSH server for remote play
//	catch web        - Start the browser play server
//	catch scores     - Show the leaderboard and round history
//	catch simulate   - Play a headless round with the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.catch/scores.db, or $CATCH_DB)
//	--config <path>       - Load round tuning from a YAML file
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catch",
	Short: "Catch! - a timed fruit-catching arcade game",
	Long: `Catch! drops fruit, hazards and one rare bonus crate from the top of the
field. Drag the basket to catch them before the 60 second round runs out.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  web       - Start the browser play server
  scores    - View the leaderboard and round history
  simulate  - Run a headless round with the autopilot

Examples:
  catch play
  catch play --difficulty hard
  catch serve --ssh :2222
  catch web --addr :8080
  catch scores --limit 20
  catch simulate --seed 42 --json`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.GetEnv("CATCH_DB", "~/.catch/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom round config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads round tuning from --config and --difficulty, exiting on error.
func loadConfig() config.CatchConfig {
	cfg, err := config.LoadWithPreset(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds a logger honoring --log-level and --log-file.
// Without a log file, quiet loggers discard everything so the TUI stays clean.
// The returned func closes the log file, if any.
func newLogger(prefix string, quiet bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", openErr)
			os.Exit(1)
		}
		out = f
		closeFn = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}
