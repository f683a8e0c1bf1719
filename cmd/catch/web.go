package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/platform/web"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser play server",
	Long: `Start an HTTP server that plays catch in the browser.

Rounds run on the server: the page streams pointer events over a websocket
and draws the snapshots it receives. The leaderboard is shared with the
terminal and SSH front ends when they use the same database.

Endpoints:
  GET  /                  - Browser client
  GET  /ws                - Websocket play session
  GET  /api/leaderboard   - Leaderboard JSON (?contact=&limit=)
  POST /api/scores        - Submit {name, contact, score}

Examples:
  catch web
  catch web --addr :9000
  CATCH_WEB_ADDR=127.0.0.1:8080 catch web`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", config.GetEnv("CATCH_WEB_ADDR", ":8080"), "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("catch-web", false)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database; leaderboard disabled", "error", err)
		store = nil
	}

	srv := web.New(web.Config{
		Address: flagWebAddr,
		Game:    loadConfig(),
		Seed:    flagSeed,
		Logger:  logger,
	}, store)

	fmt.Printf("Starting catch web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	runErr := srv.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
