package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresContact string
	flagScoresRounds  int
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and round history",
	Long: `Display the leaderboard, recent rounds and lifetime statistics.

Examples:
  catch scores
  catch scores --limit 20
  catch scores --contact ada@example.com
  catch scores --rounds 0
  catch scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of leaderboard entries to show")
	scoresCmd.Flags().StringVar(&flagScoresContact, "contact", "", "Highlight this player and show their rank")
	scoresCmd.Flags().IntVar(&flagScoresRounds, "rounds", 5, "Number of recent rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the round history (the leaderboard is kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return
	}

	if err := printLeaderboard(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving leaderboard: %v\n", err)
		os.Exit(1)
	}
	if flagScoresRounds > 0 {
		if err := printRounds(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
			os.Exit(1)
		}
	}
}

func printLeaderboard(store *storage.Store) error {
	entries, err := store.Leaderboard(flagScoresLimit, flagScoresContact)
	if err != nil {
		return err
	}

	fmt.Println("Leaderboard")
	fmt.Println()
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catch play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-24s  %s\n", "----", "----", "-----")
	for _, e := range entries {
		marker := " "
		if e.IsCurrentUser {
			marker = ">"
		}
		fmt.Printf("%s %-4d  %-24s  %d\n", marker, e.Rank, e.Name, e.Score)
	}

	if flagScoresContact != "" {
		rank, err := store.PlayerRank(flagScoresContact)
		if err != nil {
			return err
		}
		player, err := store.Player(flagScoresContact)
		if err != nil {
			return err
		}
		fmt.Println()
		if player == nil {
			fmt.Printf("%s is not on the leaderboard.\n", flagScoresContact)
		} else {
			fmt.Printf("%s: rank #%d, best %d (since %s)\n",
				player.Name, rank, player.Score, player.UpdatedAt.Format("2006-01-02"))
		}
	}
	return nil
}

func printRounds(store *storage.Store) error {
	rounds, err := store.RecentRounds(flagScoresRounds)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	best, err := store.HighScore()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent rounds")
	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("No rounds played yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-6s  %-7s  %s\n", "Date", "Score", "Fruit", "Bonus", "Hazards", "Missed")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-6d  %-6d  %-6d  %-7d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.GoodCaught, r.BonusCaught, r.HazardsCaught, r.Missed)
	}

	fmt.Println()
	fmt.Printf("Rounds: %d   Best: %d   Average: %.1f   Bonus crates: %d\n",
		stats.Rounds, best, stats.AvgScore, stats.BonusCaught)
	return nil
}
