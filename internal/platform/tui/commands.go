package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

// RoundSavedMsg reports the outcome of recording a finished round.
type RoundSavedMsg struct {
	RoundID string
	Err     error
}

// ScoreSubmittedMsg reports the outcome of a leaderboard submission.
type ScoreSubmittedMsg struct {
	Submission storage.Submission
	Written    bool
	Err        error
}

// LeaderboardLoadedMsg carries leaderboard rows for display.
type LeaderboardLoadedMsg struct {
	Entries []storage.LeaderboardEntry
	Rank    int
	Err     error
}

// saveRoundCmd records a round in the background.
func saveRoundCmd(store *storage.Store, res catch.Result) tea.Cmd {
	return func() tea.Msg {
		id, err := store.SaveRound(storage.RoundFromResult(res))
		return RoundSavedMsg{RoundID: id, Err: err}
	}
}

// submitScoreCmd submits a score in the background.
func submitScoreCmd(store *storage.Store, sub storage.Submission) tea.Cmd {
	return func() tea.Msg {
		written, err := store.SubmitScore(sub)
		return ScoreSubmittedMsg{Submission: sub, Written: written, Err: err}
	}
}

// loadLeaderboardCmd fetches the leaderboard and, when contact is set, the player's rank.
func loadLeaderboardCmd(store *storage.Store, contact string) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.Leaderboard(storage.DefaultLeaderboardLimit, contact)
		if err != nil {
			return LeaderboardLoadedMsg{Err: err}
		}
		rank := 0
		if contact != "" {
			if rank, err = store.PlayerRank(contact); err != nil {
				return LeaderboardLoadedMsg{Entries: entries, Err: err}
			}
		}
		return LeaderboardLoadedMsg{Entries: entries, Rank: rank}
	}
}
