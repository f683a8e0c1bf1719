package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLeaderboardLimit is the number of entries shown on the leaderboard.
const DefaultLeaderboardLimit = 50

// MinContactLength is the shortest contact accepted for a submission.
const MinContactLength = 10

// ErrInvalidSubmission is returned when a submission is missing a name,
// has a too-short contact or a negative score.
var ErrInvalidSubmission = errors.New("storage: invalid submission")

// Submission is a leaderboard entry request. Contact identifies the player.
type Submission struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Score   int    `json:"score"`
}

// Validate normalizes the submission and checks its fields.
func (sub *Submission) Validate() error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Contact = strings.TrimSpace(sub.Contact)

	switch {
	case sub.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidSubmission)
	case len(sub.Contact) < MinContactLength:
		return fmt.Errorf("%w: contact must be at least %d characters", ErrInvalidSubmission, MinContactLength)
	case sub.Score < 0:
		return fmt.Errorf("%w: score must not be negative", ErrInvalidSubmission)
	}
	return nil
}

// Player is the stored best result of one contact.
type Player struct {
	Contact   string
	Name      string
	Score     int
	UpdatedAt time.Time
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// SubmitScore records a player's score if it is their first or beats their best.
// It reports whether anything was written. Resubmitting the same or a lower
// score is a no-op, so retries are safe. A stored name is never replaced.
func (s *Store) SubmitScore(sub Submission) (bool, error) {
	if err := sub.Validate(); err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRow("SELECT score FROM players WHERE contact = ?", sub.Contact).Scan(&current)
	exists := true
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
	} else if err != nil {
		return false, fmt.Errorf("storage: cannot query player: %w", err)
	}

	if exists && sub.Score <= current {
		return false, nil
	}

	// seq orders equal scores by when they were reached.
	var seq int64
	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), 0) + 1 FROM players").Scan(&seq); err != nil {
		return false, fmt.Errorf("storage: cannot allocate sequence: %w", err)
	}

	if exists {
		_, err = tx.Exec(
			"UPDATE players SET score = ?, seq = ?, updated_at = CURRENT_TIMESTAMP WHERE contact = ?",
			sub.Score, seq, sub.Contact,
		)
	} else {
		_, err = tx.Exec(
			"INSERT INTO players (contact, name, score, seq) VALUES (?, ?, ?, ?)",
			sub.Contact, sub.Name, sub.Score, seq,
		)
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot write player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit submission: %w", err)
	}
	return true, nil
}

// Leaderboard returns the top entries ordered by score descending, ties by
// arrival. Entries for currentContact are flagged.
func (s *Store) Leaderboard(limit int, currentContact string) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	currentContact = strings.TrimSpace(currentContact)

	rows, err := s.db.Query(
		`SELECT contact, name, score
		 FROM players
		 ORDER BY score DESC, seq ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var contact string
		e := LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&contact, &e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.IsCurrentUser = currentContact != "" && contact == currentContact
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerRank returns the 1-based rank of a contact, or 0 if it has no record.
func (s *Store) PlayerRank(contact string) (int, error) {
	var rank sql.NullInt64
	err := s.db.QueryRow(
		`SELECT 1 + (SELECT COUNT(*) FROM players o
		             WHERE o.score > p.score OR (o.score = p.score AND o.seq < p.seq))
		 FROM players p
		 WHERE p.contact = ?`,
		strings.TrimSpace(contact),
	).Scan(&rank)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return int(rank.Int64), nil
}

// Player returns the stored record for a contact, or nil if none exists.
func (s *Store) Player(contact string) (*Player, error) {
	var p Player
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT contact, name, score, updated_at FROM players WHERE contact = ?",
		strings.TrimSpace(contact),
	).Scan(&p.Contact, &p.Name, &p.Score, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}
