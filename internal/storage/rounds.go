package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-catch/internal/games/catch"
)

// RoundRecord is the history row of one finished round.
type RoundRecord struct {
	ID            int64     `json:"-"`
	RoundID       string    `json:"roundId"` // UUID; assigned on save when empty
	Score         int       `json:"score"`
	BonusSpawned  int       `json:"bonusSpawned"`
	GoodCaught    int       `json:"goodCaught"`
	BonusCaught   int       `json:"bonusCaught"`
	HazardsCaught int       `json:"hazardsCaught"`
	Missed        int       `json:"missed"`
	DurationSecs  int       `json:"durationSecs"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RoundStats contains aggregated statistics over all recorded rounds.
type RoundStats struct {
	Rounds      int
	HighScore   int
	AvgScore    float64
	TotalScore  int64
	BonusCaught int
	LastPlayed  time.Time
}

const roundColumns = `id, round_id, score, bonus_spawned, good_caught, bonus_caught,
	hazards_caught, missed, duration_secs, created_at`

// RoundFromResult builds the history row for a finished round.
func RoundFromResult(res catch.Result) RoundRecord {
	return RoundRecord{
		Score:         res.Score,
		BonusSpawned:  res.BonusItemsSpawned,
		GoodCaught:    res.Stats.GoodCaught,
		BonusCaught:   res.Stats.BonusCaught,
		HazardsCaught: res.Stats.HazardsCaught,
		Missed:        res.Stats.Missed,
		DurationSecs:  res.DurationSecs,
	}
}

// SaveRound records a finished round and returns its round ID.
func (s *Store) SaveRound(rec RoundRecord) (string, error) {
	if rec.RoundID == "" {
		rec.RoundID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (round_id, score, bonus_spawned, good_caught, bonus_caught, hazards_caught, missed, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID,
		rec.Score,
		rec.BonusSpawned,
		rec.GoodCaught,
		rec.BonusCaught,
		rec.HazardsCaught,
		rec.Missed,
		rec.DurationSecs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return rec.RoundID, nil
}

// RoundByID retrieves a round by its round ID, or nil if it does not exist.
func (s *Store) RoundByID(roundID string) (*RoundRecord, error) {
	row := s.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`, roundID)
	rec, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &rec, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the highest recorded round score.
// Returns 0 if no rounds exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM rounds").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics over all rounds.
func (s *Store) Stats() (*RoundStats, error) {
	stats := &RoundStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(bonus_caught), 0), MAX(created_at)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BonusCaught, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearRounds deletes all round history. The leaderboard is kept.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (RoundRecord, error) {
	var rec RoundRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.RoundID,
		&rec.Score,
		&rec.BonusSpawned,
		&rec.GoodCaught,
		&rec.BonusCaught,
		&rec.HazardsCaught,
		&rec.Missed,
		&rec.DurationSecs,
		&createdAt,
	)
	if err != nil {
		return RoundRecord{}, err
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, nil
}
