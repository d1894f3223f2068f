package storage

import (
	"fmt"
	"time"
)

// Level result statuses.
const (
	StatusWon  = "won"
	StatusLost = "lost"
)

// LevelResult is one finished attempt at a level.
type LevelResult struct {
	ID        int64
	GameID    string
	PackID    string
	LevelID   string
	Status    string
	Elapsed   time.Duration
	Coins     int
	CreatedAt time.Time
}

// SaveLevelResult records a finished attempt and returns the new row ID.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_results (game_id, pack_id, level_id, status, elapsed_ms, coins)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.PackID, r.LevelID, r.Status, r.Elapsed.Milliseconds(), r.Coins,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestTime is the fastest win of a level.
type BestTime struct {
	LevelID  string
	Elapsed  time.Duration
	Coins    int
	Achieved time.Time
}

// BestTimes returns the fastest win of every level in a pack, keyed by level ID.
func (s *Store) BestTimes(gameID, packID string) (map[string]BestTime, error) {
	rows, err := s.db.Query(
		`SELECT level_id, elapsed_ms, coins, created_at
		 FROM level_results
		 WHERE game_id = ? AND pack_id = ? AND status = ?
		 ORDER BY level_id, elapsed_ms ASC, id ASC`,
		gameID, packID, StatusWon,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	best := make(map[string]BestTime)
	for rows.Next() {
		var b BestTime
		var ms int64
		var createdAt any
		if err := rows.Scan(&b.LevelID, &ms, &b.Coins, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if _, seen := best[b.LevelID]; seen {
			continue
		}
		b.Elapsed = time.Duration(ms) * time.Millisecond
		b.Achieved = parseTime(createdAt)
		best[b.LevelID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// LevelStats summarizes every attempt at one level.
type LevelStats struct {
	PackID   string
	LevelID  string
	Attempts int
	Wins     int
	Deaths   int
	Best     time.Duration
}

// LevelStats returns per-level attempt counts for a pack, ordered by level ID.
func (s *Store) LevelStats(gameID, packID string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COUNT(*),
		        SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN status = ? THEN elapsed_ms END), 0)
		 FROM level_results
		 WHERE game_id = ? AND pack_id = ?
		 GROUP BY level_id
		 ORDER BY level_id`,
		StatusWon, StatusLost, StatusWon, gameID, packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStats
	for rows.Next() {
		st := LevelStats{PackID: packID}
		var bestMS int64
		if err := rows.Scan(&st.LevelID, &st.Attempts, &st.Wins, &st.Deaths, &bestMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Best = time.Duration(bestMS) * time.Millisecond
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
