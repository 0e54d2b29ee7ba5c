package storage

import (
	"fmt"
	"time"
)

// Solve is one completed level.
type Solve struct {
	ID        int64
	RunID     string
	GameID    string
	Level     int
	Player    string
	Seconds   float64
	Moves     int
	CreatedAt time.Time
}

// LevelSummary aggregates the solves of one level.
type LevelSummary struct {
	Level       int
	Solves      int
	BestSeconds float64
	FewestMoves int
	LastSolved  time.Time
}

// SaveSolve records a completed level. A run ID is generated when the
// record has none. Returns the run ID.
func (s *Store) SaveSolve(sv Solve) (string, error) {
	if sv.RunID == "" {
		sv.RunID = newRunID()
	}
	_, err := s.db.Exec(
		`INSERT INTO solves (run_id, game_id, level, player, seconds, moves)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sv.RunID, sv.GameID, sv.Level, sv.Player, sv.Seconds, sv.Moves,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save solve: %w", err)
	}
	return sv.RunID, nil
}

const solveColumns = `id, run_id, game_id, level, player, seconds, moves, created_at`

// BestSolves returns the fastest solves of a level.
func (s *Store) BestSolves(gameID string, level, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySolves(
		`SELECT `+solveColumns+`
		 FROM solves
		 WHERE game_id = ? AND level = ?
		 ORDER BY seconds ASC, moves ASC, id ASC
		 LIMIT ?`,
		gameID, level, limit,
	)
}

// RecentSolves returns the latest solves of a game, newest first.
func (s *Store) RecentSolves(gameID string, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySolves(
		`SELECT `+solveColumns+`
		 FROM solves
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) querySolves(query string, args ...any) ([]Solve, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var out []Solve
	for rows.Next() {
		var sv Solve
		var createdAt any
		if err := rows.Scan(&sv.ID, &sv.RunID, &sv.GameID, &sv.Level, &sv.Player,
			&sv.Seconds, &sv.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan solve: %w", err)
		}
		sv.CreatedAt = parseTime(createdAt)
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelSummaries returns per-level aggregates for a game, ordered by level.
func (s *Store) LevelSummaries(gameID string) ([]LevelSummary, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(seconds), MIN(moves), MAX(created_at)
		 FROM solves
		 WHERE game_id = ?
		 GROUP BY level
		 ORDER BY level`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize solves: %w", err)
	}
	defer rows.Close()

	var out []LevelSummary
	for rows.Next() {
		var ls LevelSummary
		var last any
		if err := rows.Scan(&ls.Level, &ls.Solves, &ls.BestSeconds, &ls.FewestMoves, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary: %w", err)
		}
		ls.LastSolved = parseTime(last)
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
