// Package results records finished games in a small SQLite database. Only
// completed games are stored; in-progress state never touches disk.
package results

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the results database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	sqlStmt := `CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT,
		winner TEXT,
		turns INTEGER,
		finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordResult stores the outcome of one finished game.
func (s *Store) RecordResult(gameID, winner string, turns int) error {
	_, err := s.db.Exec(
		"INSERT INTO results (game_id, winner, turns) VALUES (?, ?, ?)",
		gameID, winner, turns,
	)
	return err
}

// WinnerStat is one leaderboard row.
type WinnerStat struct {
	Winner string `json:"winner"`
	Wins   int    `json:"wins"`
}

// Leaderboard returns win counts per player, most wins first.
func (s *Store) Leaderboard() ([]WinnerStat, error) {
	rows, err := s.db.Query(
		"SELECT winner, COUNT(*) AS wins FROM results GROUP BY winner ORDER BY wins DESC, winner ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []WinnerStat{}
	for rows.Next() {
		var stat WinnerStat
		if err := rows.Scan(&stat.Winner, &stat.Wins); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
