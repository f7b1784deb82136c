// Package storage keeps an audit log of finished rounds in SQLite. Nothing
// is read back into live game state.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ScoreRow is one player's points when a round finished.
type ScoreRow struct {
	Nic    string `json:"nic"`
	Points int    `json:"points"`
}

// RoundRow is a finished round.
type RoundRow struct {
	ID         string     `json:"id"`
	Room       int        `json:"room"`
	Game       string     `json:"game"`
	Winner     string     `json:"winner"`
	Scores     []ScoreRow `json:"scores"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// Store handles SQLite persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			room        INTEGER NOT NULL,
			game        TEXT NOT NULL,
			winner      TEXT NOT NULL,
			finished_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS rounds_room ON rounds(room, seq);
		CREATE TABLE IF NOT EXISTS round_scores (
			round_id TEXT NOT NULL REFERENCES rounds(id),
			position INTEGER NOT NULL,
			nic      TEXT NOT NULL,
			points   INTEGER NOT NULL,
			PRIMARY KEY (round_id, position)
		);
	`)
	return err
}

// RecordRound stores a finished round with its scoreboard and returns the
// new round id.
func (s *Store) RecordRound(room int, game, winner string, scores []ScoreRow) (string, error) {
	id := uuid.NewString()
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO rounds (id, room, game, winner) VALUES (?, ?, ?, ?)",
		id, room, game, winner,
	); err != nil {
		return "", fmt.Errorf("insert round: %w", err)
	}
	for i, sc := range scores {
		if _, err := tx.Exec(
			"INSERT INTO round_scores (round_id, position, nic, points) VALUES (?, ?, ?, ?)",
			id, i, sc.Nic, sc.Points,
		); err != nil {
			return "", fmt.Errorf("insert score: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetRound retrieves a round by id.
func (s *Store) GetRound(id string) (*RoundRow, error) {
	row := s.db.QueryRow("SELECT id, room, game, winner, finished_at FROM rounds WHERE id = ?", id)
	var rr RoundRow
	if err := row.Scan(&rr.ID, &rr.Room, &rr.Game, &rr.Winner, &rr.FinishedAt); err != nil {
		return nil, err
	}
	scores, err := s.scores(rr.ID)
	if err != nil {
		return nil, err
	}
	rr.Scores = scores
	return &rr, nil
}

// ListRounds returns up to limit rounds played in a room, newest first.
// A non-positive limit returns every round.
func (s *Store) ListRounds(room, limit int) ([]RoundRow, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		"SELECT id, room, game, winner, finished_at FROM rounds WHERE room = ? ORDER BY seq DESC LIMIT ?",
		room, limit,
	)
	if err != nil {
		return nil, err
	}
	var result []RoundRow
	for rows.Next() {
		var rr RoundRow
		if err := rows.Scan(&rr.ID, &rr.Room, &rr.Game, &rr.Winner, &rr.FinishedAt); err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, rr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// the cursor must be closed first: in-memory stores have one connection
	for i := range result {
		if result[i].Scores, err = s.scores(result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Store) scores(roundID string) ([]ScoreRow, error) {
	rows, err := s.db.Query(
		"SELECT nic, points FROM round_scores WHERE round_id = ? ORDER BY position",
		roundID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []ScoreRow{}
	for rows.Next() {
		var sc ScoreRow
		if err := rows.Scan(&sc.Nic, &sc.Points); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
