// internal/history/store.go
//
// Round history persisted in SQLite.
// Responsibilities:
//   - Insert one row per concluded round.
//   - Maintain per-player games played, wins and win streak.
//   - Query a player's recent rounds and stats, and the daily leaderboard.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// MaxLimit caps how many rows a single query returns.
const MaxLimit = 100

// clamp returns def for non-positive n and never more than MaxLimit.
func clamp(n, def int) int {
	switch {
	case n <= 0:
		return def
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

// Round is one concluded round.
type Round struct {
	UserID     string    `json:"userId"`
	Outcome    string    `json:"outcome"` // "won" | "lost"
	Tries      int       `json:"tries"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Stats aggregates a player's rounds.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Streak      int `json:"streak"`
}

// Store reads and writes round history.
type Store struct{ db *sql.DB }

// NewStore wraps a migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts r and bumps the player's stats in one transaction.
// Players without an account row only get the history row.
func (s *Store) Record(ctx context.Context, r Round) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (user_id, outcome, tries, finished_at) VALUES (?,?,?,?)`,
		r.UserID, r.Outcome, r.Tries, r.FinishedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	if err := bumpStats(ctx, tx, r.UserID, r.Outcome == "won"); err != nil {
		return fmt.Errorf("bump stats: %w", err)
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	err := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID).
		Scan(&gp, &wins, &streak)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err = tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// Recent returns the player's latest rounds, newest first. Default limit
// is 50, at most MaxLimit.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Round, error) {
	limit = clamp(limit, 50)
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, outcome, tries, finished_at
        FROM rounds
        WHERE user_id=?
        ORDER BY finished_at DESC, id DESC
        LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		var r Round
		var finished string
		if err := rows.Scan(&r.UserID, &r.Outcome, &r.Tries, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns the aggregate stats of an account.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID).
		Scan(&st.GamesPlayed, &st.Wins, &st.Streak)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, ErrNotFound
	}
	return st, err
}

// Entry is one leaderboard row.
type Entry struct {
	UserID     string    `json:"userId"`
	Tries      int       `json:"tries"`
	FinishedAt time.Time `json:"finishedAt"`
}

/**
 * Leaderboard fetches the best wins of a UTC date (YYYY-MM-DD).
 *
 * - Ordered by tries ASC, then finished_at ASC.
 * - Default limit is 20 if not specified, at most MaxLimit.
 */
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]Entry, error) {
	limit = clamp(limit, 20)
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, tries, finished_at
        FROM rounds
        WHERE outcome='won' AND substr(finished_at, 1, 10)=?
        ORDER BY tries ASC, finished_at ASC, id ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var finished string
		if err := rows.Scan(&e.UserID, &e.Tries, &finished); err != nil {
			return nil, err
		}
		e.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, e)
	}
	return out, rows.Err()
}
