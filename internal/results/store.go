// internal/results/store.go
//
// SQLite persistence for GPT Golf games.
// Live play happens on in-memory sessions; this store keeps a durable copy of
// every game (owner, target, dialogue, turns, outcome) for history, stats and
// the fewest-turns leaderboard.

package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/robalobadob/gptgolf/internal/game"
)

// Owner identifies who played a game: a registered user or an anonymous cookie.
type Owner struct {
	UserID string
	AnonID string
}

// column/arg pair used in WHERE clauses.
func (o Owner) clause() (string, any) {
	if o.UserID != "" {
		return "user_id=?", o.UserID
	}
	return "anonymous_id=?", o.AnonID
}

// Store wraps the games table.
type Store struct{ db *sql.DB }

// NewStore returns a Store backed by db. Migrations must already be applied.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Start inserts the row for a freshly created session.
func (s *Store) Start(ctx context.Context, sess game.Session, owner Owner) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, mode, date, target, status, turns, dialogue, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, 0, '[]', ?)`,
		sess.ID, nullable(owner.UserID), nullable(owner.AnonID), string(sess.Mode), sess.Date,
		sess.Target, sess.State(), sess.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// RecordTurn stores the session's latest dialogue and turn count, and the
// finish time once it is won.
func (s *Store) RecordTurn(ctx context.Context, sess game.Session) error {
	dialogue, err := json.Marshal(sess.Dialogue)
	if err != nil {
		return err
	}
	if !sess.Won {
		_, err = s.db.ExecContext(ctx,
			`UPDATE games SET turns=?, dialogue=? WHERE id=?`,
			sess.Turns, string(dialogue), sess.ID)
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
        UPDATE games SET turns=?, dialogue=?, status=?, finished_at=?, elapsed_ms=?
        WHERE id=? AND finished_at IS NULL`,
		sess.Turns, string(dialogue), sess.State(), now.Format(time.RFC3339Nano),
		now.Sub(sess.StartedAt).Milliseconds(), sess.ID)
	return err
}

// DailyPlayed reports whether owner already won the daily game for date.
func (s *Store) DailyPlayed(ctx context.Context, owner Owner, date string) (bool, error) {
	where, arg := owner.clause()
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE mode='daily' AND date=? AND status='won' AND `+where,
		date, arg,
	).Scan(&cnt)
	return cnt > 0, err
}

// ClaimAnon moves an anonymous player's games onto a user account.
func (s *Store) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	GameID    string `json:"gameId"`
	Player    string `json:"player"`
	Target    string `json:"target"`
	Turns     int    `json:"turns"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns the best won games for a mode.
// Daily boards are per date; the normal board is all-time and ignores date.
// Ordered by turns ASC, then elapsed time ASC, then finish time ASC.
func (s *Store) Leaderboard(ctx context.Context, mode game.Mode, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
        SELECT g.id, COALESCE(u.username, 'guest'), g.target, g.turns, g.elapsed_ms
        FROM games g LEFT JOIN users u ON u.id = g.user_id
        WHERE g.status='won' AND g.mode=?`
	args := []any{string(mode)}
	if mode == game.ModeDaily {
		q += ` AND g.date=?`
		args = append(args, date)
	}
	q += ` ORDER BY g.turns ASC, g.elapsed_ms ASC, g.finished_at ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.GameID, &r.Player, &r.Target, &r.Turns, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GameRow is a past game as shown in a player's history.
type GameRow struct {
	ID         string   `json:"id"`
	Mode       string   `json:"mode"`
	Date       string   `json:"date,omitempty"`
	Target     string   `json:"target"`
	Status     string   `json:"status"`
	Turns      int      `json:"turns"`
	Dialogue   []string `json:"dialogue"`
	StartedAt  string   `json:"startedAt"`
	FinishedAt string   `json:"finishedAt,omitempty"`
}

// History lists owner's most recent games, newest first.
func (s *Store) History(ctx context.Context, owner Owner, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	where, arg := owner.clause()
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, date, target, status, turns, dialogue, started_at, COALESCE(finished_at, '')
        FROM games WHERE `+where+` ORDER BY started_at DESC LIMIT ?`, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		var g GameRow
		var dialogue string
		if err := rows.Scan(&g.ID, &g.Mode, &g.Date, &g.Target, &g.Status, &g.Turns, &dialogue, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dialogue), &g.Dialogue); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Stats summarises a user's games.
type Stats struct {
	GamesPlayed int     `json:"gamesPlayed"`
	Wins        int     `json:"wins"`
	BestTurns   int     `json:"bestTurns"`
	AvgTurns    float64 `json:"avgTurns"`
}

// Stats aggregates every game owned by userID. Games with no turns are not counted.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	var best sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(CASE WHEN status='won' THEN 1 ELSE 0 END), 0),
               MIN(CASE WHEN status='won' THEN turns END),
               AVG(CASE WHEN status='won' THEN turns END)
        FROM games WHERE user_id=? AND turns > 0`, userID,
	).Scan(&st.GamesPlayed, &st.Wins, &best, &avg)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Stats{}, err
	}
	st.BestTurns = int(best.Int64)
	st.AvgTurns = avg.Float64
	return st, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
