// Package sqlitestore keeps the brief intake log in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stroomai/leadgen/modules/brief"
)

var ErrInvalidConfig = errors.New("sqlitestore: invalid configuration")

// Config is optional: an empty DSN means SQLite is not used.
type Config struct {
	DSN string `env:"SQLITE_DSN"`
}

func (c Config) Enabled() bool { return c.DSN != "" }

const schema = `
CREATE TABLE IF NOT EXISTS brief_intake (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    email TEXT NOT NULL,
    ip_hash TEXT NOT NULL DEFAULT '',
    stage TEXT NOT NULL DEFAULT '',
    engagement_model TEXT NOT NULL DEFAULT '',
    budget_range TEXT NOT NULL DEFAULT '',
    dispatch_id TEXT NOT NULL DEFAULT '',
    reason TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_brief_intake_email ON brief_intake(email, created_at);
CREATE INDEX IF NOT EXISTS idx_brief_intake_ip_hash ON brief_intake(ip_hash, created_at);
`

// Store implements brief.Repository. created_at is stored as unix
// nanoseconds so range filters compare numerically.
type Store struct {
	db *sql.DB
}

// Open opens the database at dsn and creates the schema if needed.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: dsn is required", ErrInvalidConfig)
	}
	if dsn != ":memory:" && !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one connection: SQLite has a single writer and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Healthcheck fits httpserver.Check.
func (s *Store) Healthcheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Append(ctx context.Context, rec brief.IntakeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO brief_intake (id, kind, email, ip_hash, stage, engagement_model, budget_range, dispatch_id, reason, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), string(rec.Kind), rec.Email, rec.IPHash,
		string(rec.Stage), string(rec.EngagementModel), string(rec.BudgetRange),
		rec.DispatchID, rec.Reason, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert intake record: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, f brief.Filter) ([]brief.IntakeRecord, error) {
	var (
		where []string
		args  []any
	)
	if f.Email != "" {
		where = append(where, "email = ?")
		args = append(args, f.Email)
	}
	if f.IPHash != "" {
		where = append(where, "ip_hash = ?")
		args = append(args, f.IPHash)
	}
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, f.Since.UnixNano())
	}

	q := `SELECT id, kind, email, ip_hash, stage, engagement_model, budget_range, dispatch_id, reason, created_at FROM brief_intake`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, rowid DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query intake records: %w", err)
	}
	defer rows.Close()

	var out []brief.IntakeRecord
	for rows.Next() {
		var (
			rec                            brief.IntakeRecord
			id, kind, stage, model, budget string
			createdAt                      int64
		)
		if err := rows.Scan(&id, &kind, &rec.Email, &rec.IPHash, &stage, &model, &budget,
			&rec.DispatchID, &rec.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan intake record: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse intake record id: %w", err)
		}
		rec.Kind = brief.Kind(kind)
		rec.Stage = brief.Stage(stage)
		rec.EngagementModel = brief.EngagementModel(model)
		rec.BudgetRange = brief.BudgetRange(budget)
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intake records: %w", err)
	}
	return out, nil
}
