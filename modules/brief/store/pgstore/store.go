// Package pgstore keeps the brief intake log in Postgres.
package pgstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates or upgrades the brief_intake table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	return pg.Migrate(ctx, pool, sub, cfg, log)
}

// Store implements brief.Repository.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Append(ctx context.Context, rec brief.IntakeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO brief_intake (id, kind, email, ip_hash, stage, engagement_model, budget_range, dispatch_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, string(rec.Kind), rec.Email, rec.IPHash,
		string(rec.Stage), string(rec.EngagementModel), string(rec.BudgetRange),
		rec.DispatchID, rec.Reason, rec.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("intake record %s already exists: %w", rec.ID, err)
		}
		return fmt.Errorf("insert intake record: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, f brief.Filter) ([]brief.IntakeRecord, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Email != "" {
		where = append(where, "email = "+arg(f.Email))
	}
	if f.IPHash != "" {
		where = append(where, "ip_hash = "+arg(f.IPHash))
	}
	if f.Kind != "" {
		where = append(where, "kind = "+arg(string(f.Kind)))
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= "+arg(f.Since))
	}

	q := `SELECT id, kind, email, ip_hash, stage, engagement_model, budget_range, dispatch_id, reason, created_at FROM brief_intake`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		q += " LIMIT " + arg(f.Limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query intake records: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan intake records: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.CollectableRow) (brief.IntakeRecord, error) {
	var (
		rec                        brief.IntakeRecord
		kind, stage, model, budget string
	)
	err := row.Scan(&rec.ID, &kind, &rec.Email, &rec.IPHash, &stage, &model, &budget,
		&rec.DispatchID, &rec.Reason, &rec.CreatedAt)
	rec.Kind = brief.Kind(kind)
	rec.Stage = brief.Stage(stage)
	rec.EngagementModel = brief.EngagementModel(model)
	rec.BudgetRange = brief.BudgetRange(budget)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, err
}
