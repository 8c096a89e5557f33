package progress

import (
	"context"
	"fmt"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the progress table. One row per completed skill.
const Schema = `CREATE TABLE IF NOT EXISTS roadmap_progress (
	role       TEXT NOT NULL,
	skill      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (role, skill)
)`

// Postgres stores progress in the roadmap_progress table.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool, verifies it and ensures the schema exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create progress table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context, role string) (model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx, `SELECT skill FROM roadmap_progress WHERE role = $1`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %q: %w", role, err)
	}
	skills, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %q: %w", role, err)
	}
	return model.NewProgressState(skills...), nil
}

// Save replaces the role's rows in one transaction.
func (p *Postgres) Save(ctx context.Context, role string, state model.ProgressState) error {
	if err := checkRole(role); err != nil {
		return err
	}
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM roadmap_progress WHERE role = $1`, role); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, skill := range state.Skills() {
			batch.Queue(`INSERT INTO roadmap_progress (role, skill) VALUES ($1, $2)`, role, skill)
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to save progress for %q: %w", role, err)
	}
	return nil
}

// ToggleSkill flips skill in one transaction. A transaction-scoped advisory
// lock on the role serializes concurrent toggles.
func (p *Postgres) ToggleSkill(ctx context.Context, role, skill string) (bool, model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return false, nil, err
	}
	var (
		done   bool
		skills []string
	)
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, role); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM roadmap_progress WHERE role = $1 AND skill = $2`, role, skill)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `INSERT INTO roadmap_progress (role, skill) VALUES ($1, $2)`, role, skill); err != nil {
				return err
			}
			done = true
		}
		rows, err := tx.Query(ctx, `SELECT skill FROM roadmap_progress WHERE role = $1`, role)
		if err != nil {
			return err
		}
		skills, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return false, nil, fmt.Errorf("failed to toggle %q for %q: %w", skill, role, err)
	}
	return done, model.NewProgressState(skills...), nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
