package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"servifix-backend/internal/db"
)

// SnapshotRepository persists the full state document so a restart can
// pick up where the last process left off.
type SnapshotRepository struct {
	DB *db.Postgres
}

// Save stores a new snapshot and prunes everything older than the last
// few, keeping the table from growing without bound.
func (r SnapshotRepository) Save(ctx context.Context, state []byte) error {
	_, err := r.DB.Pool.Exec(ctx, `INSERT INTO state_snapshots (state) VALUES ($1)`, state)
	if err != nil {
		return err
	}
	_, err = r.DB.Pool.Exec(ctx, `
		DELETE FROM state_snapshots
		WHERE id NOT IN (SELECT id FROM state_snapshots ORDER BY id DESC LIMIT 10)
	`)
	return err
}

// LoadLatest returns the most recent snapshot, or ErrNotFound when the
// table is empty.
func (r SnapshotRepository) LoadLatest(ctx context.Context) ([]byte, error) {
	var state []byte
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT state FROM state_snapshots ORDER BY id DESC LIMIT 1
	`).Scan(&state)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return state, nil
}
