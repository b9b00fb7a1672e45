package repository

import (
	"context"
	"errors"
	"time"

	"servifix-backend/internal/db"
	"servifix-backend/internal/domain"
)

var ErrNotFound = errors.New("not found")

// AuditLogRepository mirrors every in-memory history append into Postgres.
// Writes are best-effort; the in-memory history on each entity remains the
// authoritative record.
type AuditLogRepository struct {
	DB *db.Postgres
}

func (r AuditLogRepository) Create(ctx context.Context, entity, entityID string, entry domain.ActionLog) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO audit_logs (entity, entity_id, action, actor, details, logged_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, entity, entityID, string(entry.Action), entry.ActorID, entry.Details, entry.Timestamp)
	return err
}

// AuditEntry is one mirrored history row.
type AuditEntry struct {
	ID       int64
	Entity   string
	EntityID string
	Action   domain.LogAction
	Actor    string
	Details  string
	LoggedAt time.Time
}

func (r AuditLogRepository) List(ctx context.Context, entity, entityID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, entity, entity_id, action, actor, details, logged_at
		FROM audit_logs
		WHERE entity=$1 AND entity_id=$2
		ORDER BY logged_at DESC, id DESC
		LIMIT $3
	`, entity, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &action, &e.Actor, &e.Details, &e.LoggedAt); err != nil {
			return nil, err
		}
		e.Action = domain.LogAction(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
