package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tasklog/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so audit appends can
// join the transaction of the task write they describe.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// insert appends one entry. There is intentionally no update or delete on
// this table.
func (r *AuditRepository) insert(ctx context.Context, q querier, entry models.AuditEntry) error {
	const query = `
		INSERT INTO audit_entries (
			id, task_id, actor_id, action, details, created_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)
	`

	_, err := q.Exec(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.ActorID,
		entry.Action,
		entry.Details,
	)
	return err
}

func (r *AuditRepository) ListByTask(ctx context.Context, taskID string) ([]models.AuditEntry, error) {
	const query = `
		SELECT id, task_id, actor_id, action, details, created_at
		FROM audit_entries
		WHERE task_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.ActorID,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
