package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tasklog/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	pool   *pgxpool.Pool
	audits *AuditRepository
}

func NewTaskRepository(pool *pgxpool.Pool, audits *AuditRepository) *TaskRepository {
	return &TaskRepository{pool: pool, audits: audits}
}

// CreateWithAudit inserts the task and its creation entry in one
// transaction, so a crash cannot leave a task without its CREATED record.
func (r *TaskRepository) CreateWithAudit(ctx context.Context, task models.Task, entry *models.AuditEntry) error {
	const query = `
		INSERT INTO tasks (
			id, title, description, completed, priority, due_date, owner_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.OwnerID,
	); err != nil {
		return err
	}

	if entry != nil {
		if err := r.audits.insert(ctx, tx, *entry); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UpdateWithAudit writes the new field values and appends the audit entry in
// one transaction. A nil entry writes the task alone.
func (r *TaskRepository) UpdateWithAudit(ctx context.Context, task models.Task, entry *models.AuditEntry) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4, priority = $5, due_date = $6, updated_at = NOW()
		WHERE id = $1
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	if entry != nil {
		if err := r.audits.insert(ctx, tx, *entry); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (models.Task, error) {
	const query = `
		SELECT t.id, t.title, t.description, t.completed, t.priority, t.due_date, t.owner_id, u.username, t.created_at, t.updated_at
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	const query = `
		SELECT t.id, t.title, t.description, t.completed, t.priority, t.due_date, t.owner_id, u.username, t.created_at, t.updated_at
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		ORDER BY t.created_at DESC
	`
	return r.listTasks(ctx, query)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	const query = `
		SELECT t.id, t.title, t.description, t.completed, t.priority, t.due_date, t.owner_id, u.username, t.created_at, t.updated_at
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC
	`
	return r.listTasks(ctx, query, ownerID)
}

// OverdueCount aggregates incomplete tasks past their due date per owner,
// consumed by the reminder scan.
type OverdueCount struct {
	OwnerID  string
	Username string
	Count    int
}

func (r *TaskRepository) CountOverdueByOwner(ctx context.Context, now time.Time) ([]OverdueCount, error) {
	const query = `
		SELECT t.owner_id, u.username, COUNT(*)
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		WHERE t.completed = FALSE AND t.due_date IS NOT NULL AND t.due_date < $1
		GROUP BY t.owner_id, u.username
		ORDER BY u.username
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []OverdueCount
	for rows.Next() {
		var c OverdueCount
		if err := rows.Scan(&c.OwnerID, &c.Username, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *TaskRepository) listTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.Priority,
		&task.DueDate,
		&task.OwnerID,
		&task.OwnerUsername,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	return task, err
}
