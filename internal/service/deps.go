package service

import (
	"context"

	"tasklog/internal/models"
)

// Store interfaces sit between services and the pgx repositories; tests
// substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	ListSummaries(ctx context.Context) ([]models.UserSummary, error)
}

type TaskStore interface {
	CreateWithAudit(ctx context.Context, task models.Task, entry *models.AuditEntry) error
	UpdateWithAudit(ctx context.Context, task models.Task, entry *models.AuditEntry) error
	GetByID(ctx context.Context, id string) (models.Task, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
}

type AuditStore interface {
	ListByTask(ctx context.Context, taskID string) ([]models.AuditEntry, error)
}
