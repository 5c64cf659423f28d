package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tasklog/internal/audit"
	"tasklog/internal/authz"
	"tasklog/internal/ids"
	"tasklog/internal/models"
	"tasklog/internal/repository"
)

type TaskService struct {
	tasks  TaskStore
	audits AuditStore
	log    zerolog.Logger
}

func NewTaskService(tasks TaskStore, audits AuditStore, log zerolog.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		audits: audits,
		log:    log,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	// OwnerID is honored only for admin principals; everyone else creates
	// tasks for themselves.
	OwnerID string
}

func (s *TaskService) Create(ctx context.Context, principal *models.Principal, input CreateTaskInput) (models.Task, error) {
	if principal == nil {
		return models.Task{}, ErrUnauthorized
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}

	ownerID := principal.ID
	if principal.IsAdmin() && input.OwnerID != "" {
		ownerID = input.OwnerID
	}

	task := models.Task{
		ID:          ids.New(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}

	entry, err := audit.CreationEntry(task, principal.ID)
	if err != nil {
		return models.Task{}, err
	}

	if err := s.tasks.CreateWithAudit(ctx, task, &entry); err != nil {
		return models.Task{}, err
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("owner_id", ownerID).
		Str("actor_id", principal.ID).
		Msg("task created")
	return task, nil
}

// Update applies a patch after the ownership check. A patch that changes
// nothing writes nothing: no task row update and no audit entry.
func (s *TaskService) Update(ctx context.Context, principal *models.Principal, taskID string, patch models.TaskPatch) error {
	if principal == nil {
		return ErrUnauthorized
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, *patch.Priority)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !authz.CanMutateTask(principal, task) {
		return ErrForbidden
	}

	diff := audit.ComputeDiff(task, patch)
	completedChanged := patch.Completed != nil && *patch.Completed != task.Completed
	if diff.Empty() && !completedChanged {
		return nil
	}

	applyPatch(&task, patch)

	var entry *models.AuditEntry
	if !diff.Empty() {
		e, err := audit.UpdateEntry(taskID, principal.ID, diff)
		if err != nil {
			return err
		}
		entry = &e
	}

	if err := s.tasks.UpdateWithAudit(ctx, task, entry); err != nil {
		return err
	}

	s.log.Info().
		Str("task_id", taskID).
		Str("actor_id", principal.ID).
		Msg("task updated")
	return nil
}

func (s *TaskService) Delete(ctx context.Context, principal *models.Principal, taskID string) error {
	if principal == nil {
		return ErrUnauthorized
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !authz.CanMutateTask(principal, task) {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.log.Info().
		Str("task_id", taskID).
		Str("actor_id", principal.ID).
		Msg("task deleted")
	return nil
}

// Toggle flips completion and records exactly one COMPLETED or REOPENED
// entry; the update path never logs completion changes.
func (s *TaskService) Toggle(ctx context.Context, principal *models.Principal, taskID string) error {
	if principal == nil {
		return ErrUnauthorized
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !authz.CanMutateTask(principal, task) {
		return ErrForbidden
	}

	task.Completed = !task.Completed

	entry, err := audit.ToggleEntry(taskID, principal.ID, task.Completed)
	if err != nil {
		return err
	}

	if err := s.tasks.UpdateWithAudit(ctx, task, &entry); err != nil {
		return err
	}

	s.log.Info().
		Str("task_id", taskID).
		Str("actor_id", principal.ID).
		Bool("completed", task.Completed).
		Msg("task toggled")
	return nil
}

// List scopes results by principal: admins see everything and may filter by
// owner, everyone else sees only their own tasks. No session reads as an
// empty list, not an error.
func (s *TaskService) List(ctx context.Context, principal *models.Principal, filterOwnerID string) ([]models.Task, error) {
	if principal == nil {
		return []models.Task{}, nil
	}

	if principal.IsAdmin() {
		if filterOwnerID != "" {
			return s.tasks.ListByOwner(ctx, filterOwnerID)
		}
		return s.tasks.ListAll(ctx)
	}
	return s.tasks.ListByOwner(ctx, principal.ID)
}

// ListAuditEntries returns a task's change history newest-first.
func (s *TaskService) ListAuditEntries(ctx context.Context, principal *models.Principal, taskID string) ([]models.AuditEntry, error) {
	if principal == nil {
		return []models.AuditEntry{}, nil
	}
	return s.audits.ListByTask(ctx, taskID)
}

func applyPatch(task *models.Task, patch models.TaskPatch) {
	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			task.Title = title
		}
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
}
