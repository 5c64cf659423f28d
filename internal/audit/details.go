package audit

import (
	"encoding/json"
	"fmt"

	"tasklog/internal/ids"
	"tasklog/internal/models"
)

// Details payloads are one typed variant per action kind rather than an
// open-ended map, so each entry carries only the fields meaningful for its
// action.

type CreatedDetails struct {
	Title    string              `json:"title"`
	Priority models.TaskPriority `json:"priority"`
	DueDate  string              `json:"dueDate,omitempty"`
}

type UpdateDetails struct {
	Title        *FieldDelta `json:"title,omitempty"`
	Description  *FieldDelta `json:"description,omitempty"`
	Priority     *FieldDelta `json:"priority,omitempty"`
	DueDate      *FieldDelta `json:"dueDate,omitempty"`
	ExtendedDays int         `json:"extendedDays,omitempty"`
}

type ToggleDetails struct {
	Completed bool `json:"completed"`
}

func newEntry(taskID, actorID string, action models.AuditAction, details any) (models.AuditEntry, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("marshal audit details: %w", err)
	}
	return models.AuditEntry{
		ID:      ids.New(),
		TaskID:  taskID,
		ActorID: actorID,
		Action:  action,
		Details: raw,
	}, nil
}

// CreationEntry records the initial title, priority and due date of a new
// task, independent of the update path.
func CreationEntry(task models.Task, actorID string) (models.AuditEntry, error) {
	return newEntry(task.ID, actorID, models.AuditActionCreated, CreatedDetails{
		Title:    task.Title,
		Priority: task.Priority,
		DueDate:  formatDue(task.DueDate),
	})
}

func UpdateEntry(taskID, actorID string, diff Diff) (models.AuditEntry, error) {
	return newEntry(taskID, actorID, diff.Action(), UpdateDetails{
		Title:        diff.Title,
		Description:  diff.Description,
		Priority:     diff.Priority,
		DueDate:      diff.DueDate,
		ExtendedDays: diff.ExtendedDays,
	})
}

func ToggleEntry(taskID, actorID string, completed bool) (models.AuditEntry, error) {
	action := models.AuditActionReopened
	if completed {
		action = models.AuditActionCompleted
	}
	return newEntry(taskID, actorID, action, ToggleDetails{Completed: completed})
}
