package models

import (
	"encoding/json"
	"time"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Priority    TaskPriority
	DueDate     *time.Time
	OwnerID     string
	// OwnerUsername is populated by list queries for display; not a column
	// of the tasks table itself.
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaskPatch carries the proposed field values of an update. Nil pointers mean
// "leave unchanged"; DueDateSet distinguishes clearing the due date from not
// touching it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	DueDate     *time.Time
	DueDateSet  bool
	Completed   *bool
}

type AuditAction string

const (
	AuditActionCreated         AuditAction = "CREATED"
	AuditActionUpdated         AuditAction = "UPDATED"
	AuditActionCompleted       AuditAction = "COMPLETED"
	AuditActionReopened        AuditAction = "REOPENED"
	AuditActionDueDateExtended AuditAction = "DUE_DATE_EXTENDED"
	AuditActionPriorityChanged AuditAction = "PRIORITY_CHANGED"
)

// AuditEntry is an append-only record of one task mutation. Details holds the
// JSON encoding of the typed per-action payloads in the audit package.
type AuditEntry struct {
	ID        string
	TaskID    string
	ActorID   string
	Action    AuditAction
	Details   json.RawMessage
	CreatedAt time.Time
}
