// Package audit computes field-level diffs of task mutations and classifies
// them into audit actions. Entries are appended by the repository layer and
// never modified afterwards.
package audit

import (
	"math"
	"strings"
	"time"

	"tasklog/internal/models"
)

type FieldDelta struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Diff is the set of fields whose values would change between the stored
// task and a proposed patch. The completed flag is deliberately absent:
// completion changes are recorded by the toggle operation, not the update
// path.
type Diff struct {
	Title        *FieldDelta
	Description  *FieldDelta
	Priority     *FieldDelta
	DueDate      *FieldDelta
	ExtendedDays int
}

func ComputeDiff(current models.Task, patch models.TaskPatch) Diff {
	var d Diff

	if patch.Title != nil {
		// Blank titles are ignored by the update, so they must not diff.
		if title := strings.TrimSpace(*patch.Title); title != "" && title != current.Title {
			d.Title = &FieldDelta{From: current.Title, To: title}
		}
	}
	if patch.Description != nil && *patch.Description != current.Description {
		d.Description = &FieldDelta{From: current.Description, To: *patch.Description}
	}
	if patch.Priority != nil && *patch.Priority != current.Priority {
		d.Priority = &FieldDelta{From: string(current.Priority), To: string(*patch.Priority)}
	}
	if patch.DueDateSet {
		oldDue := formatDue(current.DueDate)
		newDue := formatDue(patch.DueDate)
		if oldDue != newDue {
			d.DueDate = &FieldDelta{From: oldDue, To: newDue}
			if current.DueDate != nil && patch.DueDate != nil && patch.DueDate.After(*current.DueDate) {
				d.ExtendedDays = wholeDays(patch.DueDate.Sub(*current.DueDate))
			}
		}
	}

	return d
}

func (d Diff) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Priority == nil && d.DueDate == nil
}

// Action classifies the diff. A due date moved strictly later reclassifies
// the plain update as an extension; a priority change outranks both.
func (d Diff) Action() models.AuditAction {
	action := models.AuditActionUpdated
	if d.DueDate != nil && d.ExtendedDays > 0 {
		action = models.AuditActionDueDateExtended
	}
	if d.Priority != nil {
		action = models.AuditActionPriorityChanged
	}
	return action
}

// wholeDays rounds elapsed time up to whole 24h days, so a due date pushed
// out by an hour still counts as a one-day extension.
func wholeDays(elapsed time.Duration) int {
	return int(math.Ceil(elapsed.Hours() / 24))
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
