package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasklog/internal/middleware"
	"tasklog/internal/models"
	"tasklog/internal/service"
)

type taskResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Completed     bool       `json:"completed"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	OwnerID       string     `json:"ownerId"`
	OwnerUsername string     `json:"ownerUsername,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toTaskResponse(t models.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Completed:     t.Completed,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate,
		OwnerID:       t.OwnerID,
		OwnerUsername: t.OwnerUsername,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (h HandlerSet) ListTasks(c *gin.Context) {
	principal := middleware.Principal(c)

	tasks, err := h.taskService.List(c.Request.Context(), principal, c.Query("ownerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskResponse(task))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	OwnerID     string `json:"ownerId"`
}

func (h HandlerSet) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), middleware.Principal(c), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     dueDate,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": toTaskResponse(task)})
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	// ClearDueDate removes the due date; an absent dueDate field leaves it
	// unchanged.
	ClearDueDate bool  `json:"clearDueDate"`
	Completed    *bool `json:"completed"`
}

func (h HandlerSet) UpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.DueDate = dueDate
		patch.DueDateSet = true
	} else if req.ClearDueDate {
		patch.DueDateSet = true
	}

	if err := h.taskService.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h HandlerSet) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) ToggleTask(c *gin.Context) {
	if err := h.taskService.Toggle(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type auditEntryResponse struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"taskId"`
	ActorID   string          `json:"actorId"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (h HandlerSet) ListTaskLogs(c *gin.Context) {
	entries, err := h.taskService.ListAuditEntries(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, auditEntryResponse{
			ID:        entry.ID,
			TaskID:    entry.TaskID,
			ActorID:   entry.ActorID,
			Action:    string(entry.Action),
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entries": items})
}

// parseDueDate accepts RFC 3339 or a bare date; the empty string is no due
// date at all.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid dueDate %q", raw)
	}
	return &t, nil
}
