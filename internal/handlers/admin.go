package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasklog/internal/middleware"
	"tasklog/internal/models"
	"tasklog/internal/service"
)

type userSummaryResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	TaskCount int       `json:"taskCount"`
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	summaries, err := h.userService.List(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]userSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, userSummaryResponse{
			ID:        s.ID,
			Username:  s.Username,
			Role:      string(s.Role),
			CreatedAt: s.CreatedAt,
			TaskCount: s.TaskCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": items})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), middleware.Principal(c), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}})
}
