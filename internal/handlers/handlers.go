package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tasklog/internal/config"
	"tasklog/internal/middleware"
	"tasklog/internal/ratelimit"
	"tasklog/internal/repository"
	"tasklog/internal/service"
	"tasklog/internal/session"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	sessions    *session.Manager
	authService *service.AuthService
	taskService *service.TaskService
	userService *service.UserService
	db          *pgxpool.Pool
	cache       *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	taskRepo := repository.NewTaskRepository(db, auditRepo)

	limiter := ratelimit.NewLoginLimiter(cache, cfg.Security.LoginMaxAttempts, cfg.Security.LoginWindow, log)
	sessions := session.NewManager(cfg)

	auth := service.NewAuthService(userRepo, limiter, log)
	tasks := service.NewTaskService(taskRepo, auditRepo, log)
	users := service.NewUserService(userRepo, cfg.Security.BcryptCost, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		sessions:    sessions,
		authService: auth,
		taskService: tasks,
		userService: users,
		db:          db,
		cache:       cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.Session(h.sessions))
	{
		auth := v1.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)

		tasks := v1.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.PATCH("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/toggle", h.ToggleTask)
		tasks.GET("/:id/logs", h.ListTaskLogs)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
	}
}
