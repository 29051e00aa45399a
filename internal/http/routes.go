package http

import (
	"taskdeck/internal/config"
	"taskdeck/internal/http/handlers"
	"taskdeck/internal/http/middleware"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
	"taskdeck/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires repositories, services and handlers onto the gin
// engine and starts the change-event hub.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	auth := service.NewAuthService(repository.NewUserRepository(db), tokens)
	projects := service.NewProjectService(repository.NewProjectRepository(db))
	tasks := service.NewTaskService(repository.NewTaskRepository(db))

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.NewHandler(auth, projects, tasks, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	guard := middleware.Auth(auth)

	projectRoutes := api.Group("/projects", guard)
	{
		projectRoutes.GET("", h.ListProjects)
		projectRoutes.POST("", h.CreateProject)
		projectRoutes.GET("/:id", h.GetProject)
		projectRoutes.PUT("/:id", h.UpdateProject)
		projectRoutes.DELETE("/:id", h.DeleteProject)
	}

	taskRoutes := api.Group("/tasks", guard)
	{
		taskRoutes.GET("", h.ListTasks)
		taskRoutes.POST("", h.CreateTask)
		taskRoutes.PUT("/:id", h.UpdateTask)
		taskRoutes.PATCH("/:id/toggle", h.ToggleTask)
		taskRoutes.DELETE("/:id", h.DeleteTask)
	}

	r.GET("/ws", h.WS(hub))
}
