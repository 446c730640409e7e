package routes

import (
	"todo-panel/internal/api/handlers"
	"todo-panel/internal/api/middleware"
	"todo-panel/internal/config"
	"todo-panel/internal/metrics"
	"todo-panel/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)
	sessionService := services.NewSessionService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessionService, cfg)
	taskHandler := handlers.NewTaskHandler(cfg)
	userHandler := handlers.NewUserHandler(cfg)

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestMetrics())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "todo-panel API is running",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.RequireSession(sessionService))
	{
		// Auth routes (protected)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)

		// Task routes (owner scoped; update/delete allow admins)
		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Self-or-admin password change
		protected.POST("/users/:id/password", userHandler.UpdatePassword)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/tasks", taskHandler.GetAllTasks)
			admin.POST("/tasks", taskHandler.AdminCreateTask)
			admin.DELETE("/tasks", taskHandler.DeleteAllTasks)

			admin.GET("/users", userHandler.GetUsers)
			admin.GET("/users/:id", userHandler.GetUser)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}
}
