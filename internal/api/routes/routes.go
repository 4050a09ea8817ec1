package routes

import (
	"log"

	"teammate-backend/internal/api/handlers"
	"teammate-backend/internal/api/middleware"
	"teammate-backend/internal/auth"
	"teammate-backend/internal/config"
	"teammate-backend/internal/repository"
	"teammate-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	developerRepo := repository.NewDeveloperRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	openRoleRepo := repository.NewOpenRoleRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	permissionService := service.NewPermissionService(projectRepo, membershipRepo)
	scoreService := service.NewScoreService(projectRepo, openRoleRepo, ratingRepo)
	projectService := service.NewProjectService(projectRepo, validator)
	membershipService := service.NewMembershipService(membershipRepo, projectRepo, validator)
	openRoleService := service.NewOpenRoleService(openRoleRepo, projectRepo, scoreService, validator)
	applicationService := service.NewApplicationService(applicationRepo, projectRepo, membershipRepo, openRoleRepo, validator)
	ratingService := service.NewRatingService(ratingRepo, projectRepo, membershipRepo, scoreService, validator)
	taskService := service.NewTaskService(taskRepo, projectRepo, membershipRepo, validator)
	developerService := service.NewDeveloperService(developerRepo, validator)
	directoryService := service.NewDirectoryService(cfg)

	// Initialize auth configuration and services
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		// Continue without auth if config fails to load
		authConfig = nil
	}

	var authHandler *auth.AuthHandler
	var authMiddleware *auth.AuthMiddleware
	if authConfig != nil {
		authService, err := auth.NewAuthService(authConfig, developerRepo)
		if err != nil {
			log.Printf("Warning: Failed to initialize auth service: %v", err)
		} else {
			authHandler = auth.NewAuthHandler(authService)
			authMiddleware = auth.NewAuthMiddleware(authService)
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	developerHandler := handlers.NewDeveloperHandler(developerService)
	projectHandler := handlers.NewProjectHandler(projectService, permissionService)
	membershipHandler := handlers.NewMembershipHandler(membershipService, permissionService)
	openRoleHandler := handlers.NewOpenRoleHandler(openRoleService, permissionService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, permissionService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	taskHandler := handlers.NewTaskHandler(taskService, permissionService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")

	requireAuth := func() gin.HandlerFunc {
		if authMiddleware != nil {
			return authMiddleware.RequireAuth()
		}
		return func(c *gin.Context) { c.Next() }
	}
	optionalAuth := func() gin.HandlerFunc {
		if authMiddleware != nil {
			return authMiddleware.OptionalAuth()
		}
		return func(c *gin.Context) { c.Next() }
	}

	// Auth routes
	if authHandler != nil {
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/github/start", authHandler.Start)
			authGroup.GET("/github/callback", authHandler.Callback)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/validate", authHandler.Validate)
		}
	}

	{
		// Developer routes
		developers := v1.Group("/developers")
		{
			developers.POST("", developerHandler.Register)
			developers.GET("", developerHandler.SearchDevelopers)
			developers.GET("/leaderboard", developerHandler.Leaderboard)
			developers.GET("/me", requireAuth(), developerHandler.GetCurrentDeveloper)
			developers.PATCH("/me", requireAuth(), developerHandler.UpdateCurrentDeveloper)
			developers.GET("/:id", developerHandler.GetDeveloper)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", requireAuth(), projectHandler.CreateProject)
			projects.GET("/uid/:uid", projectHandler.GetProjectByUID)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", requireAuth(), projectHandler.UpdateProject)
			projects.PUT("/:id/stage", requireAuth(), projectHandler.UpdateStage)
			projects.DELETE("/:id", requireAuth(), projectHandler.DeleteProject)

			// Membership routes
			projects.GET("/:id/members", membershipHandler.ListMemberships)
			projects.PATCH("/:id/members/:membershipId", requireAuth(), membershipHandler.UpdateMembership)
			projects.DELETE("/:id/members/:membershipId", requireAuth(), membershipHandler.RemoveMembership)

			// Open-role routes
			projects.GET("/:id/open-roles", openRoleHandler.ListOpenRoles)
			projects.POST("/:id/open-roles", requireAuth(), openRoleHandler.CreateOpenRole)
			projects.DELETE("/:id/open-roles/:roleId", requireAuth(), openRoleHandler.DeleteOpenRole)

			// Application routes
			projects.POST("/:id/applications", requireAuth(), applicationHandler.Apply)
			projects.GET("/:id/applications", requireAuth(), applicationHandler.ListApplications)
			projects.POST("/:id/applications/:applicationId/approve", requireAuth(), applicationHandler.ApproveApplication)
			projects.POST("/:id/applications/:applicationId/reject", requireAuth(), applicationHandler.RejectApplication)

			// Rating routes
			projects.GET("/:id/ratings", ratingHandler.ListRatings)
			projects.POST("/:id/ratings", requireAuth(), ratingHandler.RateProject)

			// Task routes
			projects.GET("/:id/tasks", optionalAuth(), taskHandler.ListTasks)
			projects.POST("/:id/tasks", requireAuth(), taskHandler.CreateTask)
			projects.PATCH("/:id/tasks/:taskId", requireAuth(), taskHandler.UpdateTask)
			projects.DELETE("/:id/tasks/:taskId", requireAuth(), taskHandler.DeleteTask)
		}

		// Directory routes
		if cfg.LDAPConfigured() {
			v1.GET("/directory/search", requireAuth(), directoryHandler.SearchDirectory)
		}
	}

	return router
}
