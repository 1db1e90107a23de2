package app

import (
	"wellmind_backend/internal/config"
	"wellmind_backend/internal/middleware"
	"wellmind_backend/internal/model"

	"wellmind_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/screening-flows", c.screening.ListFlows)

		// Version details expose authored rule source, so they are staff-only.
		staff := middleware.RoleMiddleware(model.Clinician)
		authGroup.GET("/screening-flows/:id", staff, c.screening.GetFlow)
		authGroup.GET("/screenings/:id", staff, c.screening.GetScreening)

		authGroup.POST("/screening-sessions", c.session.CreateSession)
		authGroup.GET("/screening-sessions", c.session.ListMySessions)
		authGroup.GET("/screening-sessions/:id", c.session.GetSession)
		authGroup.GET("/screening-sessions/:id/next-question", c.session.NextQuestion)
		authGroup.POST("/screening-answers", c.session.SubmitAnswers)
	}
}
