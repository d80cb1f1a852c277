package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/internal/handlers"
	"github.com/NaokiHung/BA.System-sub000/internal/middleware"
)

// SetupRoutes registers every route of the application.
func SetupRoutes(r *gin.Engine) {
	// Public routes first: auth endpoints and health probes carry no token.
	RegisterAuthRoutes(r)

	r.GET("/health", handlers.HealthHandler)
	r.GET("/health/detailed", handlers.DetailedHealthHandler)
	r.GET("/health/database", handlers.DatabaseHealthHandler)

	// Everything under the protected group requires a valid JWT.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
