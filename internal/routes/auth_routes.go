package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/internal/handlers"
)

// RegisterAuthRoutes registers the public authentication endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/register", handlers.RegisterHandler)
		auth.GET("/check-username/:username", handlers.CheckUsernameHandler)
	}
}
