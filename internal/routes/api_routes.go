package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/internal/handlers"
)

// RegisterAPIRoutes registers every authenticated API endpoint.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		expense := apiGroup.Group("/expense")
		{
			expense.GET("/budget/current", handlers.GetCurrentBudgetHandler)
			expense.POST("/budget", handlers.SetBudgetHandler)

			expense.POST("/cash", handlers.AddCashExpenseHandler)
			expense.GET("/cash/:id", handlers.GetCashExpenseHandler)
			expense.PUT("/cash/:id", handlers.UpdateCashExpenseHandler)
			expense.DELETE("/cash/:id", handlers.DeleteCashExpenseHandler)

			expense.POST("/credit-card", handlers.AddCreditCardExpenseHandler)
			expense.GET("/credit-card/:id", handlers.GetCreditCardExpenseHandler)
			expense.PUT("/credit-card/:id", handlers.UpdateCreditCardExpenseHandler)
			expense.DELETE("/credit-card/:id", handlers.DeleteCreditCardExpenseHandler)

			expense.GET("/history/:year/:month", handlers.GetHistoryHandler)
			expense.GET("/history/:year/:month/export", handlers.ExportHistoryHandler)

			// Bare-id routes kept for clients of the original API; they
			// operate on cash expenses like their /cash counterparts.
			expense.GET("/:id", handlers.GetCashExpenseHandler)
			expense.PUT("/:id", handlers.UpdateCashExpenseHandler)
			expense.DELETE("/:id", handlers.DeleteCashExpenseHandler)
		}

		user := apiGroup.Group("/user")
		{
			user.GET("/profile", handlers.GetProfileHandler)
			user.PUT("/profile", handlers.UpdateProfileHandler)
			user.PUT("/change-password", handlers.ChangePasswordHandler)
		}
	}
}
