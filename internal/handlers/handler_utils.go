package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/internal/services"
)

// currentUserID returns the authenticated user's id placed in the context
// by the auth middleware.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	userID, _ := id.(string)
	return userID
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func failBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func failNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

func failServer(c *gin.Context, err error, context string) {
	slog.Error(context, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "系統發生錯誤，請稍後再試"})
}

// failService maps a service-layer error onto the uniform response DTO.
// Not-found lookups become 404, business-rule violations 400, everything
// else a logged 500.
func failService(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, services.ErrUserNotFound):
		failNotFound(c, err.Error())
	case errors.Is(err, services.ErrBudgetNotSet),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrWrongOldPassword):
		failBadRequest(c, err.Error())
	default:
		failServer(c, err, context)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		failBadRequest(c, "無效的編號")
		return 0, false
	}
	return uint(id), true
}

func parsePeriod(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		failBadRequest(c, "無效的年份")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		failBadRequest(c, "無效的月份")
		return 0, 0, false
	}
	return year, month, true
}
