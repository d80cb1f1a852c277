package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/config"
)

var startTime = time.Now()

// HealthHandler is the liveness probe.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// DetailedHealthHandler reports uptime plus the status of every backing
// service.
func DetailedHealthHandler(c *gin.Context) {
	status := http.StatusOK
	userDB := pingStatus(config.UserDB)
	expenseDB := pingStatus(config.ExpenseDB)
	if userDB != "ok" || expenseDB != "ok" {
		status = http.StatusServiceUnavailable
	}

	cache := "disabled"
	if config.RDB != nil {
		cache = "ok"
		if err := config.RDB.Ping(config.Ctx).Err(); err != nil {
			cache = "unreachable"
		}
	}

	c.JSON(status, gin.H{
		"status":    statusWord(status),
		"uptime":    time.Since(startTime).Round(time.Second).String(),
		"timestamp": time.Now().UTC(),
		"databases": gin.H{
			"users":    userDB,
			"expenses": expenseDB,
		},
		"cache": cache,
	})
}

// DatabaseHealthHandler is the readiness probe for both SQLite files.
func DatabaseHealthHandler(c *gin.Context) {
	userDB := pingStatus(config.UserDB)
	expenseDB := pingStatus(config.ExpenseDB)

	status := http.StatusOK
	if userDB != "ok" || expenseDB != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status": statusWord(status),
		"databases": gin.H{
			"users":    userDB,
			"expenses": expenseDB,
		},
	})
}

func pingStatus(db *gorm.DB) string {
	if db == nil {
		return "not connected"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
