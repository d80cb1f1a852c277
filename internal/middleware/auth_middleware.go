package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
)

// CachedUserData is the per-user payload kept in the cache so authenticated
// requests skip the user-database lookup.
type CachedUserData struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// AuthMiddleware validates the JWT from the Authorization header (or the
// auth_token cookie) and loads the authenticated user into the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		}, jwt.WithIssuer(config.JwtIssuer), jwt.WithAudience(config.JwtAudience))

		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			handleAuthError(c, "Invalid user ID in token")
			return
		}

		cacheKey := fmt.Sprintf("user:%s:data", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cached), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("failed to unmarshal cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("redis GET failed", "error", err, "user_id", userID)
			}
		}

		user, err := services.GetUser(config.UserDB, userID)
		if err != nil || !user.IsActive {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "User from token not found")
			return
		}

		userData := CachedUserData{
			UserID:      user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
		}

		if config.RDB != nil {
			if jsonData, err := json.Marshal(userData); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
					slog.Error("failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &userData)
	}
}

// InvalidateUserCache drops the cached user data after a profile change.
func InvalidateUserCache(userID string) {
	if config.RDB == nil {
		return
	}
	cacheKey := fmt.Sprintf("user:%s:data", userID)
	if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
		slog.Warn("failed to invalidate user cache", "error", err, "user_id", userID)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("username", userData.Username)
	c.Set("display_name", userData.DisplayName)
	c.Next()
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}
