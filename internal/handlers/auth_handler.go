package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
	"github.com/NaokiHung/BA.System-sub000/models"
)

// LoginInput is the credentials payload for POST /api/auth/login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput is the payload for POST /api/auth/register.
type RegisterInput struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=6"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"displayName" binding:"max=100"`
}

// LoginHandler verifies credentials and issues a 24h bearer token.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}

	user, err := services.AuthenticateUser(config.UserDB, input.Username, input.Password)
	if err != nil {
		failService(c, err, "login failed")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		failServer(c, err, "failed to sign token")
		return
	}

	respondOK(c, "登入成功", gin.H{
		"token":       token,
		"userId":      user.ID,
		"username":    user.Username,
		"displayName": user.DisplayName,
		"expiresIn":   int(config.TokenLifetime.Seconds()),
	})
}

// RegisterHandler creates a new account.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}

	user, err := services.RegisterUser(config.UserDB, services.RegisterInput{
		Username:    input.Username,
		Password:    input.Password,
		Email:       input.Email,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		failService(c, err, "registration failed")
		return
	}

	respondCreated(c, "註冊成功", gin.H{
		"userId":      user.ID,
		"username":    user.Username,
		"displayName": user.DisplayName,
	})
}

// CheckUsernameHandler reports whether a username is still free.
func CheckUsernameHandler(c *gin.Context) {
	username := c.Param("username")
	available, err := services.IsUsernameAvailable(config.UserDB, username)
	if err != nil {
		failServer(c, err, "username check failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": available})
}

func generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"name":        user.Username,
		"displayName": user.DisplayName,
		"iss":         config.JwtIssuer,
		"aud":         config.JwtAudience,
		"iat":         now.Unix(),
		"exp":         now.Add(config.TokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey)
}
