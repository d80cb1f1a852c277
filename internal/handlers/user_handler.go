package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/middleware"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
)

// UpdateProfileInput is the payload for PUT /api/user/profile.
type UpdateProfileInput struct {
	DisplayName string `json:"displayName" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordInput is the payload for PUT /api/user/change-password.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// GetProfileHandler returns the authenticated user's profile.
func GetProfileHandler(c *gin.Context) {
	user, err := services.GetUser(config.UserDB, currentUserID(c))
	if err != nil {
		failService(c, err, "failed to load profile")
		return
	}
	respondOK(c, "", gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"createdAt":   user.CreatedAt,
		"lastLoginAt": user.LastLoginAt,
	})
}

// UpdateProfileHandler changes display name and email, then drops the
// cached user data so the next request sees the new values.
func UpdateProfileHandler(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)

	user, err := services.UpdateProfile(config.UserDB, userID, input.DisplayName, input.Email)
	if err != nil {
		failService(c, err, "failed to update profile")
		return
	}

	middleware.InvalidateUserCache(userID)
	respondOK(c, "個人資料更新成功", gin.H{
		"displayName": user.DisplayName,
		"email":       user.Email,
	})
}

// ChangePasswordHandler replaces the password after verifying the old one.
func ChangePasswordHandler(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)

	if err := services.ChangePassword(config.UserDB, userID, input.OldPassword, input.NewPassword); err != nil {
		failService(c, err, "failed to change password")
		return
	}
	respondOK(c, "密碼變更成功", nil)
}
