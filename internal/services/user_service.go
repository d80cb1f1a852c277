package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/models"
)

var (
	ErrUsernameTaken      = errors.New("此帳號已存在")
	ErrEmailTaken         = errors.New("此電子郵件已被註冊")
	ErrInvalidCredentials = errors.New("帳號或密碼錯誤")
	ErrAccountDisabled    = errors.New("此帳號已停用")
	ErrWrongOldPassword   = errors.New("舊密碼錯誤")
	ErrUserNotFound       = errors.New("查無此使用者")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

// RegisterUser creates an account after checking username and email
// uniqueness. The password is stored as a bcrypt hash only.
func RegisterUser(db *gorm.DB, in RegisterInput) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if in.Email != "" {
		if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}

	user := models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		DisplayName:  displayName,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser verifies credentials and refreshes the last-login
// timestamp. Unknown usernames and wrong passwords return the same error so
// the response does not leak which accounts exist.
func AuthenticateUser(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUsernameAvailable reports whether no account uses the given username.
func IsUsernameAvailable(db *gorm.DB, username string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetUser loads an account by id.
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the display name and email of an account.
func UpdateProfile(db *gorm.DB, userID, displayName, email string) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		var count int64
		if err := db.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	user.DisplayName = displayName
	user.Email = email
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password hash after verifying the old one.
func ChangePassword(db *gorm.DB, userID, oldPassword, newPassword string) error {
	user, err := GetUser(db, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(user).Update("password_hash", string(hash)).Error
}
