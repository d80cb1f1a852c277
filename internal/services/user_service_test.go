package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/models"
)

type UserServiceSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *UserServiceSuite) SetupTest() {
	db := newTestDB(s.T())
	require.NoError(s.T(), db.AutoMigrate(&models.User{}))
	s.db = db
}

func (s *UserServiceSuite) register(username string) *models.User {
	user, err := RegisterUser(s.db, RegisterInput{
		Username: username,
		Password: "secret123",
		Email:    username + "@example.com",
	})
	require.NoError(s.T(), err)
	return user
}

func (s *UserServiceSuite) TestRegisterAssignsGUIDAndHashesPassword() {
	user := s.register("naoki")

	assert.Len(s.T(), user.ID, 36)
	assert.NotEqual(s.T(), "secret123", user.PasswordHash)
	assert.True(s.T(), user.IsActive)
	// DisplayName falls back to the username.
	assert.Equal(s.T(), "naoki", user.DisplayName)
}

func (s *UserServiceSuite) TestRegisterDuplicateUsername() {
	s.register("naoki")

	_, err := RegisterUser(s.db, RegisterInput{Username: "naoki", Password: "other456", Email: "other@example.com"})
	require.ErrorIs(s.T(), err, ErrUsernameTaken)
	assert.Equal(s.T(), "此帳號已存在", err.Error())
}

func (s *UserServiceSuite) TestRegisterDuplicateEmail() {
	s.register("naoki")

	_, err := RegisterUser(s.db, RegisterInput{Username: "other", Password: "other456", Email: "naoki@example.com"})
	assert.ErrorIs(s.T(), err, ErrEmailTaken)
}

func (s *UserServiceSuite) TestAuthenticate() {
	s.register("naoki")

	user, err := AuthenticateUser(s.db, "naoki", "secret123")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), user.LastLoginAt)

	_, err = AuthenticateUser(s.db, "naoki", "wrongpass")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	// Unknown usernames return the same error as wrong passwords.
	_, err = AuthenticateUser(s.db, "ghost", "secret123")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *UserServiceSuite) TestAuthenticateDisabledAccount() {
	user := s.register("naoki")
	require.NoError(s.T(), s.db.Model(user).Update("is_active", false).Error)

	_, err := AuthenticateUser(s.db, "naoki", "secret123")
	assert.ErrorIs(s.T(), err, ErrAccountDisabled)
}

func (s *UserServiceSuite) TestIsUsernameAvailable() {
	s.register("naoki")

	available, err := IsUsernameAvailable(s.db, "naoki")
	require.NoError(s.T(), err)
	assert.False(s.T(), available)

	available, err = IsUsernameAvailable(s.db, "fresh")
	require.NoError(s.T(), err)
	assert.True(s.T(), available)
}

func (s *UserServiceSuite) TestChangePassword() {
	user := s.register("naoki")

	err := ChangePassword(s.db, user.ID, "wrongold", "newpass789")
	assert.ErrorIs(s.T(), err, ErrWrongOldPassword)

	require.NoError(s.T(), ChangePassword(s.db, user.ID, "secret123", "newpass789"))

	_, err = AuthenticateUser(s.db, "naoki", "secret123")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
	_, err = AuthenticateUser(s.db, "naoki", "newpass789")
	assert.NoError(s.T(), err)
}

func (s *UserServiceSuite) TestUpdateProfile() {
	user := s.register("naoki")
	other := s.register("other")

	updated, err := UpdateProfile(s.db, user.ID, "Naoki Hung", "new@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Naoki Hung", updated.DisplayName)
	assert.Equal(s.T(), "new@example.com", updated.Email)

	// Cannot take another account's email.
	_, err = UpdateProfile(s.db, user.ID, "Naoki Hung", other.Email)
	assert.ErrorIs(s.T(), err, ErrEmailTaken)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}
