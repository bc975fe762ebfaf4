package services

import (
	"os"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/utils"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserFirstBecomesStaff(t *testing.T) {
	setupTestDB()

	first, err := RegisterUser("alice", "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStaff, first.Role)
	assert.True(t, first.IsStaff())

	second, err := RegisterUser("bob", "bob@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, second.Role)

	_, err = RegisterUser("alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser(t *testing.T) {
	setupTestDB()
	os.Setenv("JWT_SECRET", "test_secret")

	_, err := RegisterUser("alice", "alice@example.com", "password123")
	assert.NoError(t, err)

	token, user, err := LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	// Password hashes never round-trip through the API
	assert.NotEqual(t, "password123", user.Password)

	claims, err := utils.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, models.RoleStaff, claims["role"])

	_, _, err = LoginUser("alice", "wrong")
	assert.Error(t, err)

	_, _, err = LoginUser("nobody", "password123")
	assert.Error(t, err)
}

func TestFindUserByID(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	created, err := RegisterUser("alice", "alice@example.com", "password123")
	assert.NoError(t, err)

	found, err := FindUserByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	// Second lookup is served from cache
	found, err = FindUserByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = FindUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	database.DB.Delete(&models.User{}, created.ID)
	// Still cached after the delete; the TTL bounds the staleness
	_, err = FindUserByID(created.ID)
	assert.NoError(t, err)
}
