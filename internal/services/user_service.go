package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"time"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const userCacheDuration = time.Hour

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheDuration)
		}
	}

	return user, nil
}

func FindUserByUsername(username string) (models.User, error) {
	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}
