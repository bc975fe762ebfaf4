package services

import (
	"errors"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"

	"gorm.io/gorm"
)

// ToggleBookmark creates the user's bookmark on the prompt if absent and
// removes it if present, returning the prompt either way.
func ToggleBookmark(user models.User, promptID uint) (*models.Prompt, error) {
	prompt, err := getPromptByID(promptID)
	if err != nil {
		return nil, err
	}

	var existing models.Bookmark
	err = database.DB.Where("user_id = ? AND prompt_id = ?", user.ID, promptID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		bookmark := models.Bookmark{UserID: user.ID, PromptID: promptID}
		if err := database.DB.Create(&bookmark).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := database.DB.Delete(&existing).Error; err != nil {
			return nil, err
		}
	}

	return prompt, nil
}
