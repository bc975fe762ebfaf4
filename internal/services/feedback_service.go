package services

import (
	"errors"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"

	"gorm.io/gorm"
)

var ErrNoPendingFeedback = errors.New("no pending feedback found")

// StartFeedbackSurvey opens a post-copy survey for (user, prompt). Any
// pending survey the user already has, for any prompt, is abandoned first
// so at most one pending row per user ever exists.
func StartFeedbackSurvey(user models.User, promptID uint) (*models.Prompt, error) {
	prompt, err := getPromptByID(promptID)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND status = ?", user.ID, models.FeedbackStatusPending).
			Delete(&models.CopiedPromptFeedback{}).Error; err != nil {
			return err
		}

		feedback := models.CopiedPromptFeedback{
			UserID:   user.ID,
			PromptID: promptID,
			Status:   models.FeedbackStatusPending,
		}
		return tx.Create(&feedback).Error
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// CheckPendingFeedback returns the user's most recent pending survey with
// its prompt loaded, or nil when none is open.
func CheckPendingFeedback(user models.User) (*models.CopiedPromptFeedback, error) {
	var pending models.CopiedPromptFeedback
	err := database.DB.
		Preload("Prompt").
		Where("user_id = ? AND status = ?", user.ID, models.FeedbackStatusPending).
		Order("created_at desc").
		First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pending, nil
}

// SubmitFeedback resolves the user's pending survey for the prompt. The
// free-text comment is stored regardless of outcome; the rating only when
// the survey was actually submitted rather than skipped.
func SubmitFeedback(user models.User, promptID uint, status models.FeedbackStatus, rating *int, text string) error {
	var feedback models.CopiedPromptFeedback
	err := database.DB.
		Where("user_id = ? AND prompt_id = ? AND status = ?", user.ID, promptID, models.FeedbackStatusPending).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPendingFeedback
		}
		return err
	}

	feedback.Status = status
	feedback.FeedbackText = text
	if status == models.FeedbackStatusSubmitted && rating != nil {
		feedback.Rating = rating
	}

	return database.DB.Save(&feedback).Error
}
