package services

import (
	"errors"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"

	"gorm.io/gorm"
)

var ErrVersionNotFound = errors.New("version not found for this prompt")

// snapshotPrompt records the prompt's current editable fields as an
// immutable version, inside the caller's transaction. Only prompts that are
// approved before an edit get snapshotted; callers check that.
func snapshotPrompt(tx *gorm.DB, prompt models.Prompt, editorID *uint) error {
	version := models.PromptVersion{
		PromptID:     prompt.ID,
		EditedByID:   editorID,
		Title:        prompt.Title,
		Description:  prompt.Description,
		PromptText:   prompt.PromptText,
		Guidance:     prompt.Guidance,
		TaskType:     prompt.TaskType,
		OutputFormat: prompt.OutputFormat,
		Category:     prompt.Category,
	}
	return tx.Create(&version).Error
}

// PromptHistory returns a prompt's versions, newest first. Only the owner
// and staff may read history; other viewers of the prompt get a permission
// error, not an empty list.
func PromptHistory(user models.User, promptID uint) ([]models.PromptVersion, error) {
	prompt, err := GetPromptForUser(user, promptID)
	if err != nil {
		return nil, err
	}

	if !user.IsStaff() && prompt.UserID != user.ID {
		return nil, ErrPermissionDenied
	}

	var versions []models.PromptVersion
	if err := database.DB.
		Where("prompt_id = ?", promptID).
		Order("created_at desc").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// RevertPrompt copies a stored version's fields back onto the prompt. The
// version must belong to the prompt or the call answers ErrVersionNotFound
// and changes nothing. If the prompt is currently approved its state is
// snapshotted first, so the revert itself can be reverted. A revert is an
// edit: non-staff actors send the prompt back to pending review.
func RevertPrompt(user models.User, promptID, versionID uint) (*models.Prompt, error) {
	var reverted models.Prompt

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := withRowLock(tx).Preload("User").First(&prompt, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return err
		}

		if !CanViewPrompt(user, prompt) {
			return ErrPromptNotFound
		}
		if !CanEditPrompt(user, prompt) {
			return ErrPermissionDenied
		}

		var version models.PromptVersion
		if err := tx.Where("id = ? AND prompt_id = ?", versionID, promptID).First(&version).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVersionNotFound
			}
			return err
		}

		if prompt.Status == models.PromptStatusApproved {
			if err := snapshotPrompt(tx, prompt, &user.ID); err != nil {
				return err
			}
		}

		prompt.Title = version.Title
		prompt.Description = version.Description
		prompt.PromptText = version.PromptText
		prompt.Guidance = version.Guidance
		prompt.TaskType = version.TaskType
		prompt.OutputFormat = version.OutputFormat
		prompt.Category = version.Category

		if !user.IsStaff() {
			prompt.Status = models.PromptStatusPending
		}

		if err := tx.Save(&prompt).Error; err != nil {
			return err
		}

		reverted = prompt
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidatePromptCache(promptID)
	return &reverted, nil
}
