package services

import (
	"errors"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidVoteValue = errors.New("vote value must be 1 or -1")

// CastVote applies a user's vote on a prompt with toggle semantics: a first
// vote creates the row, repeating the same value removes it, and the
// opposite value updates it in place. The prompt row is locked for the
// transaction, so concurrent votes on the same prompt serialize and each
// recompute sees the complete ledger; without the lock a blocked writer
// would recount from a snapshot that predates the competing vote.
func CastVote(user models.User, promptID uint, value int) (*models.Prompt, error) {
	if value != 1 && value != -1 {
		return nil, ErrInvalidVoteValue
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := withRowLock(tx).First(&prompt, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return err
		}

		if !CanViewPrompt(user, prompt) {
			return ErrPromptNotFound
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND prompt_id = ?", user.ID, promptID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: user.ID, PromptID: promptID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Value == value:
			// Same value twice toggles the vote off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		default:
			existing.Value = value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}

		return recomputeVoteCounters(tx, promptID)
	})
	if err != nil {
		return nil, err
	}

	invalidatePromptCache(promptID)
	return getPromptByID(promptID)
}

// recomputeVoteCounters derives like_count, dislike_count and vote from the
// vote ledger. The caller must hold the prompt's row lock. The invariant
// vote == like_count - dislike_count holds because all three are written
// from the same statement.
func recomputeVoteCounters(tx *gorm.DB, promptID uint) error {
	return tx.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		Updates(map[string]interface{}{
			"like_count":    gorm.Expr("(SELECT COUNT(*) FROM votes WHERE prompt_id = ? AND value = 1)", promptID),
			"dislike_count": gorm.Expr("(SELECT COUNT(*) FROM votes WHERE prompt_id = ? AND value = -1)", promptID),
			"vote": gorm.Expr(
				"(SELECT COUNT(*) FROM votes WHERE prompt_id = ? AND value = 1) - (SELECT COUNT(*) FROM votes WHERE prompt_id = ? AND value = -1)",
				promptID, promptID,
			),
		}).Error
}

// RecordCopy bumps the prompt's copy counter with an atomic in-database
// increment; concurrent copies from different users all land. Prompts the
// caller may not see answer ErrPromptNotFound so the counter cannot be used
// to confirm a private prompt exists.
func RecordCopy(user models.User, promptID uint) (int, error) {
	prompt, err := getPromptByID(promptID)
	if err != nil {
		return 0, err
	}
	if !CanViewPrompt(user, *prompt) {
		return 0, ErrPromptNotFound
	}

	result := database.DB.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn("copy_count", gorm.Expr("copy_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrPromptNotFound
	}

	invalidatePromptCache(promptID)

	var updated models.Prompt
	if err := database.DB.Select("copy_count").First(&updated, promptID).Error; err != nil {
		return 0, err
	}
	return updated.CopyCount, nil
}
