package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrPermissionDenied = errors.New("you do not have permission to modify this prompt")
	ErrAlreadyApproved  = errors.New("prompt is already approved")
	ErrAlreadyRejected  = errors.New("prompt is already rejected")
)

const promptCacheDuration = 24 * time.Hour

func promptCacheKey(id uint) string {
	return fmt.Sprintf("prompt:id:%d", id)
}

// promptCacheEntry carries the owner's username alongside the row, since
// the User association is not part of the prompt's JSON form.
type promptCacheEntry struct {
	Prompt        models.Prompt `json:"prompt"`
	OwnerUsername string        `json:"owner_username"`
}

func invalidatePromptCache(id uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, promptCacheKey(id))
	}
}

// PromptInput holds the editable fields of a prompt as supplied by a caller.
type PromptInput struct {
	Title        string
	Description  string
	PromptText   string
	Guidance     string
	TaskType     string
	OutputFormat string
	Category     string
	IsPublic     bool
	// Status is the caller-requested status; it only takes effect for staff
	// writing public prompts, everyone else is governed by NextStatus.
	Status models.PromptStatus
}

func (in PromptInput) apply(p *models.Prompt) {
	p.Title = in.Title
	p.Description = in.Description
	p.PromptText = in.PromptText
	p.Guidance = in.Guidance
	p.TaskType = in.TaskType
	p.OutputFormat = in.OutputFormat
	p.Category = in.Category
	p.IsPublic = in.IsPublic
}

// PromptFilter is the listing query. Limit <= 0 means no limit; a negative
// Offset is clamped to zero.
type PromptFilter struct {
	Mine         bool
	Username     string
	Category     string
	TaskType     string
	OutputFormat string
	Status       string
	Search       string
	Offset       int
	Limit        int
}

// FindPrompts lists prompts visible to user under the filter, ordered by
// copy_count descending then created_at descending.
//
// Staff see their own prompts with mine=1, any user's prompts via the
// username filter, and otherwise all public prompts regardless of status.
// Regular users see their own prompts with mine=1 and otherwise only
// approved public prompts; their username filter deliberately has no
// effect beyond that.
func FindPrompts(user models.User, f PromptFilter) ([]models.Prompt, error) {
	db := database.DB.Model(&models.Prompt{}).Preload("User")

	if user.IsStaff() {
		if f.Mine {
			db = db.Where("user_id = ?", user.ID)
		} else if f.Username != "" {
			db = db.Where("user_id IN (SELECT id FROM users WHERE username = ?)", f.Username)
		} else {
			db = db.Where("is_public = ?", true)
		}
	} else {
		if f.Mine {
			db = db.Where("user_id = ?", user.ID)
		} else {
			db = db.Where("status = ? AND is_public = ?", models.PromptStatusApproved, true)
		}
	}

	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.TaskType != "" {
		db = db.Where("task_type = ?", f.TaskType)
	}
	if f.OutputFormat != "" {
		db = db.Where("output_format = ?", f.OutputFormat)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(prompt_text) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	db = db.Order("copy_count desc").Order("created_at desc").Offset(offset)
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	var prompts []models.Prompt
	if err := db.Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// withRowLock adds FOR UPDATE to the query so concurrent writers of the
// same prompt serialize inside their transactions. Under READ COMMITTED a
// blocked statement re-reads only the locked row, not the rest of its
// snapshot, so recomputing counters or checking pre-edit status without the
// lock can act on stale state. The sqlite test driver has no row locks and
// rejects the clause; its single writer serializes transactions anyway.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// getPromptByID fetches a prompt with its owner loaded, using the redis
// cache when available. Visibility is NOT checked here.
func getPromptByID(id uint) (*models.Prompt, error) {
	cacheKey := promptCacheKey(id)

	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var entry promptCacheEntry
			if err := json.Unmarshal([]byte(val), &entry); err == nil {
				entry.Prompt.User = models.User{Username: entry.OwnerUsername}
				return &entry.Prompt, nil
			}
		}
	}

	var prompt models.Prompt
	if err := database.DB.Preload("User").First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if database.RedisClient != nil {
		entry := promptCacheEntry{Prompt: prompt, OwnerUsername: prompt.User.Username}
		if data, err := json.Marshal(entry); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, promptCacheDuration)
		}
	}

	return &prompt, nil
}

// GetPromptForUser returns the prompt if user may see it. A prompt the user
// may not see answers ErrPromptNotFound, never a permission error, so that
// private and pending content does not leak its existence.
func GetPromptForUser(user models.User, id uint) (*models.Prompt, error) {
	prompt, err := getPromptByID(id)
	if err != nil {
		return nil, err
	}
	if !CanViewPrompt(user, *prompt) {
		return nil, ErrPromptNotFound
	}
	return prompt, nil
}

// CreatePrompt creates a prompt owned by user. Private prompts are
// auto-approved; public prompts from regular users always start pending.
func CreatePrompt(user models.User, in PromptInput) (*models.Prompt, error) {
	requested := in.Status
	if requested == "" {
		requested = models.PromptStatusPending
	}

	prompt := models.Prompt{UserID: user.ID}
	in.apply(&prompt)
	prompt.Status = NextStatus(requested, user.IsStaff(), in.IsPublic)

	if err := database.DB.Create(&prompt).Error; err != nil {
		return nil, err
	}

	prompt.User = user
	return &prompt, nil
}

// UpdatePrompt applies an edit. If the prompt was approved before the edit,
// its pre-edit state is snapshotted into the version store first; both
// writes happen in one transaction, under a row lock on the prompt so two
// concurrent edits cannot both read the approved pre-state and snapshot it
// twice.
func UpdatePrompt(user models.User, id uint, in PromptInput) (*models.Prompt, error) {
	var updated models.Prompt

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := withRowLock(tx).Preload("User").First(&prompt, id).Error; err != nil {
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

		if prompt.Status == models.PromptStatusApproved {
			if err := snapshotPrompt(tx, prompt, &user.ID); err != nil {
				return err
			}
		}

		in.apply(&prompt)
		prompt.Status = NextStatus(prompt.Status, user.IsStaff(), in.IsPublic)

		if err := tx.Save(&prompt).Error; err != nil {
			return err
		}

		updated = prompt
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidatePromptCache(id)
	return &updated, nil
}

// ApprovePrompt moves a pending or rejected prompt to approved. Staff only;
// the route enforces that. Approving an approved prompt is a conflict.
func ApprovePrompt(id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := database.DB.Preload("User").First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if prompt.Status == models.PromptStatusApproved {
		return nil, ErrAlreadyApproved
	}

	prompt.Status = models.PromptStatusApproved
	if err := database.DB.Save(&prompt).Error; err != nil {
		return nil, err
	}

	invalidatePromptCache(id)
	return &prompt, nil
}

// RejectPrompt moves a prompt to rejected from any state. Rejecting a
// rejected prompt is a conflict.
func RejectPrompt(id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := database.DB.Preload("User").First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if prompt.Status == models.PromptStatusRejected {
		return nil, ErrAlreadyRejected
	}

	prompt.Status = models.PromptStatusRejected
	if err := database.DB.Save(&prompt).Error; err != nil {
		return nil, err
	}

	invalidatePromptCache(id)
	return &prompt, nil
}

// UserEngagement returns the caller's vote value and bookmark flag for each
// of the given prompts, for the request-aware fields of the representation.
func UserEngagement(user models.User, promptIDs []uint) (map[uint]int, map[uint]bool, error) {
	votes := make(map[uint]int)
	bookmarks := make(map[uint]bool)
	if len(promptIDs) == 0 {
		return votes, bookmarks, nil
	}

	var voteRows []models.Vote
	if err := database.DB.Where("user_id = ? AND prompt_id IN ?", user.ID, promptIDs).Find(&voteRows).Error; err != nil {
		return nil, nil, err
	}
	for _, v := range voteRows {
		votes[v.PromptID] = v.Value
	}

	var bookmarkRows []models.Bookmark
	if err := database.DB.Where("user_id = ? AND prompt_id IN ?", user.ID, promptIDs).Find(&bookmarkRows).Error; err != nil {
		return nil, nil, err
	}
	for _, b := range bookmarkRows {
		bookmarks[b.PromptID] = true
	}

	return votes, bookmarks, nil
}
