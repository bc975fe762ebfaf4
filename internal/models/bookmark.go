package models

import "time"

// Bookmark has boolean-presence semantics: a row exists iff the user has
// the prompt bookmarked.
type Bookmark struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"uniqueIndex:idx_bookmarks_user_prompt;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PromptID  uint      `gorm:"uniqueIndex:idx_bookmarks_user_prompt;not null" json:"prompt_id"`
	Prompt    Prompt    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
