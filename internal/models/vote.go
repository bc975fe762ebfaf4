package models

import "time"

// Vote is one user's vote on one prompt. Value is +1 or -1; casting the
// same value again deletes the row (toggle-off).
type Vote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"uniqueIndex:idx_votes_user_prompt;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PromptID  uint      `gorm:"uniqueIndex:idx_votes_user_prompt;not null" json:"prompt_id"`
	Prompt    Prompt    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Value     int       `gorm:"not null" json:"value"`
}
