package models

import "time"

type FeedbackStatus string

const (
	FeedbackStatusPending   FeedbackStatus = "pending"
	FeedbackStatusSubmitted FeedbackStatus = "submitted"
	FeedbackStatusSkipped   FeedbackStatus = "skipped"
)

// CopiedPromptFeedback tracks the post-copy survey. A user has at most one
// pending row at any time; starting a new survey abandons the previous one.
type CopiedPromptFeedback struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	User         User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PromptID     uint           `gorm:"index;not null" json:"prompt_id"`
	Prompt       Prompt         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status       FeedbackStatus `gorm:"index;not null;default:'pending'" json:"status"`
	Rating       *int           `json:"rating"`
	FeedbackText string         `gorm:"type:text" json:"feedback_text"`
}
