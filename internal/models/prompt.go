package models

import "time"

type PromptStatus string

const (
	PromptStatusPending  PromptStatus = "pending"
	PromptStatusApproved PromptStatus = "approved"
	PromptStatusRejected PromptStatus = "rejected"
)

// Prompt is the current state of a shared prompt. The engagement counters
// (like_count, dislike_count, vote, copy_count) are denormalized; vote is
// always recomputed as like_count - dislike_count from the votes table,
// never adjusted incrementally.
type Prompt struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	User         User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"prompt_description"`
	PromptText   string       `gorm:"type:text;not null" json:"prompt_text"`
	Guidance     string       `gorm:"type:text" json:"guidance"`
	TaskType     string       `gorm:"index" json:"task_type"`
	OutputFormat string       `gorm:"index" json:"output_format"`
	Category     string       `gorm:"index" json:"category"`
	// No default tag: gorm skips zero-valued fields that carry one on
	// insert, which would silently turn private prompts public.
	IsPublic     bool         `gorm:"not null" json:"is_public"`
	Status       PromptStatus `gorm:"index;not null;default:'pending'" json:"status"`
	LikeCount    int          `gorm:"not null;default:0" json:"like_count"`
	DislikeCount int          `gorm:"not null;default:0" json:"dislike_count"`
	Vote         int          `gorm:"not null;default:0" json:"vote"`
	CopyCount    int          `gorm:"not null;default:0" json:"copy_count"`
}
