package models

import "time"

// PromptVersion is an immutable snapshot of a prompt's editable fields,
// recorded before an approved prompt is overwritten. Rows are never updated
// and are only removed when the owning prompt is deleted.
type PromptVersion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	PromptID   uint      `gorm:"index;not null" json:"prompt_id"`
	Prompt     Prompt    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EditedByID *uint     `json:"edited_by"`
	EditedBy   *User     `gorm:"foreignKey:EditedByID" json:"-"`

	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"prompt_description"`
	PromptText   string `gorm:"type:text;not null" json:"prompt_text"`
	Guidance     string `gorm:"type:text" json:"guidance"`
	TaskType     string `json:"task_type"`
	OutputFormat string `json:"output_format"`
	Category     string `json:"category"`
}
