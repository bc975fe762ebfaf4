package prompt

import (
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/services"
	"time"
)

// PromptResponse is the request-aware representation of a prompt: it
// carries the owner's username plus the caller's own vote and bookmark
// state alongside the shared counters.
type PromptResponse struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"prompt_description"`
	PromptText   string              `json:"prompt_text"`
	Guidance     string              `json:"guidance"`
	TaskType     string              `json:"task_type"`
	OutputFormat string              `json:"output_format"`
	Category     string              `json:"category"`
	Username     string              `json:"username"`
	IsPublic     bool                `json:"is_public"`
	Status       models.PromptStatus `json:"status"`
	LikeCount    int                 `json:"like_count"`
	DislikeCount int                 `json:"dislike_count"`
	Vote         int                 `json:"vote"`
	CopyCount    int                 `json:"copy_count"`
	UserVote     int                 `json:"user_vote"`
	IsBookmarked bool                `json:"is_bookmarked"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SavePromptRequest creates a prompt, or edits one in place when ID is set.
// Status is only honored for staff writing public prompts; everyone else is
// governed by the approval rules.
type SavePromptRequest struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"prompt_description"`
	PromptText   string              `json:"prompt_text" binding:"required"`
	Guidance     string              `json:"guidance"`
	TaskType     string              `json:"task_type"`
	OutputFormat string              `json:"output_format"`
	Category     string              `json:"category"`
	IsPublic     *bool               `json:"is_public"`
	Status       models.PromptStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

func (r SavePromptRequest) toInput() services.PromptInput {
	return services.PromptInput{
		Title:        r.Title,
		Description:  r.Description,
		PromptText:   r.PromptText,
		Guidance:     r.Guidance,
		TaskType:     r.TaskType,
		OutputFormat: r.OutputFormat,
		Category:     r.Category,
		IsPublic:     r.IsPublic == nil || *r.IsPublic,
		Status:       r.Status,
	}
}

type CopyCountResponse struct {
	CopyCount int `json:"copy_count"`
}

func toPromptResponse(p models.Prompt, userVote int, bookmarked bool) PromptResponse {
	return PromptResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PromptText:   p.PromptText,
		Guidance:     p.Guidance,
		TaskType:     p.TaskType,
		OutputFormat: p.OutputFormat,
		Category:     p.Category,
		Username:     p.User.Username,
		IsPublic:     p.IsPublic,
		Status:       p.Status,
		LikeCount:    p.LikeCount,
		DislikeCount: p.DislikeCount,
		Vote:         p.Vote,
		CopyCount:    p.CopyCount,
		UserVote:     userVote,
		IsBookmarked: bookmarked,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
