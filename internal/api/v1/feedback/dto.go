package feedback

import "promptvault-backend/internal/models"

type StartFeedbackRequest struct {
	PromptID uint `json:"prompt_id" binding:"required"`
}

type StartFeedbackResponse struct {
	PromptID uint `json:"prompt_id"`
}

type PendingFeedbackResponse struct {
	Pending     bool   `json:"pending"`
	PromptID    uint   `json:"prompt_id,omitempty"`
	PromptTitle string `json:"prompt_title,omitempty"`
}

type SubmitFeedbackRequest struct {
	PromptID uint                  `json:"prompt_id" binding:"required"`
	Status   models.FeedbackStatus `json:"status" binding:"required,oneof=submitted skipped"`
	Rating   *int                  `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback string                `json:"feedback"`
}
