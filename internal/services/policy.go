package services

import "promptvault-backend/internal/models"

// CanViewPrompt reports whether user may see prompt. Public approved prompts
// are visible to everyone; everything else only to the owner and staff.
// Callers that gate lookups on this must answer "not found" rather than
// "forbidden" so private and pending prompts do not leak their existence.
func CanViewPrompt(user models.User, prompt models.Prompt) bool {
	if prompt.IsPublic && prompt.Status == models.PromptStatusApproved {
		return true
	}
	if user.IsStaff() {
		return true
	}
	return prompt.UserID == user.ID
}

// CanEditPrompt reports whether user may modify prompt. Staff may edit
// anything; owners may edit their own prompts, subject to the status rules
// in NextStatus.
func CanEditPrompt(user models.User, prompt models.Prompt) bool {
	if user.IsStaff() {
		return true
	}
	return prompt.UserID == user.ID
}
