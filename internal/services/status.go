package services

import "promptvault-backend/internal/models"

// NextStatus computes the moderation status a prompt ends up with after a
// write. The privacy rule wins over everything: a private prompt is always
// auto-approved, since it is only visible to its owner and staff. Public
// prompts written by staff keep their current status (no re-review for
// moderators); public prompts written by anyone else go back to pending.
//
// On create, current is the caller-requested status (pending by default), so
// a staff member may create a public prompt in any state while a regular
// user's request is forced to pending.
func NextStatus(current models.PromptStatus, actorIsStaff, isPublic bool) models.PromptStatus {
	if !isPublic {
		return models.PromptStatusApproved
	}
	if actorIsStaff {
		return current
	}
	return models.PromptStatusPending
}
