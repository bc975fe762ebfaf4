package services

import (
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartFeedbackSurveyAbandonsPrior(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedUsers()
	p1 := seedApprovedPrompt(owner.ID)
	p2 := seedApprovedPrompt(owner.ID)

	_, err := StartFeedbackSurvey(owner, p1.ID)
	assert.NoError(t, err)

	prompt, err := StartFeedbackSurvey(owner, p2.ID)
	assert.NoError(t, err)
	assert.Equal(t, p2.ID, prompt.ID)

	// Only one pending survey per user, for the latest prompt
	var pending []models.CopiedPromptFeedback
	database.DB.
		Where("user_id = ? AND status = ?", owner.ID, models.FeedbackStatusPending).
		Find(&pending)
	assert.Len(t, pending, 1)
	assert.Equal(t, p2.ID, pending[0].PromptID)

	_, err = StartFeedbackSurvey(owner, 9999)
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestCheckPendingFeedback(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedUsers()
	prompt := seedApprovedPrompt(owner.ID)

	pending, err := CheckPendingFeedback(owner)
	assert.NoError(t, err)
	assert.Nil(t, pending)

	_, err = StartFeedbackSurvey(owner, prompt.ID)
	assert.NoError(t, err)

	pending, err = CheckPendingFeedback(owner)
	assert.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Equal(t, prompt.ID, pending.PromptID)
	assert.Equal(t, "Votable", pending.Prompt.Title)
}

func TestSubmitFeedback(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedUsers()
	prompt := seedApprovedPrompt(owner.ID)

	err := SubmitFeedback(owner, prompt.ID, models.FeedbackStatusSubmitted, nil, "")
	assert.ErrorIs(t, err, ErrNoPendingFeedback)

	_, err = StartFeedbackSurvey(owner, prompt.ID)
	assert.NoError(t, err)

	rating := 4
	err = SubmitFeedback(owner, prompt.ID, models.FeedbackStatusSubmitted, &rating, "works well")
	assert.NoError(t, err)

	var saved models.CopiedPromptFeedback
	database.DB.Where("user_id = ? AND prompt_id = ?", owner.ID, prompt.ID).First(&saved)
	assert.Equal(t, models.FeedbackStatusSubmitted, saved.Status)
	assert.NotNil(t, saved.Rating)
	assert.Equal(t, 4, *saved.Rating)
	assert.Equal(t, "works well", saved.FeedbackText)

	// Resolved surveys cannot be submitted twice
	err = SubmitFeedback(owner, prompt.ID, models.FeedbackStatusSubmitted, &rating, "again")
	assert.ErrorIs(t, err, ErrNoPendingFeedback)
}

func TestSubmitFeedbackSkippedDropsRating(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedUsers()
	prompt := seedApprovedPrompt(owner.ID)

	_, err := StartFeedbackSurvey(owner, prompt.ID)
	assert.NoError(t, err)

	rating := 5
	err = SubmitFeedback(owner, prompt.ID, models.FeedbackStatusSkipped, &rating, "not now")
	assert.NoError(t, err)

	var saved models.CopiedPromptFeedback
	database.DB.Where("user_id = ? AND prompt_id = ?", owner.ID, prompt.ID).First(&saved)
	assert.Equal(t, models.FeedbackStatusSkipped, saved.Status)
	assert.Nil(t, saved.Rating)
	assert.Equal(t, "not now", saved.FeedbackText)
}
