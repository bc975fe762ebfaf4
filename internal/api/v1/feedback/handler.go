package feedback

import (
	"errors"
	"net/http"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/services"
	"promptvault-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not authenticated"))
		return models.User{}, false
	}
	return userVal.(models.User), true
}

// Start godoc
// @Summary Start a post-copy feedback survey
// @Description Open a pending survey for the copied prompt. Any survey the caller already has pending is abandoned.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body StartFeedbackRequest true "Copied prompt"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=StartFeedbackResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /copy/save [post]
func Start(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req StartFeedbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prompt, err := services.StartFeedbackSurvey(user, req.PromptID)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to start feedback survey"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending copy feedback created", StartFeedbackResponse{PromptID: prompt.ID}))
}

// CheckPending godoc
// @Summary Check for a pending feedback survey
// @Description Return the caller's most recent pending survey, if any.
// @Tags feedback
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PendingFeedbackResponse}
// @Router /copy/check [get]
func CheckPending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pending, err := services.CheckPendingFeedback(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check pending feedback"))
		return
	}

	if pending == nil {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", PendingFeedbackResponse{Pending: false}))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", PendingFeedbackResponse{
		Pending:     true,
		PromptID:    pending.PromptID,
		PromptTitle: pending.Prompt.Title,
	}))
}

// Submit godoc
// @Summary Submit or skip a feedback survey
// @Description Resolve the caller's pending survey for a prompt. The comment is stored either way; the rating only when submitted.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body SubmitFeedbackRequest true "Survey outcome"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /copy/submit [post]
func Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := services.SubmitFeedback(user, req.PromptID, req.Status, req.Rating, req.Feedback)
	if err != nil {
		if errors.Is(err, services.ErrNoPendingFeedback) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save feedback"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Feedback saved", nil))
}
