package prompt

import (
	"errors"
	"net/http"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/services"
	"promptvault-backend/internal/utils"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not authenticated"))
		return models.User{}, false
	}
	return userVal.(models.User), true
}

func promptID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return 0, false
	}
	return uint(id), true
}

// respondWithPrompt renders a single prompt with the caller's own vote and
// bookmark state attached.
func respondWithPrompt(c *gin.Context, user models.User, p models.Prompt, status int, message string) {
	votes, bookmarks, err := services.UserEngagement(user, []uint{p.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load prompt"))
		return
	}
	c.JSON(status, utils.NewResponse(status, message, toPromptResponse(p, votes[p.ID], bookmarks[p.ID])))
}

// List godoc
// @Summary List prompts
// @Description List prompts visible to the caller, ordered by copy count then recency. Staff may list any user's prompts via username or all public prompts; regular users see approved public prompts, or their own with mine=1.
// @Tags prompts
// @Produce json
// @Param mine query string false "Only the caller's prompts when set to 1"
// @Param username query string false "Filter by owner username (staff only)"
// @Param category query string false "Exact category match"
// @Param task_type query string false "Exact task type match"
// @Param output_format query string false "Exact output format match"
// @Param status query string false "Exact status match"
// @Param search query string false "Case-insensitive substring search over title, description and body"
// @Param offset query int false "Result offset, clamped at 0"
// @Param limit query int false "Max results; ignored when not a positive number"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]PromptResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter := services.PromptFilter{
		Mine:         c.Query("mine") == "1",
		Username:     c.Query("username"),
		Category:     c.Query("category"),
		TaskType:     c.Query("task_type"),
		OutputFormat: c.Query("output_format"),
		Status:       c.Query("status"),
		Search:       c.Query("search"),
	}

	// Pagination input degrades gracefully: a bad offset means 0, a bad or
	// non-positive limit means no limit.
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	prompts, err := services.FindPrompts(user, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch prompts"))
		return
	}

	ids := make([]uint, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	votes, bookmarks, err := services.UserEngagement(user, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch prompts"))
		return
	}

	responses := make([]PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		responses = append(responses, toPromptResponse(p, votes[p.ID], bookmarks[p.ID]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", responses))
}

// Get godoc
// @Summary Get a prompt
// @Description Fetch one prompt. Prompts the caller may not see answer 404.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [get]
func Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	p, err := services.GetPromptForUser(user, id)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch prompt"))
		return
	}

	respondWithPrompt(c, user, *p, http.StatusOK, "Success")
}

// Create godoc
// @Summary Create a prompt
// @Description Create a prompt, or edit an existing one when the payload carries its id. Private prompts are auto-approved; public prompts from regular users start pending.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body SavePromptRequest true "Prompt fields"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Success 201 {object} utils.Response{data=PromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts [post]
func Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SavePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// A payload carrying an id edits that prompt in place
	if req.ID != 0 {
		updated, err := services.UpdatePrompt(user, req.ID, req.toInput())
		if err != nil {
			respondSaveError(c, err)
			return
		}
		respondWithPrompt(c, user, *updated, http.StatusOK, "Prompt updated successfully")
		return
	}

	created, err := services.CreatePrompt(user, req.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create prompt"))
		return
	}

	respondWithPrompt(c, user, *created, http.StatusCreated, "Prompt created successfully")
}

// Update godoc
// @Summary Update a prompt
// @Description Edit a prompt. If it was approved, the pre-edit state is snapshotted to its history; non-staff edits send public prompts back to pending review.
// @Tags prompts
// @Accept json
// @Produce json
// @Param id path int true "Prompt ID"
// @Param request body SavePromptRequest true "Prompt fields"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [put]
func Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	var req SavePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updated, err := services.UpdatePrompt(user, id, req.toInput())
	if err != nil {
		respondSaveError(c, err)
		return
	}

	respondWithPrompt(c, user, *updated, http.StatusOK, "Prompt updated successfully")
}

func respondSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save prompt"))
	}
}

// Approve godoc
// @Summary Approve a prompt
// @Description Move a pending or rejected prompt to approved. Staff only.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /prompts/{id}/approve [post]
func Approve(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	p, err := services.ApprovePrompt(id)
	if err != nil {
		respondModerationError(c, err, services.ErrAlreadyApproved)
		return
	}

	zap.L().Info("prompt approved", zap.Uint("prompt_id", id))
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt approved", toPromptResponse(*p, 0, false)))
}

// Reject godoc
// @Summary Reject a prompt
// @Description Move a prompt to rejected from any state. Staff only.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /prompts/{id}/reject [post]
func Reject(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	p, err := services.RejectPrompt(id)
	if err != nil {
		respondModerationError(c, err, services.ErrAlreadyRejected)
		return
	}

	zap.L().Info("prompt rejected", zap.Uint("prompt_id", id))
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt rejected", toPromptResponse(*p, 0, false)))
}

func respondModerationError(c *gin.Context, err, conflict error) {
	switch {
	case errors.Is(err, services.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, conflict):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update prompt status"))
	}
}

// Upvote godoc
// @Summary Upvote a prompt
// @Description Cast a +1 vote. Casting it again removes the vote; a standing -1 flips.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/upvote [post]
func Upvote(c *gin.Context) {
	handleVote(c, 1)
}

// Downvote godoc
// @Summary Downvote a prompt
// @Description Cast a -1 vote. Casting it again removes the vote; a standing +1 flips.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/downvote [post]
func Downvote(c *gin.Context) {
	handleVote(c, -1)
}

func handleVote(c *gin.Context, value int) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	p, err := services.CastVote(user, id, value)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to cast vote"))
		return
	}

	respondWithPrompt(c, user, *p, http.StatusOK, "Vote recorded")
}

// Copy godoc
// @Summary Record a prompt copy
// @Description Atomically increment the prompt's copy counter.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=CopyCountResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/copy [post]
func Copy(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	count, err := services.RecordCopy(user, id)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to record copy"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Copy recorded", CopyCountResponse{CopyCount: count}))
}

// Bookmark godoc
// @Summary Toggle a bookmark
// @Description Bookmark the prompt, or remove the bookmark if it exists.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/bookmark [post]
func Bookmark(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	p, err := services.ToggleBookmark(user, id)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to toggle bookmark"))
		return
	}

	respondWithPrompt(c, user, *p, http.StatusOK, "Bookmark toggled")
}

// History godoc
// @Summary Get a prompt's version history
// @Description List snapshots of the prompt's prior approved states, newest first. Owner and staff only.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.PromptVersion}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/history [get]
func History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	versions, err := services.PromptHistory(user, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "You do not have permission to view this history"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch history"))
		}
		return
	}

	if versions == nil {
		versions = []models.PromptVersion{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", versions))
}

// Revert godoc
// @Summary Revert a prompt to a stored version
// @Description Copy a version's fields back onto the prompt. The current state is snapshotted first if the prompt is approved; non-staff reverts go back to pending review.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Param version_id path int true "Version ID"
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=PromptResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/revert/{version_id} [post]
func Revert(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	versionID, err := strconv.Atoi(c.Param("version_id"))
	if err != nil || versionID < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid version ID"))
		return
	}

	p, err := services.RevertPrompt(user, id, uint(versionID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromptNotFound), errors.Is(err, services.ErrVersionNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revert prompt"))
		}
		return
	}

	respondWithPrompt(c, user, *p, http.StatusOK, "Prompt reverted")
}
