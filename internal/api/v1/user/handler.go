package user

import (
	"net/http"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get the authenticated user
// @Description Return the identity attached to the request token.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not authenticated"))
		return
	}
	u := userVal.(models.User)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff(),
	}))
}
