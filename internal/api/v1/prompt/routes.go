package prompt

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the prompt endpoints on an authenticated group.
func RegisterRoutes(router *gin.RouterGroup) {
	prompts := router.Group("/prompts")
	{
		prompts.GET("", List)
		prompts.POST("", Create)
		prompts.GET("/:id", Get)
		prompts.PUT("/:id", Update)
		prompts.POST("/:id/upvote", Upvote)
		prompts.POST("/:id/downvote", Downvote)
		prompts.POST("/:id/copy", Copy)
		prompts.POST("/:id/bookmark", Bookmark)
		prompts.GET("/:id/history", History)
		prompts.POST("/:id/revert/:version_id", Revert)
	}
}

// RegisterStaffRoutes mounts the moderation endpoints on a staff-only group.
func RegisterStaffRoutes(router *gin.RouterGroup) {
	prompts := router.Group("/prompts")
	{
		prompts.POST("/:id/approve", Approve)
		prompts.POST("/:id/reject", Reject)
	}
}
