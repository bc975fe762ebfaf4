package feedback

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	copyGroup := router.Group("/copy")
	{
		copyGroup.POST("/save", Start)
		copyGroup.GET("/check", CheckPending)
		copyGroup.POST("/submit", Submit)
	}

	// Legacy path kept for older clients
	router.GET("/feedback/pending", CheckPending)
}
