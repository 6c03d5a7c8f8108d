package routes

import (
	"jeevanid/internal/controllers"

	"github.com/gin-gonic/gin"
)

func PublicRoutes(r *gin.Engine) {
	r.GET("/health-centers", controllers.ListHealthCenters)
	r.POST("/chat", controllers.HandleChat)
	r.POST("/lang/detect", controllers.DetectLanguage)
}
