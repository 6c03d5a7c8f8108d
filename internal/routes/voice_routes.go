package routes

import (
	"jeevanid/internal/controllers"

	"github.com/gin-gonic/gin"
)

func VoiceRoutes(r *gin.Engine) {
	ws := r.Group("/ws")
	{
		ws.GET("/voice", controllers.HandleVoiceWebSocket)
	}
}
