package routes

import (
	"jeevanid/internal/controllers"
	"jeevanid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func WorkerRoutes(r *gin.Engine) {
	worker := r.Group("/worker")
	worker.Use(middleware.RequireAuthWithRole("worker"))
	{
		worker.POST("/profile", controllers.CreateWorkerProfile)
		worker.GET("/profile", controllers.GetMyProfile)
		worker.PUT("/profile", controllers.UpdateMyProfile)
		worker.GET("/reports", controllers.GetMyReports)
		worker.GET("/qr", controllers.GetMyQRCode)
		worker.POST("/risk-assessment", controllers.RiskAssessment)
	}
}
