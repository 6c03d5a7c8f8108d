package routes

import (
	"jeevanid/internal/controllers"
	"jeevanid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DoctorRoutes(r *gin.Engine) {
	doctor := r.Group("/doctor")
	doctor.Use(middleware.RequireAuthWithRole("doctor"))
	{
		doctor.GET("/workers", controllers.SearchWorkers)
		doctor.GET("/workers/:healthID", controllers.GetWorkerByHealthID)
		doctor.POST("/reports", controllers.CreateMedicalReport)
	}
}
