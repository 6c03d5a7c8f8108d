package routes

import (
	"jeevanid/internal/controllers"
	"jeevanid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.GET("/workers", controllers.ListWorkers)
		admin.GET("/reports", controllers.ListReports)
		admin.POST("/health-centers", controllers.CreateHealthCenter)
	}
}
