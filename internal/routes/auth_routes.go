package routes

import (
	"jeevanid/internal/controllers"
	"jeevanid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)

		// Legacy email+OTP sign-in for pre-existing worker records
		auth.POST("/otp/request", controllers.RequestOTP)
		auth.POST("/otp/verify", controllers.VerifyOTP)
		auth.POST("/otp/link", middleware.RequireAuth(), controllers.LinkWorker)
	}
}
