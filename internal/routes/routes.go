package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Middleware must be registered before the route groups
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	PublicRoutes(r)
	WorkerRoutes(r)
	DoctorRoutes(r)
	AdminRoutes(r)
	VoiceRoutes(r)

	return r
}
