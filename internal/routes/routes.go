package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"cantrack/internal/controllers"
)

// SetupRouter assembles the full HTTP surface. Middleware is registered
// before any route so it applies everywhere.
func SetupRouter(auth *controllers.AuthController, location *controllers.LocationController) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	r.GET("/health", controllers.Health)

	AuthRoutes(r, auth)
	LocationRoutes(r, location)
	RegistryRoutes(r)

	return r
}
