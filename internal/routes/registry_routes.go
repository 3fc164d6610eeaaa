package routes

import (
	"github.com/gin-gonic/gin"

	"cantrack/internal/controllers"
)

func RegistryRoutes(r *gin.Engine) {
	rt := r.Group("/routes")
	{
		rt.GET("", controllers.ListRoutes)
		rt.GET("/resolve", controllers.ResolveStop)
	}
}
