package routes

import (
	"github.com/gin-gonic/gin"

	"cantrack/internal/controllers"
)

func LocationRoutes(r *gin.Engine, lc *controllers.LocationController) {
	location := r.Group("/location")
	{
		location.POST("/update", lc.Update)
		location.POST("/status", lc.SetStatus)
		location.GET("/:busNumber", lc.Get)
	}
}
