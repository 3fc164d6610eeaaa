package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cantrack/internal/registry"
)

// ListRoutes returns the static route table.
func ListRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": registry.Routes()})
}

// ResolveStop maps a stop name to its route assignment. An unknown stop is
// a lookup miss here, not a sentinel: the fallback only applies at signup.
func ResolveStop(c *gin.Context) {
	stop := c.Query("stop")
	if stop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stop query parameter is required"})
		return
	}

	assignment, ok := registry.ResolveStop(stop)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "stop not found on any route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stop":      stop,
		"routeName": assignment.RouteName,
		"busNumber": assignment.BusNumber,
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
