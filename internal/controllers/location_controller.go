package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cantrack/internal/service"
)

// Tracker is the slice of the location service the handlers need.
type Tracker interface {
	UpdateLocation(in service.UpdateInput) (*service.Position, error)
	SetStatus(busNumber string, isActive bool, coordinatorPhone string) error
	ReadLocation(busNumber string) (*service.Position, error)
}

type LocationController struct {
	tracker Tracker
}

func NewLocationController(tracker Tracker) *LocationController {
	return &LocationController{tracker: tracker}
}

// updateLocationRequest uses pointer coordinates so an omitted field is
// distinguishable from a legitimate zero (the equator and the prime
// meridian are real places).
type updateLocationRequest struct {
	BusNumber        string   `json:"busNumber"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Speed            float64  `json:"speed" binding:"omitempty,gte=0"`
	CoordinatorPhone string   `json:"coordinatorPhone"`
}

type statusRequest struct {
	BusNumber        string `json:"busNumber"`
	IsActive         *bool  `json:"isActive"`
	CoordinatorPhone string `json:"coordinatorPhone"`
}

func (lc *LocationController) Update(c *gin.Context) {
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := lc.tracker.UpdateLocation(service.UpdateInput{
		BusNumber:        req.BusNumber,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Speed:            req.Speed,
		CoordinatorPhone: req.CoordinatorPhone,
	})
	if err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"location": pos,
	})
}

func (lc *LocationController) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required"})
		return
	}

	if err := lc.tracker.SetStatus(req.BusNumber, *req.IsActive, req.CoordinatorPhone); err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (lc *LocationController) Get(c *gin.Context) {
	pos, err := lc.tracker.ReadLocation(c.Param("busNumber"))
	if err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, pos)
}

func (lc *LocationController) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this bus"})
	case errors.Is(err, service.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus location not found or outdated"})
	default:
		logrus.WithError(err).Error("location request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
