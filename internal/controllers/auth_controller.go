package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cantrack/internal/models"
	"cantrack/internal/service"
	"cantrack/internal/store"
)

// Registrar is the slice of the registration service the handlers need.
type Registrar interface {
	Signup(in service.SignupInput) (*service.SignupResult, error)
	Login(usn, password string) (*models.User, error)
}

type AuthController struct {
	registrar Registrar
}

func NewAuthController(registrar Registrar) *AuthController {
	return &AuthController{registrar: registrar}
}

// signupRequest deliberately carries no binding:"required" tags: field
// presence is validated in the service so every missing field can be
// reported in a single response.
type signupRequest struct {
	Name        string `json:"name"`
	USN         string `json:"usn"`
	Year        int    `json:"year"`
	Branch      string `json:"branch"`
	PickupPoint string `json:"pickupPoint"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	RouteName   string `json:"routeName"`
	BusNumber   string `json:"busNumber"`
	Role        string `json:"role"`
}

type loginRequest struct {
	USN      string `json:"usn"`
	Password string `json:"password"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.registrar.Signup(service.SignupInput{
		Name:        req.Name,
		USN:         req.USN,
		Year:        req.Year,
		Branch:      req.Branch,
		PickupPoint: req.PickupPoint,
		Phone:       req.Phone,
		Password:    req.Password,
		RouteName:   req.RouteName,
		BusNumber:   req.BusNumber,
		Role:        req.Role,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":            ve.Error(),
				"missingFields":    ve.MissingFields,
				"validationErrors": ve.Violations,
			})
		case errors.Is(err, store.ErrDuplicateIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "USN or phone already registered"})
		default:
			logrus.WithError(err).Error("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userResponse(result.User),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.registrar.Login(req.USN, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "usn and password are required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			logrus.WithError(err).Error("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
	})
}

// userResponse shapes a user for the wire. The password hash never leaves
// the server, not even its presence.
func userResponse(user *models.User) gin.H {
	return gin.H{
		"ID":          user.ID,
		"CreatedAt":   user.CreatedAt,
		"UpdatedAt":   user.UpdatedAt,
		"name":        user.Name,
		"usn":         user.USN,
		"year":        user.Year,
		"branch":      user.Branch,
		"pickupPoint": user.PickupPoint,
		"phone":       user.Phone,
		"routeName":   user.RouteName,
		"busNumber":   user.BusNumber,
		"role":        user.Role,
	}
}
