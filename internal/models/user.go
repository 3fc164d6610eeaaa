package models

import "gorm.io/gorm"

// User roles. Students read bus positions; coordinators broadcast them.
const (
	RoleStudent     = "student"
	RoleCoordinator = "coordinator"
)

// User is a registered student or coordinator. The USN is the campus
// identity and is stored uppercase; the phone number is the authorization
// key for coordinators and must be exactly 10 digits.
type User struct {
	gorm.Model
	Name        string `json:"name"`
	USN         string `json:"usn" gorm:"uniqueIndex"`
	Year        int    `json:"year"` // academic year, 1-4
	Branch      string `json:"branch"`
	PickupPoint string `json:"pickup_point"`
	Phone       string `json:"phone" gorm:"uniqueIndex"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	RouteName   string `json:"route_name"`
	BusNumber   string `json:"bus_number"`
	Role        string `json:"role"` // "student" or "coordinator"
}
