package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cantrack/internal/models"
	"cantrack/internal/registry"
	"cantrack/internal/store"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// UserRepository is the subset of the user store the registration flow needs.
type UserRepository interface {
	Create(user *models.User) error
	FindByUSN(usn string) (*models.User, error)
	UpdateRouteAssignment(usn, routeName, busNumber string) error
}

// SignupInput is one registration request. RouteName and BusNumber are
// optional; when absent they are resolved from the pickup point.
type SignupInput struct {
	Name        string
	USN         string
	Year        int
	Branch      string
	PickupPoint string
	Phone       string
	Password    string
	RouteName   string
	BusNumber   string
	Role        string
}

// SignupResult reports the created user and whether the sentinel route
// assignment had to be applied, so a placeholder assignment stays
// distinguishable from a real resolution.
type SignupResult struct {
	User      *models.User
	Defaulted bool
}

// RegistrationService handles signup (with route resolution) and login
// (with route backfill for legacy records).
type RegistrationService struct {
	users      UserRepository
	bcryptCost int
}

func NewRegistrationService(users UserRepository, bcryptCost int) *RegistrationService {
	return &RegistrationService{users: users, bcryptCost: bcryptCost}
}

// ValidateSignup returns every problem with the input at once. Route fields
// are validated for format only when supplied; their absence is handled by
// resolution, not rejection. The function is pure — logging the outcome is
// the caller's concern.
func ValidateSignup(in SignupInput) *ValidationError {
	ve := &ValidationError{}

	if strings.TrimSpace(in.Name) == "" {
		ve.MissingFields = append(ve.MissingFields, "name")
	}
	if strings.TrimSpace(in.USN) == "" {
		ve.MissingFields = append(ve.MissingFields, "usn")
	}
	if in.Year == 0 {
		ve.MissingFields = append(ve.MissingFields, "year")
	} else if in.Year < 1 || in.Year > 4 {
		ve.Violations = append(ve.Violations, "year must be a number between 1 and 4")
	}
	if strings.TrimSpace(in.Branch) == "" {
		ve.MissingFields = append(ve.MissingFields, "branch")
	}
	if strings.TrimSpace(in.PickupPoint) == "" {
		ve.MissingFields = append(ve.MissingFields, "pickupPoint")
	}
	if strings.TrimSpace(in.Phone) == "" {
		ve.MissingFields = append(ve.MissingFields, "phone")
	} else if !phonePattern.MatchString(in.Phone) {
		ve.Violations = append(ve.Violations, "phone number must be 10 digits")
	}
	if in.Password == "" {
		ve.MissingFields = append(ve.MissingFields, "password")
	}

	if in.RouteName != "" && !registry.ValidRouteName(in.RouteName) {
		ve.Violations = append(ve.Violations, `invalid route name format, must start with "Route "`)
	}
	if in.BusNumber != "" && !registry.ValidBusNumber(in.BusNumber) {
		ve.Violations = append(ve.Violations, `invalid bus number format, must start with "BUS"`)
	}
	if in.Role != "" && in.Role != models.RoleStudent && in.Role != models.RoleCoordinator {
		ve.Violations = append(ve.Violations, "role must be student or coordinator")
	}

	if ve.empty() {
		return nil
	}
	return ve
}

// ResolveAssignment fills missing route fields from the pickup point. The
// boolean result reports whether the sentinel fallback was applied.
func ResolveAssignment(pickupPoint, routeName, busNumber string) (string, string, bool) {
	if routeName != "" && busNumber != "" {
		return routeName, busNumber, false
	}
	if a, ok := registry.ResolveStop(pickupPoint); ok {
		if routeName == "" {
			routeName = a.RouteName
		}
		if busNumber == "" {
			busNumber = a.BusNumber
		}
		return routeName, busNumber, false
	}
	fb := registry.Fallback()
	if routeName == "" {
		routeName = fb.RouteName
	}
	if busNumber == "" {
		busNumber = fb.BusNumber
	}
	return routeName, busNumber, true
}

// Signup validates the request, resolves the route assignment and persists
// the user with a hashed credential. A user is never stored without route
// fields: they are supplied, derived from the pickup point, or defaulted to
// the sentinel assignment.
func (s *RegistrationService) Signup(in SignupInput) (*SignupResult, error) {
	if ve := ValidateSignup(in); ve != nil {
		return nil, ve
	}

	routeName, busNumber, defaulted := ResolveAssignment(in.PickupPoint, in.RouteName, in.BusNumber)
	if defaulted {
		logrus.WithFields(logrus.Fields{
			"pickup_point": in.PickupPoint,
			"route_name":   routeName,
			"bus_number":   busNumber,
		}).Warn("pickup point did not resolve to a route, applying placeholder assignment")
	}

	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        strings.TrimSpace(in.Name),
		USN:         strings.ToUpper(strings.TrimSpace(in.USN)),
		Year:        in.Year,
		Branch:      strings.TrimSpace(in.Branch),
		PickupPoint: in.PickupPoint,
		Phone:       in.Phone,
		Password:    string(hash),
		RouteName:   routeName,
		BusNumber:   busNumber,
		Role:        role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"usn":        user.USN,
		"bus_number": user.BusNumber,
	}).Info("user registered")
	return &SignupResult{User: user, Defaulted: defaulted}, nil
}

// Login verifies credentials by re-hashing the candidate password. Unknown
// USN and wrong password produce the identical failure. Users stored before
// route assignment existed get their route fields backfilled from the
// pickup point before the response.
func (s *RegistrationService) Login(usn, password string) (*models.User, error) {
	if strings.TrimSpace(usn) == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByUSN(usn)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if user.RouteName == "" || user.BusNumber == "" {
		routeName, busNumber, defaulted := ResolveAssignment(user.PickupPoint, user.RouteName, user.BusNumber)
		if err := s.users.UpdateRouteAssignment(user.USN, routeName, busNumber); err != nil {
			return nil, err
		}
		user.RouteName = routeName
		user.BusNumber = busNumber
		logrus.WithFields(logrus.Fields{
			"usn":       user.USN,
			"defaulted": defaulted,
		}).Info("backfilled route assignment at login")
	}

	return user, nil
}
