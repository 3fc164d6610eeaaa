package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"cantrack/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches the given identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateIdentity is returned when the USN or phone is already
	// registered, including when a concurrent signup races past the
	// application-level existence check.
	ErrDuplicateIdentity = errors.New("identity already registered")
)

// UserStore persists students and coordinators and answers the coordinator
// authorization question for location writes.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create persists a new user. The USN is uppercased before writing and a
// unique-constraint violation is reported as ErrDuplicateIdentity rather
// than leaking the storage engine's error shape.
//
// Route assignment must already be resolved: the store refuses to persist a
// user without route fields instead of silently writing empty values.
func (s *UserStore) Create(user *models.User) error {
	if user.RouteName == "" || user.BusNumber == "" {
		return errors.New("route assignment is required before persisting a user")
	}
	user.USN = strings.ToUpper(user.USN)

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentity
		}
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

// FindByUSN looks a user up by their campus identity. Lookups are
// uppercase-normalized like writes, so case differences never hide a user.
func (s *UserStore) FindByUSN(usn string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("usn = ?", strings.ToUpper(usn)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AuthorizeCoordinator reports whether a coordinator with the given phone is
// assigned to exactly this bus. The check runs fresh on every call; nothing
// is cached between requests.
func (s *UserStore) AuthorizeCoordinator(phone, busNumber string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("phone = ? AND role = ? AND bus_number = ?", phone, models.RoleCoordinator, busNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateRouteAssignment backfills the route fields of a stored user, used at
// login for records that predate route assignment.
func (s *UserStore) UpdateRouteAssignment(usn, routeName, busNumber string) error {
	return s.db.Model(&models.User{}).
		Where("usn = ?", strings.ToUpper(usn)).
		Updates(map[string]interface{}{
			"route_name": routeName,
			"bus_number": busNumber,
		}).Error
}
