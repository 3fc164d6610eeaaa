package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"cantrack/internal/models"
	"cantrack/internal/store"
)

// CoordinatorAuthorizer answers whether a phone may broadcast for a bus.
type CoordinatorAuthorizer interface {
	AuthorizeCoordinator(phone, busNumber string) (bool, error)
}

// LocationRepository is the subset of the location store the service needs.
type LocationRepository interface {
	Upsert(busNumber string, lat, lon, speed float64, updatedBy string, now time.Time) (*models.BusLocation, error)
	SetActive(busNumber string, isActive bool) error
	Get(busNumber string) (*models.BusLocation, error)
}

// UpdateInput carries one coordinator position report. Latitude and
// Longitude are pointers so an absent field is distinguishable from zero.
type UpdateInput struct {
	BusNumber        string
	Latitude         *float64
	Longitude        *float64
	Speed            float64
	CoordinatorPhone string
}

// Position is the client-facing shape of a bus location. Note the axis
// order: storage is [longitude, latitude], the response names latitude
// first.
type Position struct {
	BusNumber   string    `json:"busNumber"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Speed       float64   `json:"speed"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// LocationService gates location writes behind the per-request coordinator
// check and location reads behind the freshness policy.
type LocationService struct {
	auth   CoordinatorAuthorizer
	store  LocationRepository
	window time.Duration

	// now is swappable for freshness tests.
	now func() time.Time
}

func NewLocationService(auth CoordinatorAuthorizer, locations LocationRepository, window time.Duration) *LocationService {
	return &LocationService{
		auth:   auth,
		store:  locations,
		window: window,
		now:    time.Now,
	}
}

// UpdateLocation stores a coordinator's position report for a bus.
// Authorization is re-derived from the identity store on every call — there
// are no tokens or sessions. The stored timestamp is the server clock at
// call time, never client-supplied.
func (s *LocationService) UpdateLocation(in UpdateInput) (*Position, error) {
	if in.BusNumber == "" || in.Latitude == nil || in.Longitude == nil || in.CoordinatorPhone == "" {
		return nil, ErrMissingFields
	}

	ok, err := s.auth.AuthorizeCoordinator(in.CoordinatorPhone, in.BusNumber)
	if err != nil {
		return nil, err
	}
	if !ok {
		logrus.WithField("bus_number", in.BusNumber).Warn("rejected location update from unauthorized phone")
		return nil, ErrUnauthorized
	}

	loc, err := s.store.Upsert(in.BusNumber, *in.Latitude, *in.Longitude, in.Speed, in.CoordinatorPhone, s.now())
	if err != nil {
		return nil, err
	}
	return &Position{
		BusNumber:   loc.BusNumber,
		Latitude:    *in.Latitude,
		Longitude:   *in.Longitude,
		Speed:       loc.Speed,
		LastUpdated: loc.Timestamp,
	}, nil
}

// SetStatus toggles a bus's visibility without touching its position. The
// same authorization gate applies as for a position report.
func (s *LocationService) SetStatus(busNumber string, isActive bool, coordinatorPhone string) error {
	if busNumber == "" || coordinatorPhone == "" {
		return ErrMissingFields
	}

	ok, err := s.auth.AuthorizeCoordinator(coordinatorPhone, busNumber)
	if err != nil {
		return err
	}
	if !ok {
		logrus.WithField("bus_number", busNumber).Warn("rejected status change from unauthorized phone")
		return ErrUnauthorized
	}

	return s.store.SetActive(busNumber, isActive)
}

// ReadLocation returns the current position of a bus if it is trustworthy:
// the record must exist, be active, carry a real coordinate and be younger
// than the freshness window. Every other case collapses into the same
// not-found result so a stale bus and a silent bus are indistinguishable.
func (s *LocationService) ReadLocation(busNumber string) (*Position, error) {
	if busNumber == "" {
		return nil, ErrMissingFields
	}

	loc, err := s.store.Get(busNumber)
	if err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if !loc.IsActive || s.now().Sub(loc.Timestamp) > s.window {
		return nil, ErrLocationNotFound
	}

	lon, lat, err := store.DecodePoint(loc.Point)
	if err != nil {
		if errors.Is(err, store.ErrNoCoordinate) {
			// Placeholder row from a status toggle: active, but positionless.
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	return &Position{
		BusNumber:   loc.BusNumber,
		Latitude:    lat,
		Longitude:   lon,
		Speed:       loc.Speed,
		LastUpdated: loc.Timestamp,
	}, nil
}
