package store

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cantrack/internal/models"
)

var (
	// ErrLocationNotFound is returned when a bus has no stored record.
	ErrLocationNotFound = errors.New("bus location not found")

	// ErrNoCoordinate is returned when a record exists but no position has
	// ever been reported for it (a placeholder created by a status toggle).
	ErrNoCoordinate = errors.New("no coordinate stored")
)

// LocationStore holds at most one live location record per bus.
type LocationStore struct {
	db *gorm.DB
}

func NewLocationStore(db *gorm.DB) *LocationStore {
	return &LocationStore{db: db}
}

// EncodePoint marshals a coordinate as a WKB point in [longitude, latitude]
// order, the storage convention for all geospatial data here.
func EncodePoint(lon, lat float64) ([]byte, error) {
	return wkb.Marshal(geom.NewPointFlat(geom.XY, []float64{lon, lat}), binary.LittleEndian)
}

// DecodePoint returns the stored longitude and latitude of a record.
func DecodePoint(raw []byte) (lon, lat float64, err error) {
	if len(raw) == 0 {
		return 0, 0, ErrNoCoordinate
	}
	g, err := wkb.Unmarshal(raw)
	if err != nil {
		return 0, 0, err
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return 0, 0, errors.New("stored geometry is not a point")
	}
	c := p.Coords()
	return c[0], c[1], nil
}

// Upsert creates or fully replaces the live record for a bus: coordinate,
// speed, timestamp and updater are overwritten and the record is forced
// active. The caller supplies the timestamp so that it always reflects the
// server clock at the time of the request.
func (s *LocationStore) Upsert(busNumber string, lat, lon, speed float64, updatedBy string, now time.Time) (*models.BusLocation, error) {
	point, err := EncodePoint(lon, lat)
	if err != nil {
		return nil, err
	}

	loc := models.BusLocation{
		BusNumber: busNumber,
		Point:     point,
		Speed:     speed,
		Timestamp: now,
		IsActive:  true,
		UpdatedBy: updatedBy,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bus_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"point", "speed", "timestamp", "is_active", "updated_by", "updated_at",
		}),
	}).Create(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// SetActive flips only the active flag; coordinate, speed and timestamp are
// untouched. A bus with no record yet gets a placeholder row with no
// coordinate — reads treat such a row as not found until a real position
// arrives.
func (s *LocationStore) SetActive(busNumber string, isActive bool) error {
	loc := models.BusLocation{
		BusNumber: busNumber,
		IsActive:  isActive,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bus_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active": isActive,
		}),
	}).Create(&loc).Error
}

// Get returns the single live record for a bus, regardless of freshness or
// active state; the service layer applies the read policy.
func (s *LocationStore) Get(busNumber string) (*models.BusLocation, error) {
	var loc models.BusLocation
	if err := s.db.Where("bus_number = ?", busNumber).First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}
