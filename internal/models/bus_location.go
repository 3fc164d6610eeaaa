package models

import (
	"time"

	"gorm.io/gorm"
)

// BusLocation is the single live position record for a bus. It is an upsert
// target keyed by bus number, never an append-only log: every location
// update replaces coordinate, speed, timestamp and updater in place.
//
// The coordinate is stored as a WKB point in [longitude, latitude] order
// (geospatial convention). A record created by a status toggle before any
// position report has an empty Point; reads treat that as no position.
type BusLocation struct {
	gorm.Model
	BusNumber string    `json:"bus_number" gorm:"uniqueIndex"`
	Point     []byte    `json:"-" gorm:"type:bytea"`
	Speed     float64   `json:"speed"` // km/h, 0 when the client omits it
	Timestamp time.Time `json:"timestamp"`
	IsActive  bool      `json:"is_active"`
	UpdatedBy string    `json:"updated_by"` // coordinator phone
}
