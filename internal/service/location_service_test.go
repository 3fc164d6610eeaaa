package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantrack/internal/models"
	"cantrack/internal/store"
)

type fakeAuthorizer struct {
	// phone -> assigned bus
	assignments map[string]string
}

func (f *fakeAuthorizer) AuthorizeCoordinator(phone, busNumber string) (bool, error) {
	return f.assignments[phone] == busNumber, nil
}

// fakeLocationRepo mirrors the store's upsert semantics in memory: one
// record per bus, full replace on Upsert, flag-only touch on SetActive.
type fakeLocationRepo struct {
	records map[string]*models.BusLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{records: make(map[string]*models.BusLocation)}
}

func (f *fakeLocationRepo) Upsert(busNumber string, lat, lon, speed float64, updatedBy string, now time.Time) (*models.BusLocation, error) {
	point, err := store.EncodePoint(lon, lat)
	if err != nil {
		return nil, err
	}
	rec, ok := f.records[busNumber]
	if !ok {
		rec = &models.BusLocation{BusNumber: busNumber}
		f.records[busNumber] = rec
	}
	rec.Point = point
	rec.Speed = speed
	rec.Timestamp = now
	rec.IsActive = true
	rec.UpdatedBy = updatedBy
	return rec, nil
}

func (f *fakeLocationRepo) SetActive(busNumber string, isActive bool) error {
	rec, ok := f.records[busNumber]
	if !ok {
		rec = &models.BusLocation{BusNumber: busNumber}
		f.records[busNumber] = rec
	}
	rec.IsActive = isActive
	return nil
}

func (f *fakeLocationRepo) Get(busNumber string) (*models.BusLocation, error) {
	rec, ok := f.records[busNumber]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	cp := *rec
	return &cp, nil
}

func ptr(v float64) *float64 { return &v }

func newTestLocationService() (*LocationService, *fakeLocationRepo) {
	repo := newFakeLocationRepo()
	auth := &fakeAuthorizer{assignments: map[string]string{"9876543213": "BUS004"}}
	return NewLocationService(auth, repo, 5*time.Minute), repo
}

func TestUpdateLocationUnauthorized(t *testing.T) {
	svc, _ := newTestLocationService()

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		Speed:            20,
		CoordinatorPhone: "9999999999",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateLocationWrongBus(t *testing.T) {
	svc, _ := newTestLocationService()

	// Right phone, wrong bus: the pair must match exactly.
	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS005",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		CoordinatorPhone: "9876543213",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateLocationMissingFields(t *testing.T) {
	svc, _ := newTestLocationService()

	cases := []UpdateInput{
		{Latitude: ptr(12.97), Longitude: ptr(77.59), CoordinatorPhone: "9876543213"},
		{BusNumber: "BUS004", Longitude: ptr(77.59), CoordinatorPhone: "9876543213"},
		{BusNumber: "BUS004", Latitude: ptr(12.97), CoordinatorPhone: "9876543213"},
		{BusNumber: "BUS004", Latitude: ptr(12.97), Longitude: ptr(77.59)},
	}
	for _, in := range cases {
		_, err := svc.UpdateLocation(in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestUpdateThenReadInvertsAxisOrder(t *testing.T) {
	svc, repo := newTestLocationService()

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		Speed:            20,
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	// Storage holds [longitude, latitude].
	lon, lat, err := store.DecodePoint(repo.records["BUS004"].Point)
	require.NoError(t, err)
	assert.Equal(t, 77.59, lon)
	assert.Equal(t, 12.97, lat)

	// The read response names latitude first again.
	pos, err := svc.ReadLocation("BUS004")
	require.NoError(t, err)
	assert.Equal(t, 12.97, pos.Latitude)
	assert.Equal(t, 77.59, pos.Longitude)
	assert.Equal(t, 20.0, pos.Speed)
}

func TestReadLocationFreshnessWindow(t *testing.T) {
	svc, _ := newTestLocationService()

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	// Written at T: readable at T+4min, gone at T+6min.
	svc.now = func() time.Time { return base.Add(4 * time.Minute) }
	_, err = svc.ReadLocation("BUS004")
	assert.NoError(t, err)

	svc.now = func() time.Time { return base.Add(6 * time.Minute) }
	_, err = svc.ReadLocation("BUS004")
	assert.ErrorIs(t, err, ErrLocationNotFound)

	// A new update makes the bus visible again; there is no terminal state.
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, err = svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.98),
		Longitude:        ptr(77.60),
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)
	_, err = svc.ReadLocation("BUS004")
	assert.NoError(t, err)
}

func TestReadLocationInactiveDominates(t *testing.T) {
	svc, _ := newTestLocationService()

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus("BUS004", false, "9876543213"))

	// Still inside the window, but deactivated: same not-found as stale.
	_, err = svc.ReadLocation("BUS004")
	assert.ErrorIs(t, err, ErrLocationNotFound)

	// Reactivating restores the original position untouched.
	require.NoError(t, svc.SetStatus("BUS004", true, "9876543213"))
	pos, err := svc.ReadLocation("BUS004")
	require.NoError(t, err)
	assert.Equal(t, 12.97, pos.Latitude)
	assert.Equal(t, base, pos.LastUpdated)
}

func TestSetStatusUnauthorized(t *testing.T) {
	svc, _ := newTestLocationService()

	err := svc.SetStatus("BUS004", false, "9999999999")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestReadLocationNeverReported(t *testing.T) {
	svc, _ := newTestLocationService()

	_, err := svc.ReadLocation("BUS004")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestReadLocationPlaceholderUnreadable(t *testing.T) {
	svc, _ := newTestLocationService()

	// A status toggle before any position report creates a positionless
	// placeholder; it must not leak a bogus coordinate.
	require.NoError(t, svc.SetStatus("BUS004", true, "9876543213"))
	_, err := svc.ReadLocation("BUS004")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestUpdateLocationLastWriteWins(t *testing.T) {
	svc, repo := newTestLocationService()

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.90),
		Longitude:        ptr(77.50),
		Speed:            10,
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	_, err = svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		Speed:            20,
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	// Exactly one record, holding the second report.
	assert.Len(t, repo.records, 1)
	pos, err := svc.ReadLocation("BUS004")
	require.NoError(t, err)
	assert.Equal(t, 12.97, pos.Latitude)
	assert.Equal(t, 20.0, pos.Speed)
}

func TestReadLocationIdempotent(t *testing.T) {
	svc, _ := newTestLocationService()

	_, err := svc.UpdateLocation(UpdateInput{
		BusNumber:        "BUS004",
		Latitude:         ptr(12.97),
		Longitude:        ptr(77.59),
		Speed:            20,
		CoordinatorPhone: "9876543213",
	})
	require.NoError(t, err)

	first, err := svc.ReadLocation("BUS004")
	require.NoError(t, err)
	second, err := svc.ReadLocation("BUS004")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
