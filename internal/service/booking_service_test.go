package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	apperr "parkspot/internal/errors"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type bookingFixture struct {
	svc      *BookingService
	spots    *fakeSpotStore
	bookings *fakeBookingStore
	users    *fakeUserStore
	notifier *fakeNotifier
}

func newBookingFixture(t *testing.T, spot *db.ParkingSpot) *bookingFixture {
	t.Helper()

	owner := &db.User{ID: "owner-1", Username: "landlady", Role: db.RoleLandowner}
	driver := &db.User{ID: "driver-1", Username: "alice", Role: db.RoleVehicleOwner}

	spots := newFakeSpotStore()
	if spot != nil {
		spot.LandownerID = owner.ID
		require.NoError(t, spots.Create(spot))
	}

	f := &bookingFixture{
		spots:    spots,
		bookings: newFakeBookingStore(),
		users:    newFakeUserStore(owner, driver),
		notifier: &fakeNotifier{},
	}
	f.svc = NewBookingService(f.bookings, f.spots, f.users, f.notifier)
	return f
}

func carSpot(slots int, costPerHour float64) *db.ParkingSpot {
	return &db.ParkingSpot{
		ID:        "spot-1",
		Location:  "12 Main St",
		CarSlots:  slots,
		CarCost:   costPerHour,
		Available: true,
	}
}

func bookingReq(vehicleType string, start, end time.Time) entities.BookingRequest {
	return entities.BookingRequest{
		ParkingSpotID:  "spot-1",
		VehicleOwnerID: "driver-1",
		VehicleType:    vehicleType,
		StartTime:      start,
		EndTime:        end,
	}
}

func (f *bookingFixture) mustGetSpot(t *testing.T) *db.ParkingSpot {
	t.Helper()
	spot, err := f.spots.GetByID("spot-1")
	require.NoError(t, err)
	return spot
}

func TestCreateBookingLifecycle(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))

	first, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, db.StatusPending, first.Status)
	assert.Equal(t, 20.0, first.TotalCost)
	assert.NotEmpty(t, first.ID)

	// The only car slot is taken and there are no bike slots, so the derived
	// flag flips off.
	assert.False(t, f.mustGetSpot(t).Available)
	assert.Equal(t, 2, f.notifier.count())

	// An overlapping attempt is refused while the flag is down.
	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(time.Hour), baseTime.Add(3*time.Hour)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnavailable))

	// Cancelling the first booking frees the slot and reopens the spot.
	_, err = f.svc.UpdateBookingStatus(first.ID, db.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)

	// The retry now lands.
	second, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(time.Hour), baseTime.Add(3*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, db.StatusPending, second.Status)
}

func TestCreateBookingSlotsExhausted(t *testing.T) {
	f := newBookingFixture(t, carSpot(2, 10))

	_, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)

	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(30*time.Minute), baseTime.Add(90*time.Minute)))
	require.NoError(t, err)
	assert.False(t, f.mustGetSpot(t).Available)

	// Force the flag back on so the rejection comes from the overlap count,
	// not the fast path.
	require.NoError(t, f.spots.SetAvailable("spot-1", true))

	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(time.Hour), baseTime.Add(3*time.Hour)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSlotsExhausted))
}

func TestCreateBookingBackToBackIntervals(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))

	first, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)

	// Intervals are half-open: a booking starting exactly when the previous
	// one ends does not overlap it.
	require.NoError(t, f.spots.SetAvailable("spot-1", true))
	second, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, first.EndTime, first.EndTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, first.EndTime, second.StartTime)
}

func TestCreateBookingDisjointIntervalsKeepSpotOpen(t *testing.T) {
	f := newBookingFixture(t, carSpot(2, 10))

	// Two disjoint bookings never fill any single interval on a two-slot
	// spot, so the flag only flips when the booked interval itself is at
	// capacity.
	_, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(4*time.Hour), baseTime.Add(6*time.Hour)))
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)

	// A third disjoint booking goes through without touching the fast path.
	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(8*time.Hour), baseTime.Add(10*time.Hour)))
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)

	// A second booking inside an already-booked window reaches capacity for
	// that window and closes the spot.
	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(30*time.Minute), baseTime.Add(90*time.Minute)))
	require.NoError(t, err)
	assert.False(t, f.mustGetSpot(t).Available)
}

func TestCreateBookingFractionalHours(t *testing.T) {
	f := newBookingFixture(t, carSpot(3, 10))

	booking, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour+30*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, 25.0, booking.TotalCost)
}

func TestCreateBookingInvalidInterval(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))

	for name, end := range map[string]time.Time{
		"end before start": baseTime.Add(-time.Hour),
		"zero duration":    baseTime,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, end))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidInterval))
		})
	}

	// Nothing was persisted and nobody was notified.
	views, err := f.bookings.ListAll(entities.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Zero(t, f.notifier.count())
	assert.True(t, f.mustGetSpot(t).Available)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))

	_, err := f.svc.CreateBooking(bookingReq("truck", baseTime, baseTime.Add(time.Hour)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	req := bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour))
	req.ParkingSpotID = "ghost-spot"
	_, err = f.svc.CreateBooking(req)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	req = bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour))
	req.VehicleOwnerID = "ghost-user"
	_, err = f.svc.CreateBooking(req)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreateBookingPerVehicleTypeCapacity(t *testing.T) {
	spot := carSpot(1, 10)
	spot.BikeSlots = 1
	spot.BikeCost = 4
	f := newBookingFixture(t, spot)

	// A car booking does not consume bike capacity and vice versa.
	_, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)

	bike, err := f.svc.CreateBooking(bookingReq(db.VehicleBike, baseTime, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 8.0, bike.TotalCost)

	// Both classes are now full.
	assert.False(t, f.mustGetSpot(t).Available)
	require.NoError(t, f.spots.SetAvailable("spot-1", true))
	_, err = f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime.Add(time.Hour), baseTime.Add(3*time.Hour)))
	assert.True(t, errors.Is(err, apperr.ErrSlotsExhausted))
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))
	booking, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	updated, err := f.svc.UpdateBookingStatus(booking.ID, db.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, updated.Status)
	assert.False(t, f.mustGetSpot(t).Available)

	_, err = f.svc.UpdateBookingStatus(booking.ID, "parked")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.svc.UpdateBookingStatus("ghost-booking", db.StatusCancelled)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateBookingStatusIdempotentCancel(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))
	booking, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	_, err = f.svc.UpdateBookingStatus(booking.ID, db.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)
	writes := f.spots.setAvailableCalls

	// Cancelling an already-cancelled booking succeeds and leaves the flag
	// untouched.
	_, err = f.svc.UpdateBookingStatus(booking.ID, db.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, f.mustGetSpot(t).Available)
	assert.Equal(t, writes, f.spots.setAvailableCalls)
}

func TestUpdateBookingStatusReactivatesCancelled(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))
	booking, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	_, err = f.svc.UpdateBookingStatus(booking.ID, db.StatusCancelled)
	require.NoError(t, err)

	// Any stored status is reachable from any other.
	updated, err := f.svc.UpdateBookingStatus(booking.ID, db.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, updated.Status)
}

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t, carSpot(1, 10))
	booking, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)
	assert.False(t, f.mustGetSpot(t).Available)

	require.NoError(t, f.svc.DeleteBooking(booking.ID))
	assert.True(t, f.mustGetSpot(t).Available)

	err = f.svc.DeleteBooking(booking.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestConcurrentCreateDoesNotOverbook(t *testing.T) {
	const capacity = 3
	const attempts = 24

	f := newBookingFixture(t, carSpot(capacity, 10))

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateBooking(bookingReq(db.VehicleCar, baseTime, baseTime.Add(2*time.Hour)))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, errors.Is(err, apperr.ErrSlotsExhausted) || errors.Is(err, apperr.ErrUnavailable),
			"unexpected rejection: %v", err)
	}
	assert.Equal(t, capacity, successes)

	active, err := f.bookings.CountActive("spot-1", db.VehicleCar)
	require.NoError(t, err)
	assert.Equal(t, capacity, active)
	assert.False(t, f.mustGetSpot(t).Available)
}
