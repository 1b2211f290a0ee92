package service

import (
	"sync"
	"time"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// In-memory stores implementing the collaborator contracts. All of them are
// safe for concurrent use so the overbooking stress test can hammer them.

type fakeSpotStore struct {
	mu                sync.Mutex
	spots             map[string]*db.ParkingSpot
	setAvailableCalls int
}

func newFakeSpotStore() *fakeSpotStore {
	return &fakeSpotStore{spots: map[string]*db.ParkingSpot{}}
}

func (f *fakeSpotStore) Create(spot *db.ParkingSpot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *spot
	f.spots[spot.ID] = &copied
	return nil
}

func (f *fakeSpotStore) GetByID(id string) (*db.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *spot
	return &copied, nil
}

func (f *fakeSpotStore) Update(id string, req entities.SpotRequest) (*db.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	spot.Location = req.Location
	spot.CarSlots = req.CarSlots
	spot.BikeSlots = req.BikeSlots
	spot.CarCost = req.CarCost
	spot.BikeCost = req.BikeCost
	copied := *spot
	return &copied, nil
}

func (f *fakeSpotStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.spots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.spots, id)
	return nil
}

func (f *fakeSpotStore) SetAvailable(id string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return repository.ErrNotFound
	}
	spot.Available = available
	f.setAvailableCalls++
	return nil
}

func (f *fakeSpotStore) List(location string, withOwner bool) ([]entities.SpotView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []entities.SpotView
	for _, spot := range f.spots {
		views = append(views, entities.SpotView{ParkingSpot: *spot})
	}
	return views, nil
}

func (f *fakeSpotStore) ListByLandowner(landownerID string) ([]db.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var spots []db.ParkingSpot
	for _, spot := range f.spots {
		if spot.LandownerID == landownerID {
			spots = append(spots, *spot)
		}
	}
	return spots, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*db.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*db.Booking{}}
}

func isActive(status string) bool {
	return status == db.StatusPending || status == db.StatusConfirmed
}

func (f *fakeBookingStore) Create(b *db.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.CreatedAt = time.Now()
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingStore) GetByID(id string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) CountOverlapping(spotID, vehicleType string, start, end time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.ParkingSpotID == spotID && b.VehicleType == vehicleType && isActive(b.Status) &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingStore) CountActive(spotID, vehicleType string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.ParkingSpotID == spotID && b.VehicleType == vehicleType && isActive(b.Status) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingStore) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) ListAll(filter entities.BookingFilter) ([]entities.BookingView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []entities.BookingView
	for _, b := range f.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		views = append(views, entities.BookingView{Booking: *b})
	}
	return views, nil
}

func (f *fakeBookingStore) ListByLandowner(string) ([]entities.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingStore) ListByVehicleOwner(vehicleOwnerID string) ([]entities.BookingView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []entities.BookingView
	for _, b := range f.bookings {
		if b.VehicleOwnerID == vehicleOwnerID {
			views = append(views, entities.BookingView{Booking: *b})
		}
	}
	return views, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*db.User
}

func newFakeUserStore(users ...*db.User) *fakeUserStore {
	f := &fakeUserStore{users: map[string]*db.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(u *db.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(id string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(username string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) List() ([]db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []db.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(user *db.User, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}
