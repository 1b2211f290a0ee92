package service

import (
	"time"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// SpotStore is the parking-spot collaborator contract.
type SpotStore interface {
	Create(spot *db.ParkingSpot) error
	GetByID(id string) (*db.ParkingSpot, error)
	Update(id string, req entities.SpotRequest) (*db.ParkingSpot, error)
	Delete(id string) error
	SetAvailable(id string, available bool) error
	List(location string, withOwner bool) ([]entities.SpotView, error)
	ListByLandowner(landownerID string) ([]db.ParkingSpot, error)
}

// BookingStore is the booking collaborator contract.
type BookingStore interface {
	Create(booking *db.Booking) error
	GetByID(id string) (*db.Booking, error)
	CountOverlapping(spotID, vehicleType string, start, end time.Time) (int, error)
	CountActive(spotID, vehicleType string) (int, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	ListAll(filter entities.BookingFilter) ([]entities.BookingView, error)
	ListByLandowner(landownerID string) ([]entities.BookingView, error)
	ListByVehicleOwner(vehicleOwnerID string) ([]entities.BookingView, error)
}

// UserStore is the user collaborator contract.
type UserStore interface {
	Create(user *db.User) error
	GetByID(id string) (*db.User, error)
	GetByUsername(username string) (*db.User, error)
	List() ([]db.User, error)
	Delete(id string) error
}

// NotificationStore is the notification collaborator contract.
type NotificationStore interface {
	Create(notification *db.Notification) error
	ListUnread(userID string) ([]db.Notification, error)
	MarkRead(id string) error
}

// JobStore is the background-job collaborator contract.
type JobStore interface {
	ExpiredActiveBookings() ([]repository.ExpiredBooking, error)
	CancelBookings(ids []string) error
}

// Notifier delivers a message to a user, best-effort. Failures are logged and
// never propagated to booking operations.
type Notifier interface {
	Notify(user *db.User, message string)
}
