package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	apperr "parkspot/internal/errors"
	"parkspot/internal/metrics"
	"parkspot/internal/repository"
	"parkspot/internal/utils"
)

// BookingService implements the availability engine: overlap counting against
// per-class capacity, cost computation, and the derived available flag on the
// parking spot. Every availability decision for a spot runs under that spot's
// mutex, so two concurrent requests cannot both observe free capacity and
// overbook it.
type BookingService struct {
	Bookings BookingStore
	Spots    SpotStore
	Users    UserStore
	Notifier Notifier

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewBookingService(bookings BookingStore, spots SpotStore, users UserStore, notifier Notifier) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Spots:    spots,
		Users:    users,
		Notifier: notifier,
		locks:    make(map[string]*sync.Mutex),
	}
}

// spotLock returns the mutex guarding availability decisions for a spot.
// Entries are never evicted, so the map holds one mutex per spot ever booked
// against, deleted spots included.
func (s *BookingService) spotLock(spotID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[spotID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[spotID] = mu
	}
	return mu
}

func (s *BookingService) CreateBooking(req entities.BookingRequest) (*db.Booking, error) {
	if !utils.ValidVehicleType(req.VehicleType) {
		metrics.BookingRejections.WithLabelValues("validation").Inc()
		return nil, apperr.Validation("vehicle_type must be car or bike")
	}

	spot, err := s.Spots.GetByID(req.ParkingSpotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.BookingRejections.WithLabelValues("not_found").Inc()
			return nil, apperr.NotFound("Parking spot not found")
		}
		return nil, apperr.Internal("Server error creating booking")
	}

	requester, err := s.Users.GetByID(req.VehicleOwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.BookingRejections.WithLabelValues("not_found").Inc()
			return nil, apperr.NotFound("Vehicle owner not found")
		}
		return nil, apperr.Internal("Server error creating booking")
	}

	mu := s.spotLock(spot.ID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock so the decision sees the latest flag.
	spot, err = s.Spots.GetByID(spot.ID)
	if err != nil {
		return nil, apperr.Internal("Server error creating booking")
	}

	// Coarse fast path: an unavailable spot refuses every vehicle type until
	// a later mutation reopens it.
	if !spot.Available {
		metrics.BookingRejections.WithLabelValues("unavailable").Inc()
		return nil, apperr.Unavailable("Parking spot is not available")
	}

	hours := req.EndTime.Sub(req.StartTime).Hours()
	if hours <= 0 {
		metrics.BookingRejections.WithLabelValues("invalid_interval").Inc()
		return nil, apperr.InvalidInterval("End time must be after start time")
	}

	capacity := utils.SlotsFor(spot, req.VehicleType)
	totalCost := hours * utils.CostFor(spot, req.VehicleType)

	booked, err := s.Bookings.CountOverlapping(spot.ID, req.VehicleType, req.StartTime, req.EndTime)
	if err != nil {
		return nil, apperr.Internal("Server error creating booking")
	}
	if booked >= capacity {
		metrics.BookingRejections.WithLabelValues("slots_exhausted").Inc()
		return nil, apperr.SlotsExhausted("No %s slots available for this time", req.VehicleType)
	}

	booking := &db.Booking{
		ID:             uuid.NewString(),
		ParkingSpotID:  spot.ID,
		VehicleOwnerID: requester.ID,
		VehicleType:    req.VehicleType,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TotalCost:      totalCost,
		Status:         db.StatusPending,
	}
	if err := s.Bookings.Create(booking); err != nil {
		log.Printf("Error creating booking for spot %s: %v", spot.ID, err)
		return nil, apperr.Internal("Server error creating booking")
	}
	metrics.BookingsCreated.Inc()

	// A create only closes the spot when the booked interval itself is at
	// capacity; bookings at other times keep their slots open.
	intervalCount := func(vehicleType string) (int, error) {
		return s.Bookings.CountOverlapping(spot.ID, vehicleType, req.StartTime, req.EndTime)
	}
	if err := s.deriveAvailability(spot, intervalCount); err != nil {
		// The flag heals on the next mutation; the booking itself stands.
		log.Printf("Error recomputing availability for spot %s: %v", spot.ID, err)
	}

	s.notifyBookingParties(spot, requester,
		fmt.Sprintf("You (%s) have booked a parking spot at %s.", requester.Username, spot.Location),
		fmt.Sprintf("New booking for your parking spot at %s by %s.", spot.Location, requester.Username),
	)

	return booking, nil
}

func (s *BookingService) UpdateBookingStatus(bookingID, newStatus string) (*db.Booking, error) {
	// Any stored status is reachable from any other; only the value itself is
	// checked.
	if !utils.ValidStatus(newStatus) {
		return nil, apperr.Validation("status must be pending, confirmed or cancelled")
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, apperr.Internal("Server error updating booking status")
	}

	mu := s.spotLock(booking.ParkingSpotID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Bookings.UpdateStatus(bookingID, newStatus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, apperr.Internal("Server error updating booking status")
	}
	booking.Status = newStatus

	// A cancelled booking frees its slot; anything past this point is
	// best-effort and must not undo the status change.
	if newStatus == db.StatusCancelled {
		if spot, err := s.Spots.GetByID(booking.ParkingSpotID); err != nil {
			log.Printf("Parking spot %s not found for booking %s: %v", booking.ParkingSpotID, bookingID, err)
		} else if err := s.recomputeAvailability(spot); err != nil {
			log.Printf("Error recomputing availability for spot %s: %v", spot.ID, err)
		}
	}

	s.notifyStatusChange(booking, newStatus)

	return booking, nil
}

func (s *BookingService) DeleteBooking(bookingID string) error {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Booking not found")
		}
		return apperr.Internal("Server error deleting booking")
	}

	mu := s.spotLock(booking.ParkingSpotID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Bookings.Delete(bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Booking not found")
		}
		return apperr.Internal("Server error deleting booking")
	}

	// Recompute regardless of the deleted booking's prior status.
	if spot, err := s.Spots.GetByID(booking.ParkingSpotID); err != nil {
		log.Printf("Parking spot %s not found for deleted booking %s: %v", booking.ParkingSpotID, bookingID, err)
	} else if err := s.recomputeAvailability(spot); err != nil {
		log.Printf("Error recomputing availability for spot %s: %v", spot.ID, err)
	}

	return nil
}

// RecomputeSpotAvailability re-derives a spot's available flag under its lock.
// The expiry job calls this after batch-cancelling finished bookings.
func (s *BookingService) RecomputeSpotAvailability(spotID string) error {
	mu := s.spotLock(spotID)
	mu.Lock()
	defer mu.Unlock()

	spot, err := s.Spots.GetByID(spotID)
	if err != nil {
		return err
	}
	return s.recomputeAvailability(spot)
}

// recomputeAvailability re-derives the flag from the interval-free active
// count: a spot is available while at least one vehicle class still has a
// free slot among pending and confirmed bookings. Cancellation, deletion and
// the expiry job use this rule; creates count only bookings overlapping the
// booked interval. Callers hold the spot lock.
func (s *BookingService) recomputeAvailability(spot *db.ParkingSpot) error {
	return s.deriveAvailability(spot, func(vehicleType string) (int, error) {
		return s.Bookings.CountActive(spot.ID, vehicleType)
	})
}

// deriveAvailability sets the flag to whether some vehicle class with slots
// still has capacity under the given booking count, persisting only on
// change.
func (s *BookingService) deriveAvailability(spot *db.ParkingSpot, count func(vehicleType string) (int, error)) error {
	available := false
	if spot.CarSlots > 0 {
		booked, err := count(db.VehicleCar)
		if err != nil {
			return err
		}
		if booked < spot.CarSlots {
			available = true
		}
	}
	if !available && spot.BikeSlots > 0 {
		booked, err := count(db.VehicleBike)
		if err != nil {
			return err
		}
		if booked < spot.BikeSlots {
			available = true
		}
	}

	if available == spot.Available {
		return nil
	}
	if err := s.Spots.SetAvailable(spot.ID, available); err != nil {
		return err
	}
	spot.Available = available
	return nil
}

func (s *BookingService) ListAllBookings(filter entities.BookingFilter) ([]entities.BookingView, error) {
	views, err := s.Bookings.ListAll(filter)
	if err != nil {
		return nil, apperr.Internal("Server error fetching all bookings")
	}
	return views, nil
}

func (s *BookingService) ListBookingsByLandowner(landownerID string) ([]entities.BookingView, error) {
	views, err := s.Bookings.ListByLandowner(landownerID)
	if err != nil {
		return nil, apperr.Internal("Server error fetching bookings")
	}
	return views, nil
}

func (s *BookingService) ListBookingsByVehicleOwner(vehicleOwnerID string) ([]entities.BookingView, error) {
	views, err := s.Bookings.ListByVehicleOwner(vehicleOwnerID)
	if err != nil {
		return nil, apperr.Internal("Server error fetching vehicle owner bookings")
	}
	return views, nil
}

func (s *BookingService) notifyBookingParties(spot *db.ParkingSpot, requester *db.User, requesterMsg, ownerMsg string) {
	s.Notifier.Notify(requester, requesterMsg)

	owner, err := s.Users.GetByID(spot.LandownerID)
	if err != nil {
		log.Printf("Landowner %s not found for spot %s: %v", spot.LandownerID, spot.ID, err)
		return
	}
	s.Notifier.Notify(owner, ownerMsg)
}

func (s *BookingService) notifyStatusChange(booking *db.Booking, status string) {
	spot, err := s.Spots.GetByID(booking.ParkingSpotID)
	if err != nil {
		log.Printf("Parking spot %s not found for booking %s: %v", booking.ParkingSpotID, booking.ID, err)
		return
	}
	requester, err := s.Users.GetByID(booking.VehicleOwnerID)
	if err != nil {
		log.Printf("Vehicle owner %s not found for booking %s: %v", booking.VehicleOwnerID, booking.ID, err)
		return
	}

	s.Notifier.Notify(requester, fmt.Sprintf("Your booking at %s has been %s.", spot.Location, status))

	owner, err := s.Users.GetByID(spot.LandownerID)
	if err != nil {
		log.Printf("Landowner %s not found for spot %s: %v", spot.LandownerID, spot.ID, err)
		return
	}
	s.Notifier.Notify(owner, fmt.Sprintf("Booking at %s by %s has been %s.", spot.Location, requester.Username, status))
}
