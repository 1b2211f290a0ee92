package service

import (
	"fmt"
	"log"

	"parkspot/internal/metrics"
)

// JobService runs the periodic booking-expiry pass: active bookings past
// their end time are cancelled and the affected spots' availability flags are
// re-derived. This is also the self-healing path for flags left stale by a
// failed recompute.
type JobService struct {
	Repo     JobStore
	Bookings *BookingService
}

func NewJobService(repo JobStore, bookings *BookingService) *JobService {
	return &JobService{Repo: repo, Bookings: bookings}
}

func (s *JobService) ExpireFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings past their end time...")

	expired, err := s.Repo.ExpiredActiveBookings()
	if err != nil {
		return fmt.Errorf("cron job: failed to get expired bookings: %w", err)
	}
	if len(expired) == 0 {
		log.Println("Cron Job: No active bookings found past their end time.")
		return nil
	}

	ids := make([]string, 0, len(expired))
	spotIDs := make(map[string]struct{})
	for _, e := range expired {
		ids = append(ids, e.BookingID)
		spotIDs[e.ParkingSpotID] = struct{}{}
	}

	if err := s.Repo.CancelBookings(ids); err != nil {
		return fmt.Errorf("cron job: failed to cancel expired bookings: %w", err)
	}
	metrics.BookingsExpired.Add(float64(len(ids)))

	for spotID := range spotIDs {
		if err := s.Bookings.RecomputeSpotAvailability(spotID); err != nil {
			log.Printf("Cron Job: failed to recompute availability for spot %s: %v", spotID, err)
		}
	}

	log.Printf("Cron Job: Cancelled %d expired bookings across %d spots.", len(ids), len(spotIDs))
	return nil
}
