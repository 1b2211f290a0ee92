package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ExpiredBooking identifies an active booking whose end time has passed,
// together with the spot whose availability flag may need healing.
type ExpiredBooking struct {
	BookingID     string
	ParkingSpotID string
}

// ExpiredActiveBookings returns pending/confirmed bookings past their end time.
func (r *JobRepository) ExpiredActiveBookings() ([]ExpiredBooking, error) {
	query := `
		SELECT id, parking_spot_id FROM bookings
		WHERE status = ANY($1) AND end_time < NOW()`
	rows, err := r.DB.Query(query, pq.Array([]string{db.StatusPending, db.StatusConfirmed}))
	if err != nil {
		return nil, fmt.Errorf("error querying expired bookings: %w", err)
	}
	defer rows.Close()

	var expired []ExpiredBooking
	for rows.Next() {
		var e ExpiredBooking
		if err := rows.Scan(&e.BookingID, &e.ParkingSpotID); err != nil {
			return nil, fmt.Errorf("error scanning expired booking: %w", err)
		}
		expired = append(expired, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating expired bookings: %w", err)
	}
	return expired, nil
}

// CancelBookings marks the given bookings cancelled in one statement.
func (r *JobRepository) CancelBookings(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1 WHERE id = ANY($2)`,
		db.StatusCancelled, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error cancelling expired bookings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Cancelled %d expired bookings", affected)
	}
	return nil
}
