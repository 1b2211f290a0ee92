package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// activeStatuses are the states that hold a slot against capacity.
var activeStatuses = []string{db.StatusPending, db.StatusConfirmed}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(id, parking_spot_id, vehicle_owner_id, vehicle_type, start_time, end_time, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	err := r.DB.QueryRow(query,
		b.ID,
		b.ParkingSpotID,
		b.VehicleOwnerID,
		b.VehicleType,
		b.StartTime,
		b.EndTime,
		b.TotalCost,
		b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(id string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, parking_spot_id, vehicle_owner_id, vehicle_type, start_time, end_time, total_cost, status, created_at
		FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.ParkingSpotID, &b.VehicleOwnerID, &b.VehicleType,
		&b.StartTime, &b.EndTime, &b.TotalCost, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

// CountOverlapping counts bookings on the spot that hold a slot for the given
// vehicle type and intersect [start, end) under half-open semantics.
func (r *BookingRepository) CountOverlapping(spotID, vehicleType string, start, end time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE parking_spot_id = $1
		  AND vehicle_type = $2
		  AND status = ANY($3)
		  AND start_time < $4
		  AND end_time > $5`
	err := r.DB.QueryRow(query, spotID, vehicleType, pq.Array(activeStatuses), end, start).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// CountActive counts bookings on the spot holding a slot for the given
// vehicle type, regardless of interval.
func (r *BookingRepository) CountActive(spotID, vehicleType string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE parking_spot_id = $1
		  AND vehicle_type = $2
		  AND status = ANY($3)`
	err := r.DB.QueryRow(query, spotID, vehicleType, pq.Array(activeStatuses)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active bookings: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListAll(filter entities.BookingFilter) ([]entities.BookingView, error) {
	builder := psql.Select(
		"b.id", "b.parking_spot_id", "b.vehicle_owner_id", "b.vehicle_type",
		"b.start_time", "b.end_time", "b.total_cost", "b.status", "b.created_at",
		"vo.first_name", "vo.username", "ps.location", "lo.full_name",
	).
		From("bookings b").
		Join("users vo ON vo.id = b.vehicle_owner_id").
		Join("parking_spots ps ON ps.id = b.parking_spot_id").
		Join("users lo ON lo.id = ps.landowner_id").
		OrderBy("b.start_time DESC")

	if filter.Date != "" {
		builder = builder.Where("DATE(b.start_time) = ?", filter.Date)
	}
	if filter.VehicleType != "" {
		builder = builder.Where(sq.Eq{"b.vehicle_type": filter.VehicleType})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"b.status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building booking list query: %w", err)
	}
	return r.queryBookingViews(query, args...)
}

func (r *BookingRepository) ListByLandowner(landownerID string) ([]entities.BookingView, error) {
	query := `
		SELECT b.id, b.parking_spot_id, b.vehicle_owner_id, b.vehicle_type,
		       b.start_time, b.end_time, b.total_cost, b.status, b.created_at,
		       vo.first_name, vo.username, ps.location, lo.full_name
		FROM bookings b
		JOIN users vo ON vo.id = b.vehicle_owner_id
		JOIN parking_spots ps ON ps.id = b.parking_spot_id
		JOIN users lo ON lo.id = ps.landowner_id
		WHERE ps.landowner_id = $1
		ORDER BY b.start_time DESC`
	return r.queryBookingViews(query, landownerID)
}

func (r *BookingRepository) ListByVehicleOwner(vehicleOwnerID string) ([]entities.BookingView, error) {
	query := `
		SELECT b.id, b.parking_spot_id, b.vehicle_owner_id, b.vehicle_type,
		       b.start_time, b.end_time, b.total_cost, b.status, b.created_at,
		       vo.first_name, vo.username, ps.location, lo.full_name,
		       lo.phone_number, lo.contact_address
		FROM bookings b
		JOIN users vo ON vo.id = b.vehicle_owner_id
		JOIN parking_spots ps ON ps.id = b.parking_spot_id
		JOIN users lo ON lo.id = ps.landowner_id
		WHERE b.vehicle_owner_id = $1
		ORDER BY b.start_time DESC`

	rows, err := r.DB.Query(query, vehicleOwnerID)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle owner bookings: %w", err)
	}
	defer rows.Close()

	var views []entities.BookingView
	for rows.Next() {
		var v entities.BookingView
		err := rows.Scan(
			&v.ID, &v.ParkingSpotID, &v.VehicleOwnerID, &v.VehicleType,
			&v.StartTime, &v.EndTime, &v.TotalCost, &v.Status, &v.CreatedAt,
			&v.VehicleOwnerFirstName, &v.VehicleOwnerUsername, &v.SpotLocation,
			&v.LandownerFullName, &v.LandownerPhone, &v.LandownerAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *BookingRepository) queryBookingViews(query string, args ...interface{}) ([]entities.BookingView, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var views []entities.BookingView
	for rows.Next() {
		var v entities.BookingView
		err := rows.Scan(
			&v.ID, &v.ParkingSpotID, &v.VehicleOwnerID, &v.VehicleType,
			&v.StartTime, &v.EndTime, &v.TotalCost, &v.Status, &v.CreatedAt,
			&v.VehicleOwnerFirstName, &v.VehicleOwnerUsername, &v.SpotLocation,
			&v.LandownerFullName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
