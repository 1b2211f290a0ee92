package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(database *sql.DB) *SpotRepository {
	return &SpotRepository{DB: database}
}

const spotColumns = `id, landowner_id, location, car_slots, bike_slots, car_cost, bike_cost,
	full_time, start_time, end_time, available, latitude, longitude, created_at, updated_at`

func (r *SpotRepository) Create(s *db.ParkingSpot) error {
	query := `
		INSERT INTO parking_spots
		(id, landowner_id, location, car_slots, bike_slots, car_cost, bike_cost,
		 full_time, start_time, end_time, available, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		s.ID, s.LandownerID, s.Location, s.CarSlots, s.BikeSlots, s.CarCost, s.BikeCost,
		s.FullTime, s.StartTime, s.EndTime, s.Available, s.Latitude, s.Longitude,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting parking spot: %w", err)
	}
	return nil
}

func (r *SpotRepository) GetByID(id string) (*db.ParkingSpot, error) {
	var s db.ParkingSpot
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.LandownerID, &s.Location, &s.CarSlots, &s.BikeSlots, &s.CarCost, &s.BikeCost,
		&s.FullTime, &s.StartTime, &s.EndTime, &s.Available, &s.Latitude, &s.Longitude,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying parking spot: %w", err)
	}
	return &s, nil
}

func (r *SpotRepository) Update(id string, req entities.SpotRequest) (*db.ParkingSpot, error) {
	query := `
		UPDATE parking_spots
		SET location = $1, car_slots = $2, bike_slots = $3, car_cost = $4, bike_cost = $5,
		    full_time = $6, start_time = $7, end_time = $8, landowner_id = $9,
		    latitude = $10, longitude = $11, updated_at = NOW()
		WHERE id = $12`
	result, err := r.DB.Exec(query,
		req.Location, req.CarSlots, req.BikeSlots, req.CarCost, req.BikeCost,
		req.FullTime, req.StartTime, req.EndTime, req.LandownerID,
		req.Latitude, req.Longitude, id,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating parking spot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *SpotRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM parking_spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting parking spot: %w", err)
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

// SetAvailable persists the derived availability flag.
func (r *SpotRepository) SetAvailable(id string, available bool) error {
	_, err := r.DB.Exec(`UPDATE parking_spots SET available = $1, updated_at = NOW() WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("error updating spot availability: %w", err)
	}
	return nil
}

// List returns spots matching the optional location substring. When withOwner
// is set the landowner contact details are joined in (admin listings).
func (r *SpotRepository) List(location string, withOwner bool) ([]entities.SpotView, error) {
	builder := psql.Select(
		"ps.id", "ps.landowner_id", "ps.location", "ps.car_slots", "ps.bike_slots",
		"ps.car_cost", "ps.bike_cost", "ps.full_time", "ps.start_time", "ps.end_time",
		"ps.available", "ps.latitude", "ps.longitude", "ps.created_at", "ps.updated_at",
	).
		From("parking_spots ps").
		OrderBy("ps.created_at DESC")

	if withOwner {
		builder = builder.
			Columns("lo.full_name", "lo.contact_address", "lo.phone_number").
			Join("users lo ON lo.id = ps.landowner_id")
	}
	if location != "" {
		builder = builder.Where("ps.location ILIKE ?", "%"+location+"%")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building spot list query: %w", err)
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying parking spots: %w", err)
	}
	defer rows.Close()

	var spots []entities.SpotView
	for rows.Next() {
		var v entities.SpotView
		dest := []interface{}{
			&v.ID, &v.LandownerID, &v.Location, &v.CarSlots, &v.BikeSlots,
			&v.CarCost, &v.BikeCost, &v.FullTime, &v.StartTime, &v.EndTime,
			&v.Available, &v.Latitude, &v.Longitude, &v.CreatedAt, &v.UpdatedAt,
		}
		if withOwner {
			dest = append(dest, &v.LandownerFullName, &v.LandownerAddress, &v.LandownerPhone)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning parking spot row: %w", err)
		}
		spots = append(spots, v)
	}
	return spots, rows.Err()
}

func (r *SpotRepository) ListByLandowner(landownerID string) ([]db.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE landowner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, landownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying landowner parking spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		err := rows.Scan(
			&s.ID, &s.LandownerID, &s.Location, &s.CarSlots, &s.BikeSlots, &s.CarCost, &s.BikeCost,
			&s.FullTime, &s.StartTime, &s.EndTime, &s.Available, &s.Latitude, &s.Longitude,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning parking spot row: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}
