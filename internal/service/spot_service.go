package service

import (
	"errors"

	"github.com/google/uuid"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	apperr "parkspot/internal/errors"
	"parkspot/internal/repository"
)

type SpotService struct {
	Spots SpotStore
	Users UserStore
}

func NewSpotService(spots SpotStore, users UserStore) *SpotService {
	return &SpotService{Spots: spots, Users: users}
}

func validateSpotRequest(req entities.SpotRequest) error {
	switch {
	case req.LandownerID == "":
		return apperr.Validation("landowner_id is required")
	case req.Location == "":
		return apperr.Validation("location is required")
	case req.CarSlots < 0:
		return apperr.Validation("car_slots must be 0 or a positive number")
	case req.BikeSlots < 0:
		return apperr.Validation("bike_slots must be 0 or a positive number")
	case req.CarSlots == 0 && req.BikeSlots == 0:
		return apperr.Validation("At least one of car_slots or bike_slots must be greater than 0")
	case req.CarSlots > 0 && req.CarCost <= 0:
		return apperr.Validation("car_cost must be a positive number if car_slots are provided")
	case req.BikeSlots > 0 && req.BikeCost <= 0:
		return apperr.Validation("bike_cost must be a positive number if bike_slots are provided")
	case req.Latitude == 0:
		return apperr.Validation("latitude must be a valid number")
	case req.Longitude == 0:
		return apperr.Validation("longitude must be a valid number")
	case !req.FullTime && (req.StartTime == "" || req.EndTime == ""):
		return apperr.Validation("start_time and end_time are required if not full_time")
	}
	return nil
}

func (s *SpotService) CreateSpot(req entities.SpotRequest) (*db.ParkingSpot, error) {
	if err := validateSpotRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByID(req.LandownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Landowner not found")
		}
		return nil, apperr.Internal("Server error listing parking spot")
	}

	spot := &db.ParkingSpot{
		ID:          uuid.NewString(),
		LandownerID: req.LandownerID,
		Location:    req.Location,
		CarSlots:    req.CarSlots,
		BikeSlots:   req.BikeSlots,
		CarCost:     req.CarCost,
		BikeCost:    req.BikeCost,
		FullTime:    req.FullTime,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Available:   true,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := s.Spots.Create(spot); err != nil {
		return nil, apperr.Internal("Server error listing parking spot")
	}
	return spot, nil
}

// ListSpots returns spots matching the location filter. Admins see every spot
// with landowner contact details, ignoring the filter.
func (s *SpotService) ListSpots(location string, isAdmin bool) ([]entities.SpotView, error) {
	if isAdmin {
		location = ""
	}
	spots, err := s.Spots.List(location, isAdmin)
	if err != nil {
		return nil, apperr.Internal("Server error fetching parking spots")
	}
	return spots, nil
}

func (s *SpotService) ListSpotsByLandowner(landownerID string) ([]db.ParkingSpot, error) {
	spots, err := s.Spots.ListByLandowner(landownerID)
	if err != nil {
		return nil, apperr.Internal("Server error fetching landowner parking spots")
	}
	return spots, nil
}

func (s *SpotService) UpdateSpot(id string, req entities.SpotRequest) (*db.ParkingSpot, error) {
	spot, err := s.Spots.Update(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Parking spot not found")
		}
		return nil, apperr.Internal("Server error updating parking spot")
	}
	return spot, nil
}

func (s *SpotService) DeleteSpot(id string) error {
	if err := s.Spots.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Parking spot not found")
		}
		return apperr.Internal("Server error deleting parking spot")
	}
	return nil
}
