package utils

import "parkspot/internal/db"

// ValidVehicleType reports whether the given type is one the marketplace
// prices and counts capacity for.
func ValidVehicleType(vehicleType string) bool {
	return vehicleType == db.VehicleCar || vehicleType == db.VehicleBike
}

// SlotsFor returns the spot's slot capacity for the given vehicle type.
func SlotsFor(spot *db.ParkingSpot, vehicleType string) int {
	if vehicleType == db.VehicleCar {
		return spot.CarSlots
	}
	return spot.BikeSlots
}

// CostFor returns the spot's hourly cost for the given vehicle type.
func CostFor(spot *db.ParkingSpot, vehicleType string) float64 {
	if vehicleType == db.VehicleCar {
		return spot.CarCost
	}
	return spot.BikeCost
}

// ValidStatus reports whether the given status is a storable booking state.
func ValidStatus(status string) bool {
	switch status {
	case db.StatusPending, db.StatusConfirmed, db.StatusCancelled:
		return true
	}
	return false
}
