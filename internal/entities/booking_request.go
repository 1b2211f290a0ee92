package entities

import "time"

// BookingRequest is the input to the availability engine.
type BookingRequest struct {
	ParkingSpotID  string    `json:"parking_spot_id"`
	VehicleOwnerID string    `json:"vehicle_owner_id"`
	VehicleType    string    `json:"vehicle_type"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// SpotRequest is the input to spot creation and admin spot updates.
type SpotRequest struct {
	LandownerID string  `json:"landowner_id"`
	Location    string  `json:"location"`
	CarSlots    int     `json:"car_slots"`
	BikeSlots   int     `json:"bike_slots"`
	CarCost     float64 `json:"car_cost"`
	BikeCost    float64 `json:"bike_cost"`
	FullTime    bool    `json:"full_time"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
