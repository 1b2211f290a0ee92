package entities

import "parkspot/internal/db"

// BookingView is a booking joined with the display fields the dashboards
// render next to it (requester, spot and landowner names).
type BookingView struct {
	db.Booking
	VehicleOwnerFirstName string `json:"vehicle_owner_first_name,omitempty"`
	VehicleOwnerUsername  string `json:"vehicle_owner_username,omitempty"`
	SpotLocation          string `json:"spot_location,omitempty"`
	LandownerFullName     string `json:"landowner_full_name,omitempty"`
	LandownerPhone        string `json:"landowner_phone,omitempty"`
	LandownerAddress      string `json:"landowner_address,omitempty"`
}

// BookingFilter narrows the admin booking list.
type BookingFilter struct {
	Date        string
	VehicleType string
	Status      string
}
