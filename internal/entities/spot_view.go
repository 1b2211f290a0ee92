package entities

import "parkspot/internal/db"

// SpotView is a parking spot joined with its landowner's contact details.
// The contact fields are only populated for admin listings.
type SpotView struct {
	db.ParkingSpot
	LandownerFullName string `json:"landowner_full_name,omitempty"`
	LandownerAddress  string `json:"landowner_address,omitempty"`
	LandownerPhone    string `json:"landowner_phone,omitempty"`
}
