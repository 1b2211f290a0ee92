package db

import "time"

// Vehicle types accepted on bookings and priced on spots.
const (
	VehicleCar  = "car"
	VehicleBike = "bike"
)

// Booking lifecycle states. "completed" is a UI relabeling of a cancelled
// booking whose end time has passed; it is never stored.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// User roles.
const (
	RoleVehicleOwner = "vehicle_owner"
	RoleLandowner    = "landowner"
	RoleAdmin        = "admin"
)

type User struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	RegistrationType string    `json:"registration_type,omitempty"`
	FullName         string    `json:"full_name,omitempty"`
	ContactAddress   string    `json:"contact_address,omitempty"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Email            string    `json:"email,omitempty"`
	IDType           string    `json:"id_type,omitempty"`
	IDNumber         string    `json:"id_number,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	IDURL            string    `json:"id_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type ParkingSpot struct {
	ID          string    `json:"id"`
	LandownerID string    `json:"landowner_id"`
	Location    string    `json:"location"`
	CarSlots    int       `json:"car_slots"`
	BikeSlots   int       `json:"bike_slots"`
	CarCost     float64   `json:"car_cost"`
	BikeCost    float64   `json:"bike_cost"`
	FullTime    bool      `json:"full_time"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Available   bool      `json:"available"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Booking struct {
	ID             string    `json:"id"`
	ParkingSpotID  string    `json:"parking_spot_id"`
	VehicleOwnerID string    `json:"vehicle_owner_id"`
	VehicleType    string    `json:"vehicle_type"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalCost      float64   `json:"total_cost"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
