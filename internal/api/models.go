package api

import "parkspot/internal/db"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type BookingResponse struct {
	Message string      `json:"message"`
	Booking *db.Booking `json:"booking"`
}

type SpotResponse struct {
	Message string          `json:"message"`
	Spot    *db.ParkingSpot `json:"parkingSpot"`
}
