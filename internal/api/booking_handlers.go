package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

// BookingService is the slice of the availability engine the handlers need.
type BookingService interface {
	CreateBooking(req entities.BookingRequest) (*db.Booking, error)
	UpdateBookingStatus(bookingID, newStatus string) (*db.Booking, error)
	DeleteBooking(bookingID string) error
	ListAllBookings(filter entities.BookingFilter) ([]entities.BookingView, error)
	ListBookingsByLandowner(landownerID string) ([]entities.BookingView, error)
	ListBookingsByVehicleOwner(vehicleOwnerID string) ([]entities.BookingView, error)
}

type BookingHandler struct {
	Service BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.CreateBooking(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BookingResponse{
		Message: "Booking created successfully",
		Booking: booking,
	})
}

func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.UpdateBookingStatus(id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BookingResponse{
		Message: "Booking " + booking.Status + " successfully",
		Booking: booking,
	})
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.DeleteBooking(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Booking deleted successfully")
}

func (h *BookingHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	filter := entities.BookingFilter{
		Date:        r.URL.Query().Get("date"),
		VehicleType: r.URL.Query().Get("vehicle_type"),
		Status:      r.URL.Query().Get("status"),
	}
	bookings, err := h.Service.ListAllBookings(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListLandownerBookings(w http.ResponseWriter, r *http.Request) {
	landownerID := mux.Vars(r)["landowner_id"]
	bookings, err := h.Service.ListBookingsByLandowner(landownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListVehicleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	vehicleOwnerID := mux.Vars(r)["vehicle_owner_id"]
	bookings, err := h.Service.ListBookingsByVehicleOwner(vehicleOwnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
