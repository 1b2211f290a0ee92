package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/auth"
	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type SpotHandler struct {
	Service *service.SpotService
}

func NewSpotHandler(svc *service.SpotService) *SpotHandler {
	return &SpotHandler{Service: svc}
}

func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.Service.CreateSpot(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SpotResponse{
		Message: "Parking spot listed successfully",
		Spot:    spot,
	})
}

// ListSpots serves the public location search. Authenticated admins get every
// spot with landowner contact details instead.
func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	isAdmin := false
	if claims, ok := auth.FromContext(r.Context()); ok {
		isAdmin = claims.Role == db.RoleAdmin
	}

	spots, err := h.Service.ListSpots(r.URL.Query().Get("location"), isAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *SpotHandler) ListLandownerSpots(w http.ResponseWriter, r *http.Request) {
	landownerID := mux.Vars(r)["landowner_id"]
	spots, err := h.Service.ListSpotsByLandowner(landownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *SpotHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.Service.UpdateSpot(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SpotResponse{
		Message: "Parking spot updated successfully",
		Spot:    spot,
	})
}

func (h *SpotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.DeleteSpot(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Parking spot deleted successfully")
}
