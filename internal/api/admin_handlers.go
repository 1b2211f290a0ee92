package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/service"
)

// AdminHandler serves the user-moderation endpoints.
type AdminHandler struct {
	Users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{Users: users}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Users.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "User deleted successfully")
}
