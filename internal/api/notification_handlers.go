package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/service"
)

type NotificationHandler struct {
	Service *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	notifications, err := h.Service.ListUnread(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.MarkRead(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Notification marked as read")
}
