package service

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"parkspot/internal/db"
	apperr "parkspot/internal/errors"
	"parkspot/internal/metrics"
	"parkspot/internal/repository"
)

// NotificationService is the notification sink. Notify stores an in-app
// notification (the UI polls for unread ones) and fans out to email and SMS
// when the user has an address or phone on file. Every channel is
// best-effort: failures are logged and counted, never returned.
type NotificationService struct {
	Notifications NotificationStore
	Sender        *SenderService
}

func NewNotificationService(notifications NotificationStore, sender *SenderService) *NotificationService {
	return &NotificationService{Notifications: notifications, Sender: sender}
}

func (s *NotificationService) Notify(user *db.User, message string) {
	notification := &db.Notification{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Message: message,
	}
	if err := s.Notifications.Create(notification); err != nil {
		log.Printf("Error storing notification for user %s: %v", user.ID, err)
		metrics.Notifications.WithLabelValues("inapp", "error").Inc()
	} else {
		metrics.Notifications.WithLabelValues("inapp", "ok").Inc()
	}

	if s.Sender == nil {
		return
	}
	if user.Email != "" {
		go s.Sender.SendEmail(user.Email, user.FirstName, "ParkSpot booking update", message)
	}
	if user.PhoneNumber != "" {
		go s.Sender.SendSMS(user.PhoneNumber, "ParkSpot: "+message)
	}
}

func (s *NotificationService) ListUnread(userID string) ([]db.Notification, error) {
	notifications, err := s.Notifications.ListUnread(userID)
	if err != nil {
		return nil, apperr.Internal("Server error fetching notifications")
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(id string) error {
	if err := s.Notifications.MarkRead(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Notification not found")
		}
		return apperr.Internal("Server error marking notification as read")
	}
	return nil
}
