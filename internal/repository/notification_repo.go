package repository

import (
	"database/sql"
	"fmt"

	"parkspot/internal/db"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(database *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: database}
}

func (r *NotificationRepository) Create(n *db.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, read)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.DB.QueryRow(query, n.ID, n.UserID, n.Message, n.Read).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListUnread(userID string) ([]db.Notification, error) {
	query := `
		SELECT id, user_id, message, read, created_at
		FROM notifications
		WHERE user_id = $1 AND read = FALSE
		ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(id string) error {
	result, err := r.DB.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
