package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"asset_inventory_backend/internal/models"
)

// NotificationRepository defines the interface for team notification writes.
// Notifications are fire-and-forget broadcasts; the delivery workflow only
// ever inserts them.
type NotificationRepository interface {
	Create(executor SQLExecutor, notification *models.Notification) error
	GetRecent(limit int) ([]models.Notification, error)
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(executor SQLExecutor, notification *models.Notification) error {
	data, err := marshalJSONB(notification.Data)
	if err != nil {
		return err
	}
	readBy, err := marshalJSONB(notification.ReadBy)
	if err != nil {
		return err
	}
	notification.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notifications (id, title, message, type, data, read_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = executor.Exec(query,
		notification.ID, notification.Title, notification.Message, notification.Type,
		data, readBy, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *notificationRepository) GetRecent(limit int) ([]models.Notification, error) {
	query := `SELECT id, title, message, type, data, read_by, created_at
	          FROM notifications ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var notification models.Notification
		var dataJSON, readByJSON []byte
		err := rows.Scan(
			&notification.ID, &notification.Title, &notification.Message, &notification.Type,
			&dataJSON, &readByJSON, &notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		if len(dataJSON) > 0 {
			if err := unmarshalJSONB(dataJSON, &notification.Data); err != nil {
				return nil, err
			}
		}
		notification.ReadBy = []string{}
		if err := unmarshalJSONB(readByJSON, &notification.ReadBy); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notifications: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}
