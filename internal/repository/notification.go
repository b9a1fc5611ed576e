package repository

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
	ExistsByTitle(userID, goalID, notificationType, title string) (bool, error)
	ExistsSince(userID, goalID, notificationType string, since time.Time) (bool, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, goal_id, type, title, message, is_read, sent_email, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		notification.ID,
		notification.UserID,
		notification.GoalID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.IsRead,
		notification.SentEmail,
		notification.CreatedAt,
	)

	return err
}

func (r *notificationRepository) List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT * FROM notifications WHERE user_id = $1`
	args := []any{userID}

	if unreadOnly {
		query += ` AND is_read = FALSE`
	}

	query += ` ORDER BY created_at DESC LIMIT $2`
	args = append(args, limit)

	var notifications []*model.Notification
	err := r.db.Select(&notifications, query, args...)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, notificationID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	_, err := r.db.Exec(query, userID)
	return err
}

func (r *notificationRepository) ExistsByTitle(userID, goalID, notificationType, title string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications
	          WHERE user_id = $1 AND goal_id = $2 AND type = $3 AND title = $4`
	err := r.db.QueryRow(query, userID, goalID, notificationType, title).Scan(&count)
	return count > 0, err
}

func (r *notificationRepository) ExistsSince(userID, goalID, notificationType string, since time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications
	          WHERE user_id = $1 AND goal_id = $2 AND type = $3 AND created_at >= $4`
	err := r.db.QueryRow(query, userID, goalID, notificationType, since).Scan(&count)
	return count > 0, err
}
