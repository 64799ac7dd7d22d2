package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO notifications(recipient_id, recipient_role, message, type, created_at, read)
         VALUES($1, $2, $3, $4, $5, false)
         RETURNING id`,
		n.RecipientID, n.RecipientRole, n.Message, n.Type, n.CreatedAt,
	).Scan(&n.ID)
}

// ListUnread returns the caller's unread notifications. Admin reads the
// role-wide set, everyone else reads their own.
func (r *NotificationRepository) ListUnread(ctx context.Context, userID int, role string) ([]models.Notification, error) {
	query := `
		SELECT id, recipient_id, recipient_role, message, type, created_at, read
		FROM notifications
		WHERE recipient_role=$1 AND recipient_id=$2 AND read=false
		ORDER BY created_at DESC`
	args := []any{role, userID}
	if role == models.RoleAdmin {
		query = `
		SELECT id, recipient_id, recipient_role, message, type, created_at, read
		FROM notifications
		WHERE recipient_role=$1 AND read=false
		ORDER BY created_at DESC`
		args = []any{role}
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.RecipientID, &n.RecipientRole, &n.Message,
			&n.Type, &n.CreatedAt, &n.Read)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int, role string) error {
	if role == models.RoleAdmin {
		_, err := r.DB.Exec(ctx,
			`UPDATE notifications SET read=true WHERE id=$1 AND recipient_role=$2`,
			id, role)
		return err
	}
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET read=true
         WHERE id=$1 AND recipient_role=$2 AND recipient_id=$3`,
		id, role, userID)
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int, role string) error {
	if role == models.RoleAdmin {
		_, err := r.DB.Exec(ctx,
			`UPDATE notifications SET read=true WHERE recipient_role=$1 AND read=false`, role)
		return err
	}
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET read=true
         WHERE recipient_role=$1 AND recipient_id=$2 AND read=false`,
		role, userID)
	return err
}
