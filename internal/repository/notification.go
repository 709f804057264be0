package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

func insertNotification(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, ntype model.NotificationType, message string, referenceID *uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (account_id, type, message, reference_id)
		VALUES ($1, $2, $3, $4)`,
		accountID, ntype, message, referenceID)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func deleteNotificationsByReference(ctx context.Context, tx *sqlx.Tx, referenceID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM notifications WHERE reference_id = $1", referenceID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}

func (r *Repository) ListNotifications(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	return notifications, err
}

func (r *Repository) MarkNotificationRead(ctx context.Context, accountID, notificationID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read_at = NOW()
		WHERE id = $1 AND account_id = $2 AND read_at IS NULL`,
		notificationID, accountID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
