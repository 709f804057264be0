package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

func (r *Repository) IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admins WHERE account_id = $1", accountID)
	return count > 0, err
}

func (r *Repository) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.SelectContext(ctx, &admins, "SELECT * FROM admins ORDER BY created_at")
	return admins, err
}

func (r *Repository) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, details []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_id, action, target_account_id, details)
		VALUES ($1, $2, $3, $4)`,
		adminID, action, targetAccountID, details)
	return err
}

func (r *Repository) ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	var logs []model.AdminLog
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}

func (r *Repository) GetStats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM accounts) AS accounts,
			(SELECT COALESCE(SUM(balance), 0) FROM accounts) AS coins_in_flight,
			(SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders,
			(SELECT COUNT(*) FROM gifts WHERE status = 'pending') AS pending_gifts,
			(SELECT COUNT(*) FROM ledger_entries WHERE type = 'claim' AND created_at >= NOW() - INTERVAL '24 hours') AS claims_today`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
