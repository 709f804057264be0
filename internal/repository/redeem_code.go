package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// GetRedeemCodeByCode looks a code up by its exact, case-sensitive string.
func (r *Repository) GetRedeemCodeByCode(ctx context.Context, code string) (*model.RedeemCode, error) {
	var rc model.RedeemCode
	err := r.db.GetContext(ctx, &rc, "SELECT * FROM redeem_codes WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// RedeemCode performs a full redemption in one transaction. The code row is
// locked before the exhaustion and per-account checks, so a code with
// max_redemptions = 1 succeeds exactly once no matter how many callers race.
func (r *Repository) RedeemCode(ctx context.Context, accountID uuid.UUID, code string) (*model.RedeemResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rc model.RedeemCode
	err = tx.GetContext(ctx, &rc, "SELECT * FROM redeem_codes WHERE code = $1 FOR UPDATE", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get redeem code: %w", err)
	}

	if !rc.IsActive {
		return nil, ErrCodeInactive
	}
	if rc.Expired(time.Now().UTC()) {
		return nil, ErrCodeExpired
	}
	if rc.Exhausted() {
		return nil, ErrCodeExhausted
	}

	if !rc.AllowRepeatPerUser {
		var used int
		err = tx.GetContext(ctx, &used, `
			SELECT COUNT(*) FROM redeem_code_uses
			WHERE code_id = $1 AND account_id = $2`,
			rc.ID, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check prior redemption: %w", err)
		}
		if used > 0 {
			return nil, ErrCodeAlreadyRedeemed
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO redeem_code_uses (code_id, account_id)
		VALUES ($1, $2)`, rc.ID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE redeem_codes SET used_count = used_count + 1
		WHERE id = $1`, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment used count: %w", err)
	}

	result := &model.RedeemResult{RewardType: rc.RewardType}
	switch rc.RewardType {
	case model.RedeemRewardTypeCoins:
		after, err := applyBalance(ctx, tx, accountID, rc.Coins, model.LedgerEntryTypeEarn, "Redeem code "+rc.Code, &rc.ID)
		if err != nil {
			return nil, err
		}
		result.Coins = rc.Coins
		result.NewBalance = &after
	case model.RedeemRewardTypeProduct:
		if err := depositBackpackItem(ctx, tx, accountID, *rc.ProductID, rc.Quantity); err != nil {
			return nil, err
		}
		result.ProductID = rc.ProductID
		result.Quantity = rc.Quantity
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateRedeemCode creates a new code (admin use).
func (r *Repository) CreateRedeemCode(ctx context.Context, rc *model.RedeemCode) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO redeem_codes (code, reward_type, coins, product_id, quantity, max_redemptions, allow_repeat_per_user, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		rc.Code, rc.RewardType, rc.Coins, rc.ProductID, rc.Quantity, rc.MaxRedemptions, rc.AllowRepeatPerUser, rc.ExpiresAt, rc.IsActive,
	).Scan(&rc.ID, &rc.CreatedAt)
}

func (r *Repository) ListRedeemCodes(ctx context.Context, limit, offset int) ([]model.RedeemCode, error) {
	var codes []model.RedeemCode
	err := r.db.SelectContext(ctx, &codes, `
		SELECT * FROM redeem_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return codes, err
}

func (r *Repository) DeactivateRedeemCode(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE redeem_codes SET is_active = FALSE WHERE code = $1", code)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCodeNotFound
	}
	return nil
}
