package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// ensurePassState creates the season row for the account if it is missing and
// returns it locked for update.
func ensurePassState(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, season int) (*model.PassState, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO pass_states (account_id, season)
		VALUES ($1, $2)
		ON CONFLICT (account_id, season) DO NOTHING`,
		accountID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure pass state: %w", err)
	}

	var state model.PassState
	err = tx.GetContext(ctx, &state, `
		SELECT * FROM pass_states
		WHERE account_id = $1 AND season = $2 FOR UPDATE`,
		accountID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get pass state: %w", err)
	}
	return &state, nil
}

func (r *Repository) GetPassState(ctx context.Context, accountID uuid.UUID, season int) (*model.PassState, error) {
	var state model.PassState
	err := r.db.GetContext(ctx, &state, `
		SELECT * FROM pass_states
		WHERE account_id = $1 AND season = $2`,
		accountID, season)
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// First touch of the season for this account.
	err = r.db.GetContext(ctx, &state, `
		INSERT INTO pass_states (account_id, season)
		VALUES ($1, $2)
		ON CONFLICT (account_id, season) DO UPDATE SET updated_at = pass_states.updated_at
		RETURNING *`,
		accountID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to create pass state: %w", err)
	}
	return &state, nil
}

func (r *Repository) ListPassRewards(ctx context.Context, season int) ([]model.PassReward, error) {
	var rewards []model.PassReward
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT * FROM pass_rewards
		WHERE season = $1
		ORDER BY level, tier`, season)
	return rewards, err
}

func (r *Repository) GetPassReward(ctx context.Context, id uuid.UUID) (*model.PassReward, error) {
	var reward model.PassReward
	err := r.db.GetContext(ctx, &reward, "SELECT * FROM pass_rewards WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func (r *Repository) ListPassRewardClaims(ctx context.Context, accountID uuid.UUID, season int) ([]model.PassRewardClaim, error) {
	var claims []model.PassRewardClaim
	err := r.db.SelectContext(ctx, &claims, `
		SELECT * FROM pass_reward_claims
		WHERE account_id = $1 AND season = $2
		ORDER BY created_at`, accountID, season)
	return claims, err
}

// PurchasePremium debits the premium price and flips the flag in one
// transaction. The pass row lock makes a double purchase impossible.
func (r *Repository) PurchasePremium(ctx context.Context, accountID uuid.UUID, season int, price int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	state, err := ensurePassState(ctx, tx, accountID, season)
	if err != nil {
		return 0, err
	}
	if state.HasPremium {
		return 0, ErrAlreadyPremium
	}

	after, err := applyBalance(ctx, tx, accountID, -price, model.LedgerEntryTypePurchase, "Premium pass", nil)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pass_states SET has_premium = TRUE, updated_at = NOW()
		WHERE account_id = $1 AND season = $2`,
		accountID, season)
	if err != nil {
		return 0, fmt.Errorf("failed to set premium flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

// ClaimPassReward validates the tier gate, the level requirement and the
// claimed set under the pass row lock, then grants the payload. newBalance is
// nil when the reward carries no coins.
func (r *Repository) ClaimPassReward(ctx context.Context, accountID uuid.UUID, reward *model.PassReward, tier model.PassTier, xpPerLevel int64, maxLevel int) (*int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	state, err := ensurePassState(ctx, tx, accountID, reward.Season)
	if err != nil {
		return nil, err
	}

	if tier == model.PassTierPremium && !state.HasPremium {
		return nil, ErrRewardLocked
	}
	if state.Level(xpPerLevel, maxLevel) < reward.Level {
		return nil, ErrLevelNotReached
	}

	var claimed int
	err = tx.GetContext(ctx, &claimed, `
		SELECT COUNT(*) FROM pass_reward_claims
		WHERE account_id = $1 AND season = $2 AND reward_id = $3 AND tier = $4`,
		accountID, reward.Season, reward.ID, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to check claimed set: %w", err)
	}
	if claimed > 0 {
		return nil, ErrRewardAlreadyClaimed
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pass_reward_claims (account_id, season, reward_id, tier)
		VALUES ($1, $2, $3, $4)`,
		accountID, reward.Season, reward.ID, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to record reward claim: %w", err)
	}

	var newBalance *int64
	if reward.Coins > 0 {
		after, err := applyBalance(ctx, tx, accountID, reward.Coins, model.LedgerEntryTypeEarn, "Pass reward: "+reward.Title, &reward.ID)
		if err != nil {
			return nil, err
		}
		newBalance = &after
	}
	if reward.ProductID != nil {
		if err := depositBackpackItem(ctx, tx, accountID, *reward.ProductID, 1); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newBalance, nil
}
