package model

import (
	"time"

	"github.com/google/uuid"
)

type RedeemRewardType string

const (
	RedeemRewardTypeCoins   RedeemRewardType = "coins"
	RedeemRewardTypeProduct RedeemRewardType = "product"
)

type RedeemCode struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	Code               string           `json:"code" db:"code"` // case-sensitive exact match
	RewardType         RedeemRewardType `json:"reward_type" db:"reward_type"`
	Coins              int64            `json:"coins" db:"coins"`
	ProductID          *uuid.UUID       `json:"product_id,omitempty" db:"product_id"`
	Quantity           int64            `json:"quantity" db:"quantity"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty" db:"max_redemptions"` // nil = unlimited
	UsedCount          int              `json:"used_count" db:"used_count"`
	AllowRepeatPerUser bool             `json:"allow_repeat_per_user" db:"allow_repeat_per_user"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty" db:"expires_at"`
	IsActive           bool             `json:"is_active" db:"is_active"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
}

// Exhausted reports whether the usage cap has been reached.
func (c *RedeemCode) Exhausted() bool {
	return c.MaxRedemptions != nil && c.UsedCount >= *c.MaxRedemptions
}

func (c *RedeemCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

type RedeemCodeUse struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CodeID    uuid.UUID `json:"code_id" db:"code_id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RedeemResult summarizes what a successful redemption granted.
type RedeemResult struct {
	RewardType RedeemRewardType `json:"reward_type"`
	Coins      int64            `json:"coins,omitempty"`
	ProductID  *uuid.UUID       `json:"product_id,omitempty"`
	Quantity   int64            `json:"quantity,omitempty"`
	NewBalance *int64           `json:"new_balance,omitempty"`
}
