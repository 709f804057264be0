package model

import (
	"time"

	"github.com/google/uuid"
)

type PassTier string

const (
	PassTierFree    PassTier = "free"
	PassTierPremium PassTier = "premium"
)

type PassState struct {
	AccountID  uuid.UUID `json:"account_id" db:"account_id"`
	Season     int       `json:"season" db:"season"`
	HasPremium bool      `json:"has_premium" db:"has_premium"`
	XP         int64     `json:"xp" db:"xp"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Level derives the pass level from accumulated XP, capped at maxLevel.
func (p *PassState) Level(xpPerLevel int64, maxLevel int) int {
	if xpPerLevel <= 0 {
		return 0
	}
	level := int(p.XP / xpPerLevel)
	if level > maxLevel {
		return maxLevel
	}
	return level
}

type PassReward struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Season    int        `json:"season" db:"season"`
	Level     int        `json:"level" db:"level"` // required level
	Tier      PassTier   `json:"tier" db:"tier"`
	Title     string     `json:"title" db:"title"`
	Coins     int64      `json:"coins" db:"coins"` // coin payload, 0 if item-only
	ProductID *uuid.UUID `json:"product_id,omitempty" db:"product_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type PassRewardClaim struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	Season    int       `json:"season" db:"season"`
	RewardID  uuid.UUID `json:"reward_id" db:"reward_id"`
	Tier      PassTier  `json:"tier" db:"tier"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
