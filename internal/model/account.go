package model

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	DisplayName string     `json:"display_name" db:"display_name"`
	AvatarURL   *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	PublicID    string     `json:"public_id" db:"public_id"`
	Balance     int64      `json:"balance" db:"balance"` // cached; authoritative sum lives in ledger_entries
	LastClaimAt *time.Time `json:"last_claim_at,omitempty" db:"last_claim_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Wallet is the client-facing snapshot of an account's economy state.
type Wallet struct {
	Balance       int64      `json:"balance"`
	LastClaimAt   *time.Time `json:"last_claim_at,omitempty"`
	NextClaimInMs int64      `json:"next_claim_in_ms"`
}

type AccountPublic struct {
	PublicID    string  `json:"public_id" db:"public_id"`
	DisplayName string  `json:"display_name" db:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty" db:"avatar_url"`
}

func (a *Account) Public() AccountPublic {
	return AccountPublic{
		PublicID:    a.PublicID,
		DisplayName: a.DisplayName,
		AvatarURL:   a.AvatarURL,
	}
}
