package model

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntryType string

const (
	LedgerEntryTypeEarn        LedgerEntryType = "earn"
	LedgerEntryTypeSpend       LedgerEntryType = "spend"
	LedgerEntryTypeClaim       LedgerEntryType = "claim"
	LedgerEntryTypeGiftSend    LedgerEntryType = "gift_send"
	LedgerEntryTypeGiftReceive LedgerEntryType = "gift_receive"
	LedgerEntryTypePurchase    LedgerEntryType = "purchase"
	LedgerEntryTypeRefund      LedgerEntryType = "refund"
)

type LedgerEntry struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	AccountID     uuid.UUID       `json:"account_id" db:"account_id"`
	Amount        int64           `json:"amount" db:"amount"` // positive = credit, negative = debit
	Type          LedgerEntryType `json:"type" db:"type"`
	Reason        *string         `json:"reason,omitempty" db:"reason"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty" db:"reference_id"`
	BalanceBefore int64           `json:"balance_before" db:"balance_before"`
	BalanceAfter  int64           `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ClaimResult is returned by a successful daily claim.
type ClaimResult struct {
	Amount      int64     `json:"amount"`
	Balance     int64     `json:"balance"`
	LastClaimAt time.Time `json:"last_claim_at"`
}
