package model

import (
	"time"

	"github.com/google/uuid"
)

type GiftItemType string

const (
	GiftItemTypeCoins   GiftItemType = "coins"
	GiftItemTypeProduct GiftItemType = "product"
)

type GiftStatus string

const (
	GiftStatusPending  GiftStatus = "pending"
	GiftStatusAccepted GiftStatus = "accepted"
	GiftStatusReturned GiftStatus = "returned"
)

type GiftTransfer struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	SenderID    uuid.UUID    `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID    `json:"recipient_id" db:"recipient_id"`
	ItemType    GiftItemType `json:"item_type" db:"item_type"`
	ProductID   *uuid.UUID   `json:"product_id,omitempty" db:"product_id"`
	Quantity    int64        `json:"quantity" db:"quantity"` // coin amount or item count
	Status      GiftStatus   `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty" db:"resolved_at"`
}

func (g *GiftTransfer) IsResolved() bool {
	return g.Status != GiftStatusPending
}
