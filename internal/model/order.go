package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusAccepted OrderStatus = "accepted"
	OrderStatusRejected OrderStatus = "rejected"
)

// Order is a purchase held for manual review. The price is fully debited at
// purchase time; rejection credits it back.
type Order struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	AccountID        uuid.UUID   `json:"account_id" db:"account_id"`
	ProductID        uuid.UUID   `json:"product_id" db:"product_id"`
	Price            int64       `json:"price" db:"price"`
	DiscordID        *string     `json:"discord_id,omitempty" db:"discord_id"`
	PromotionContent *string     `json:"promotion_content,omitempty" db:"promotion_content"`
	Status           OrderStatus `json:"status" db:"status"`
	DecidedBy        *uuid.UUID  `json:"decided_by,omitempty" db:"decided_by"`
	DecidedAt        *time.Time  `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}

// PurchaseResult is returned by a purchase: either a pending order awaiting
// review, or an immediately fulfilled backpack item.
type PurchaseResult struct {
	Order      *Order        `json:"order,omitempty"`
	Item       *BackpackItem `json:"item,omitempty"`
	NewBalance int64         `json:"new_balance"`
}
