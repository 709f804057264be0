package model

import (
	"time"

	"github.com/google/uuid"
)

// BackpackItem is an owned-but-unused catalog item. Quantity stays positive;
// the row is deleted when it reaches zero.
type BackpackItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	Metadata  *string   `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
