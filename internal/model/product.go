package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductKind string

const (
	ProductKindAuto      ProductKind = "auto"      // fulfilled into backpack immediately
	ProductKindRoleGrant ProductKind = "role_grant" // Discord role, granted by an operator
	ProductKindPromotion ProductKind = "promotion"  // promotional content, reviewed by an operator
)

type Product struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	Description    *string     `json:"description,omitempty" db:"description"`
	Price          int64       `json:"price" db:"price"`
	Kind           ProductKind `json:"kind" db:"kind"`
	RequiresReview bool        `json:"requires_review" db:"requires_review"`
	Giftable       bool        `json:"giftable" db:"giftable"`
	IsActive       bool        `json:"is_active" db:"is_active"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}
