package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeGift   NotificationType = "gift"
	NotificationTypeOrder  NotificationType = "order"
	NotificationTypeSystem NotificationType = "system"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	AccountID   uuid.UUID        `json:"account_id" db:"account_id"`
	Type        NotificationType `json:"type" db:"type"`
	Message     string           `json:"message" db:"message"`
	ReferenceID *uuid.UUID       `json:"reference_id,omitempty" db:"reference_id"`
	ReadAt      *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
