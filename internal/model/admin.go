package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

type Admin struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	AccountID uuid.UUID  `json:"account_id" db:"account_id"`
	Role      AdminRole  `json:"role" db:"role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
}

type AdminLog struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	AdminID         uuid.UUID  `json:"admin_id" db:"admin_id"`
	Action          string     `json:"action" db:"action"`
	TargetAccountID *uuid.UUID `json:"target_account_id,omitempty" db:"target_account_id"`
	Details         []byte     `json:"details,omitempty" db:"details"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// Admin action constants
const (
	AdminActionGrantCoins     = "grant_coins"
	AdminActionDecideOrder    = "decide_order"
	AdminActionCreateCode     = "create_redeem_code"
	AdminActionDeactivateCode = "deactivate_redeem_code"
	AdminActionCreateProduct  = "create_product"
	AdminActionSetSetting     = "set_setting"
)

// Stats is the admin dashboard summary.
type Stats struct {
	Accounts      int64 `json:"accounts" db:"accounts"`
	CoinsInFlight int64 `json:"coins_in_flight" db:"coins_in_flight"` // sum of all balances
	PendingOrders int64 `json:"pending_orders" db:"pending_orders"`
	PendingGifts  int64 `json:"pending_gifts" db:"pending_gifts"`
	ClaimsToday   int64 `json:"claims_today" db:"claims_today"`
}
