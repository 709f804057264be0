package repository

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrGiftNotFound         = errors.New("gift not found")
	ErrGiftForbidden        = errors.New("gift does not belong to caller")
	ErrGiftResolved         = errors.New("gift already resolved")
	ErrItemNotOwned         = errors.New("item not owned")
	ErrProductNotFound      = errors.New("product not found")
	ErrCodeNotFound         = errors.New("redeem code not found")
	ErrCodeInactive         = errors.New("redeem code is inactive")
	ErrCodeExpired          = errors.New("redeem code has expired")
	ErrCodeExhausted        = errors.New("redeem code usage limit reached")
	ErrCodeAlreadyRedeemed  = errors.New("redeem code already used by this account")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderDecided         = errors.New("order already decided")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskCompleted        = errors.New("task already completed")
	ErrRewardNotFound       = errors.New("pass reward not found")
	ErrRewardLocked         = errors.New("reward requires a premium pass")
	ErrRewardAlreadyClaimed = errors.New("pass reward already claimed")
	ErrLevelNotReached      = errors.New("pass level not reached")
	ErrAlreadyPremium       = errors.New("premium pass already owned")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSettingNotFound      = errors.New("setting not found")
)

// CooldownError carries the precise remaining wait so clients can render a
// countdown.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining)
}

func (e *CooldownError) RemainingMs() int64 {
	return e.Remaining.Milliseconds()
}
