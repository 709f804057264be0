package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// Repository is the persistence surface the services run on. Implemented by
// *repository.Repository; tests substitute an in-memory fake.
type Repository interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByPublicID(ctx context.Context, publicID string) (*model.Account, error)
	UpsertAccount(ctx context.Context, account *model.Account) error
	ListAccounts(ctx context.Context, limit, offset int, search string) ([]model.Account, error)

	GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error)
	UpdateBalance(ctx context.Context, accountID uuid.UUID, amount int64, entryType model.LedgerEntryType, reason string, referenceID *uuid.UUID) (int64, error)
	GetLedgerEntries(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.LedgerEntry, error)
	ClaimDaily(ctx context.Context, accountID uuid.UUID, reward int64, interval time.Duration) (*model.ClaimResult, error)

	CreateGift(ctx context.Context, gift *model.GiftTransfer, message string) error
	ResolveGift(ctx context.Context, giftID, recipientID uuid.UUID, accept bool) (*model.GiftTransfer, error)
	GetGift(ctx context.Context, id uuid.UUID) (*model.GiftTransfer, error)
	ListGifts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.GiftTransfer, error)
	GetBackpack(ctx context.Context, accountID uuid.UUID) ([]model.BackpackItem, error)

	GetPassState(ctx context.Context, accountID uuid.UUID, season int) (*model.PassState, error)
	ListPassRewards(ctx context.Context, season int) ([]model.PassReward, error)
	GetPassReward(ctx context.Context, id uuid.UUID) (*model.PassReward, error)
	ListPassRewardClaims(ctx context.Context, accountID uuid.UUID, season int) ([]model.PassRewardClaim, error)
	PurchasePremium(ctx context.Context, accountID uuid.UUID, season int, price int64) (int64, error)
	ClaimPassReward(ctx context.Context, accountID uuid.UUID, reward *model.PassReward, tier model.PassTier, xpPerLevel int64, maxLevel int) (*int64, error)

	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTaskStates(ctx context.Context, accountID uuid.UUID) ([]model.TaskState, error)
	CompleteTask(ctx context.Context, accountID uuid.UUID, season int, task *model.Task, window time.Duration) (*model.PassState, error)

	GetRedeemCodeByCode(ctx context.Context, code string) (*model.RedeemCode, error)
	RedeemCode(ctx context.Context, accountID uuid.UUID, code string) (*model.RedeemResult, error)
	CreateRedeemCode(ctx context.Context, rc *model.RedeemCode) error
	ListRedeemCodes(ctx context.Context, limit, offset int) ([]model.RedeemCode, error)
	DeactivateRedeemCode(ctx context.Context, code string) error

	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, onlyActive bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error

	Purchase(ctx context.Context, accountID uuid.UUID, product *model.Product, discordID, promotionContent *string) (*model.PurchaseResult, error)
	DecideOrder(ctx context.Context, orderID, reviewerID uuid.UUID, accept bool) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error)
	ListAccountOrders(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Order, error)

	ListNotifications(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, accountID, notificationID uuid.UUID) error

	IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, details []byte) error
	ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error)
	GetStats(ctx context.Context) (*model.Stats, error)

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetSettingInt64(ctx context.Context, key string) (int64, error)
	GetAllSettings(ctx context.Context) (map[string]string, error)
}

// Broadcaster pushes authoritative state to every open session of an account
// after a successful mutation (implemented by ws.Hub).
type Broadcaster interface {
	BroadcastWallet(accountID uuid.UUID, wallet *model.Wallet)
	BroadcastNotification(accountID uuid.UUID, message string)
}

// Input validation errors, rejected before any mutation.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrSelfGift          = errors.New("cannot send a gift to yourself")
	ErrNotGiftable       = errors.New("product cannot be gifted")
	ErrProductInactive   = errors.New("product is not available")
	ErrDiscordIDRequired = errors.New("discord id is required for this product")
	ErrPromotionLength   = errors.New("promotion content length out of bounds")
	ErrInvalidTier       = errors.New("invalid pass tier")
	ErrCodeRequired      = errors.New("code is required")
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
