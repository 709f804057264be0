package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

// Setting keys that override economy defaults at runtime.
const (
	SettingDailyReward  = "daily_reward"
	SettingPremiumPrice = "premium_price"
)

type WalletService struct {
	repo Repository
	eco  config.EconomyConfig
	hub  Broadcaster
	log  *zap.Logger
}

func NewWalletService(repo Repository, eco config.EconomyConfig, log *zap.Logger) *WalletService {
	return &WalletService{repo: repo, eco: eco, log: log}
}

// SetBroadcaster wires the client sync hub (set after construction to avoid a
// circular dependency with the websocket layer).
func (s *WalletService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

// GetWallet returns the account's balance and claim state, including the
// remaining cooldown so the client can render a countdown.
func (s *WalletService) GetWallet(ctx context.Context, accountID uuid.UUID) (*model.Wallet, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.walletOf(account), nil
}

func (s *WalletService) walletOf(account *model.Account) *model.Wallet {
	return walletSnapshot(account, s.eco.ClaimInterval)
}

// GetHistory returns ledger entries, newest first.
func (s *WalletService) GetHistory(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.LedgerEntry, error) {
	return s.repo.GetLedgerEntries(ctx, accountID, clampLimit(limit), offset)
}

// ClaimDaily credits the daily reward or fails with a CooldownError carrying
// the precise remaining wait. The reward amount can be overridden at runtime
// through the settings table.
func (s *WalletService) ClaimDaily(ctx context.Context, accountID uuid.UUID) (*model.ClaimResult, error) {
	reward := s.eco.DailyReward
	if override, err := s.repo.GetSettingInt64(ctx, SettingDailyReward); err == nil && override > 0 {
		reward = override
	}

	result, err := s.repo.ClaimDaily(ctx, accountID, reward, s.eco.ClaimInterval)
	if err != nil {
		return nil, err
	}

	s.broadcastWallet(ctx, accountID)
	return result, nil
}

// Credit adds coins with an earn entry. Used by admin grants.
func (s *WalletService) Credit(ctx context.Context, accountID uuid.UUID, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.repo.UpdateBalance(ctx, accountID, amount, model.LedgerEntryTypeEarn, reason, nil)
	if err != nil {
		return 0, err
	}
	s.broadcastWallet(ctx, accountID)
	return balance, nil
}

// Debit removes coins with a spend entry, failing on overdraft.
func (s *WalletService) Debit(ctx context.Context, accountID uuid.UUID, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.repo.UpdateBalance(ctx, accountID, -amount, model.LedgerEntryTypeSpend, reason, nil)
	if err != nil {
		return 0, err
	}
	s.broadcastWallet(ctx, accountID)
	return balance, nil
}

func (s *WalletService) broadcastWallet(ctx context.Context, accountID uuid.UUID) {
	if s.hub == nil {
		return
	}
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			s.log.Warn("failed to load wallet for broadcast", zap.Error(err))
		}
		return
	}
	s.hub.BroadcastWallet(accountID, s.walletOf(account))
}

func nextClaimIn(lastClaimAt *time.Time, interval time.Duration, now time.Time) time.Duration {
	if lastClaimAt == nil {
		return 0
	}
	remaining := interval - now.Sub(*lastClaimAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func walletSnapshot(account *model.Account, interval time.Duration) *model.Wallet {
	return &model.Wallet{
		Balance:       account.Balance,
		LastClaimAt:   account.LastClaimAt,
		NextClaimInMs: nextClaimIn(account.LastClaimAt, interval, time.Now().UTC()).Milliseconds(),
	}
}
