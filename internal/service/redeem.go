package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

type RedeemService struct {
	repo Repository
	eco  config.EconomyConfig
	hub  Broadcaster
	log  *zap.Logger
}

func NewRedeemService(repo Repository, eco config.EconomyConfig, log *zap.Logger) *RedeemService {
	return &RedeemService{repo: repo, eco: eco, log: log}
}

func (s *RedeemService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

// Redeem exchanges a code for its reward. Matching is case-sensitive; only
// surrounding whitespace is stripped.
func (s *RedeemService) Redeem(ctx context.Context, accountID uuid.UUID, code string) (*model.RedeemResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeRequired
	}

	result, err := s.repo.RedeemCode(ctx, accountID, code)
	if err != nil {
		return nil, err
	}

	s.log.Info("code redeemed",
		zap.String("account_id", accountID.String()),
		zap.String("reward_type", string(result.RewardType)))

	if result.NewBalance != nil {
		s.broadcastWallet(ctx, accountID)
	}
	return result, nil
}

// RedeemPreview is what Validate discloses about a code before redemption.
type RedeemPreview struct {
	RewardType model.RedeemRewardType `json:"reward_type"`
	Coins      int64                  `json:"coins,omitempty"`
	ProductID  *uuid.UUID             `json:"product_id,omitempty"`
	Quantity   int64                  `json:"quantity,omitempty"`
}

// Validate checks a code without consuming it.
func (s *RedeemService) Validate(ctx context.Context, code string) (*RedeemPreview, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeRequired
	}

	rc, err := s.repo.GetRedeemCodeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !rc.IsActive {
		return nil, repository.ErrCodeInactive
	}
	if rc.Expired(time.Now().UTC()) {
		return nil, repository.ErrCodeExpired
	}
	if rc.Exhausted() {
		return nil, repository.ErrCodeExhausted
	}

	return &RedeemPreview{
		RewardType: rc.RewardType,
		Coins:      rc.Coins,
		ProductID:  rc.ProductID,
		Quantity:   rc.Quantity,
	}, nil
}

func (s *RedeemService) broadcastWallet(ctx context.Context, accountID uuid.UUID) {
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
	s.hub.BroadcastWallet(accountID, walletSnapshot(account, s.eco.ClaimInterval))
}
