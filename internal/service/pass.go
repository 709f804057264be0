package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

type PassService struct {
	repo Repository
	eco  config.EconomyConfig
	hub  Broadcaster
	log  *zap.Logger
}

func NewPassService(repo Repository, eco config.EconomyConfig, log *zap.Logger) *PassService {
	return &PassService{repo: repo, eco: eco, log: log}
}

func (s *PassService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

// PassOverview is the full client view of the current season.
type PassOverview struct {
	State   *model.PassState        `json:"state"`
	Level   int                     `json:"level"`
	Rewards []model.PassReward      `json:"rewards"`
	Claimed []model.PassRewardClaim `json:"claimed"`
}

func (s *PassService) GetOverview(ctx context.Context, accountID uuid.UUID) (*PassOverview, error) {
	state, err := s.repo.GetPassState(ctx, accountID, s.eco.Season)
	if err != nil {
		return nil, err
	}
	rewards, err := s.repo.ListPassRewards(ctx, s.eco.Season)
	if err != nil {
		return nil, err
	}
	claimed, err := s.repo.ListPassRewardClaims(ctx, accountID, s.eco.Season)
	if err != nil {
		return nil, err
	}
	return &PassOverview{
		State:   state,
		Level:   state.Level(s.eco.XPPerLevel, s.eco.MaxLevel),
		Rewards: rewards,
		Claimed: claimed,
	}, nil
}

// PurchasePremium debits the premium price once per season.
func (s *PassService) PurchasePremium(ctx context.Context, accountID uuid.UUID) (int64, error) {
	price := s.eco.PremiumPrice
	if override, err := s.repo.GetSettingInt64(ctx, SettingPremiumPrice); err == nil && override > 0 {
		price = override
	}

	balance, err := s.repo.PurchasePremium(ctx, accountID, s.eco.Season, price)
	if err != nil {
		return 0, err
	}

	s.log.Info("premium pass purchased", zap.String("account_id", accountID.String()))
	s.broadcastWallet(ctx, accountID)
	return balance, nil
}

// ClaimReward grants a leveled reward once. The premium tier is gated on the
// premium flag; both gates are re-checked inside the repository transaction.
func (s *PassService) ClaimReward(ctx context.Context, accountID, rewardID uuid.UUID, tier model.PassTier) (*model.PassReward, *int64, error) {
	if tier != model.PassTierFree && tier != model.PassTierPremium {
		return nil, nil, ErrInvalidTier
	}

	reward, err := s.repo.GetPassReward(ctx, rewardID)
	if err != nil {
		return nil, nil, err
	}
	if reward.Season != s.eco.Season || reward.Tier != tier {
		return nil, nil, repository.ErrRewardNotFound
	}

	newBalance, err := s.repo.ClaimPassReward(ctx, accountID, reward, tier, s.eco.XPPerLevel, s.eco.MaxLevel)
	if err != nil {
		return nil, nil, err
	}

	if newBalance != nil {
		s.broadcastWallet(ctx, accountID)
	}
	return reward, newBalance, nil
}

// ListTasks returns the active tasks with the caller's completion windows.
func (s *PassService) ListTasks(ctx context.Context, accountID uuid.UUID) ([]model.TaskState, error) {
	return s.repo.ListTaskStates(ctx, accountID)
}

// CompleteTask feeds the task's XP into the season pass. Daily tasks reopen
// after the same rolling window the daily claim uses.
func (s *PassService) CompleteTask(ctx context.Context, accountID, taskID uuid.UUID) (*model.PassState, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.repo.CompleteTask(ctx, accountID, s.eco.Season, task, s.eco.ClaimInterval)
}

func (s *PassService) broadcastWallet(ctx context.Context, accountID uuid.UUID) {
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
