package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

type AdminService struct {
	repo      Repository
	walletSvc *WalletService
	log       *zap.Logger
}

func NewAdminService(repo Repository, log *zap.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// SetWalletService wires the wallet service (set after construction to avoid
// a circular dependency).
func (s *AdminService) SetWalletService(walletSvc *WalletService) {
	s.walletSvc = walletSvc
}

func (s *AdminService) IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error) {
	return s.repo.IsAdmin(ctx, accountID)
}

// GrantCoins credits (positive amount) or revokes (negative amount) coins on
// the account identified by email.
func (s *AdminService) GrantCoins(ctx context.Context, adminID uuid.UUID, email string, amount int64, reason string) (*model.Account, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if reason == "" {
		reason = "Admin adjustment"
	}

	account, err := s.repo.GetAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		account.Balance, err = s.walletSvc.Credit(ctx, account.ID, amount, reason)
	} else {
		account.Balance, err = s.walletSvc.Debit(ctx, account.ID, -amount, reason)
	}
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]any{"email": account.Email, "amount": amount, "reason": reason})
	if err := s.repo.LogAdminAction(ctx, adminID, model.AdminActionGrantCoins, &account.ID, details); err != nil {
		s.log.Warn("failed to log admin action", zap.Error(err))
	}

	s.log.Info("admin coin grant",
		zap.String("admin_id", adminID.String()),
		zap.String("target", account.Email),
		zap.Int64("amount", amount))
	return account, nil
}

// CreateRedeemCode creates a code, generating a random one when none is
// supplied.
func (s *AdminService) CreateRedeemCode(ctx context.Context, adminID uuid.UUID, rc *model.RedeemCode) error {
	switch rc.RewardType {
	case model.RedeemRewardTypeCoins:
		if rc.Coins <= 0 {
			return ErrInvalidAmount
		}
	case model.RedeemRewardTypeProduct:
		if rc.ProductID == nil || rc.Quantity <= 0 {
			return ErrInvalidAmount
		}
	default:
		return ErrInvalidAmount
	}

	if rc.Code == "" {
		rc.Code = generateRedeemCode("CRCR")
	}
	rc.IsActive = true

	if err := s.repo.CreateRedeemCode(ctx, rc); err != nil {
		return err
	}

	details, _ := json.Marshal(map[string]any{"code": rc.Code, "reward_type": rc.RewardType})
	if err := s.repo.LogAdminAction(ctx, adminID, model.AdminActionCreateCode, nil, details); err != nil {
		s.log.Warn("failed to log admin action", zap.Error(err))
	}
	return nil
}

// CreateBulkRedeemCodes generates count single-use codes from a template.
func (s *AdminService) CreateBulkRedeemCodes(ctx context.Context, adminID uuid.UUID, count int, template model.RedeemCode, prefix string) ([]string, error) {
	if count <= 0 || count > 1000 {
		return nil, ErrInvalidAmount
	}
	if prefix == "" {
		prefix = "CRCR"
	}

	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		rc := template
		rc.Code = generateRedeemCode(prefix)
		one := 1
		rc.MaxRedemptions = &one
		rc.AllowRepeatPerUser = false
		if err := s.CreateRedeemCode(ctx, adminID, &rc); err != nil {
			return codes, err
		}
		codes = append(codes, rc.Code)
	}
	return codes, nil
}

func (s *AdminService) ListRedeemCodes(ctx context.Context, limit, offset int) ([]model.RedeemCode, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRedeemCodes(ctx, limit, offset)
}

func (s *AdminService) DeactivateRedeemCode(ctx context.Context, adminID uuid.UUID, code string) error {
	if err := s.repo.DeactivateRedeemCode(ctx, code); err != nil {
		return err
	}
	details, _ := json.Marshal(map[string]any{"code": code})
	if err := s.repo.LogAdminAction(ctx, adminID, model.AdminActionDeactivateCode, nil, details); err != nil {
		s.log.Warn("failed to log admin action", zap.Error(err))
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, adminID uuid.UUID, product *model.Product) error {
	if product.Price <= 0 {
		return ErrInvalidAmount
	}
	switch product.Kind {
	case model.ProductKindAuto, model.ProductKindRoleGrant, model.ProductKindPromotion:
	default:
		return ErrInvalidAmount
	}
	product.RequiresReview = product.Kind != model.ProductKindAuto

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return err
	}

	details, _ := json.Marshal(map[string]any{"name": product.Name, "price": product.Price})
	if err := s.repo.LogAdminAction(ctx, adminID, model.AdminActionCreateProduct, nil, details); err != nil {
		s.log.Warn("failed to log admin action", zap.Error(err))
	}
	return nil
}

func (s *AdminService) ListAccounts(ctx context.Context, limit, offset int, search string) ([]model.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListAccounts(ctx, limit, offset, search)
}

func (s *AdminService) GetStats(ctx context.Context) (*model.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *AdminService) GetSettings(ctx context.Context) (map[string]string, error) {
	return s.repo.GetAllSettings(ctx)
}

func (s *AdminService) SetSetting(ctx context.Context, adminID uuid.UUID, key, value string) error {
	switch key {
	case SettingDailyReward, SettingPremiumPrice:
	default:
		return repository.ErrSettingNotFound
	}
	if err := s.repo.SetSetting(ctx, key, value); err != nil {
		return err
	}
	details, _ := json.Marshal(map[string]any{"key": key, "value": value})
	if err := s.repo.LogAdminAction(ctx, adminID, model.AdminActionSetSetting, nil, details); err != nil {
		s.log.Warn("failed to log admin action", zap.Error(err))
	}
	return nil
}

func (s *AdminService) ListLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListAdminLogs(ctx, limit, offset)
}

const redeemCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateRedeemCode(prefix string) string {
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = redeemCodeAlphabet[int(b)%len(redeemCodeAlphabet)]
	}
	return prefix + "-" + string(buf)
}
