package service

import (
	"context"
	"crypto/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

type AccountService struct {
	repo Repository
}

func NewAccountService(repo Repository) *AccountService {
	return &AccountService{repo: repo}
}

// Login creates the account on first sign-in and refreshes profile fields on
// later ones. The id comes from the session subject so every later request
// resolves to the same row; the public id is generated once and never changes.
func (s *AccountService) Login(ctx context.Context, accountID uuid.UUID, email, displayName string, avatarURL *string) (*model.Account, error) {
	account := &model.Account{
		ID:          accountID,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		PublicID:    generatePublicID(),
	}
	if err := s.repo.UpsertAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// Lookup resolves a public id to the owner's public profile, for addressing
// gifts.
func (s *AccountService) Lookup(ctx context.Context, publicID string) (*model.AccountPublic, error) {
	account, err := s.repo.GetAccountByPublicID(ctx, strings.TrimSpace(publicID))
	if err != nil {
		return nil, err
	}
	public := account.Public()
	return &public, nil
}

func (s *AccountService) ListNotifications(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.ListNotifications(ctx, accountID, clampLimit(limit), offset)
}

func (s *AccountService) MarkNotificationRead(ctx context.Context, accountID, notificationID uuid.UUID) error {
	return s.repo.MarkNotificationRead(ctx, accountID, notificationID)
}

const publicIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generatePublicID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = publicIDAlphabet[int(b)%len(publicIDAlphabet)]
	}
	return string(buf)
}
