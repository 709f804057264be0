package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

type GiftService struct {
	repo Repository
	eco  config.EconomyConfig
	hub  Broadcaster
	log  *zap.Logger
}

func NewGiftService(repo Repository, eco config.EconomyConfig, log *zap.Logger) *GiftService {
	return &GiftService{repo: repo, eco: eco, log: log}
}

func (s *GiftService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

// Send moves coins or a backpack item from the sender into a pending transfer
// addressed by the recipient's public id.
func (s *GiftService) Send(ctx context.Context, senderID uuid.UUID, recipientPublicID string, itemType model.GiftItemType, productID *uuid.UUID, quantity int64) (*model.GiftTransfer, error) {
	if quantity <= 0 {
		return nil, ErrInvalidAmount
	}

	recipient, err := s.repo.GetAccountByPublicID(ctx, recipientPublicID)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, ErrSelfGift
	}

	sender, err := s.repo.GetAccount(ctx, senderID)
	if err != nil {
		return nil, err
	}

	var message string
	switch itemType {
	case model.GiftItemTypeCoins:
		message = fmt.Sprintf("%s sent you %d CRCRCoin", sender.DisplayName, quantity)
	case model.GiftItemTypeProduct:
		if productID == nil {
			return nil, repository.ErrProductNotFound
		}
		product, err := s.repo.GetProduct(ctx, *productID)
		if err != nil {
			return nil, err
		}
		if !product.Giftable {
			return nil, ErrNotGiftable
		}
		message = fmt.Sprintf("%s sent you a gift: %s", sender.DisplayName, product.Name)
	default:
		return nil, ErrInvalidAmount
	}

	gift := &model.GiftTransfer{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		ItemType:    itemType,
		ProductID:   productID,
		Quantity:    quantity,
	}
	if err := s.repo.CreateGift(ctx, gift, message); err != nil {
		return nil, err
	}

	s.log.Info("gift sent",
		zap.String("gift_id", gift.ID.String()),
		zap.String("sender_id", senderID.String()),
		zap.String("recipient_id", recipient.ID.String()))

	s.broadcastWallet(ctx, senderID)
	if s.hub != nil {
		s.hub.BroadcastNotification(recipient.ID, message)
	}
	return gift, nil
}

// Accept resolves a pending transfer in the recipient's favor.
func (s *GiftService) Accept(ctx context.Context, giftID, recipientID uuid.UUID) (*model.GiftTransfer, error) {
	gift, err := s.repo.ResolveGift(ctx, giftID, recipientID, true)
	if err != nil {
		return nil, err
	}
	s.broadcastWallet(ctx, recipientID)
	return gift, nil
}

// Return restores the sender and marks the transfer returned.
func (s *GiftService) Return(ctx context.Context, giftID, recipientID uuid.UUID) (*model.GiftTransfer, error) {
	gift, err := s.repo.ResolveGift(ctx, giftID, recipientID, false)
	if err != nil {
		return nil, err
	}
	s.broadcastWallet(ctx, gift.SenderID)
	if s.hub != nil {
		s.hub.BroadcastNotification(gift.SenderID, "Your gift was returned")
	}
	return gift, nil
}

func (s *GiftService) ListGifts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.GiftTransfer, error) {
	return s.repo.ListGifts(ctx, accountID, clampLimit(limit), offset)
}

func (s *GiftService) GetBackpack(ctx context.Context, accountID uuid.UUID) ([]model.BackpackItem, error) {
	return s.repo.GetBackpack(ctx, accountID)
}

func (s *GiftService) broadcastWallet(ctx context.Context, accountID uuid.UUID) {
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
