package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

// Notifier alerts the reviewer side-channel about the order queue
// (implemented by telegram.Bot).
type Notifier interface {
	SendOrderPending(order *model.Order, email string) error
	SendOrderDecided(order *model.Order) error
}

type OrderService struct {
	repo     Repository
	eco      config.EconomyConfig
	hub      Broadcaster
	notifier Notifier
	log      *zap.Logger
}

func NewOrderService(repo Repository, eco config.EconomyConfig, log *zap.Logger) *OrderService {
	return &OrderService{repo: repo, eco: eco, log: log}
}

func (s *OrderService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

func (s *OrderService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Purchase debits the full price up front. Products requiring review are
// queued for an operator; everything else lands in the backpack immediately.
func (s *OrderService) Purchase(ctx context.Context, accountID, productID uuid.UUID, discordID, promotionContent *string) (*model.PurchaseResult, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	switch product.Kind {
	case model.ProductKindRoleGrant:
		if discordID == nil || *discordID == "" {
			return nil, ErrDiscordIDRequired
		}
	case model.ProductKindPromotion:
		if promotionContent == nil ||
			len(*promotionContent) < s.eco.PromotionMinLen ||
			len(*promotionContent) > s.eco.PromotionMaxLen {
			return nil, ErrPromotionLength
		}
	}

	result, err := s.repo.Purchase(ctx, accountID, product, discordID, promotionContent)
	if err != nil {
		return nil, err
	}

	s.broadcastWallet(ctx, accountID)

	if result.Order != nil {
		s.log.Info("order queued for review",
			zap.String("order_id", result.Order.ID.String()),
			zap.String("product", product.Name))
		if s.notifier != nil {
			account, err := s.repo.GetAccount(ctx, accountID)
			email := ""
			if err == nil {
				email = account.Email
			}
			if err := s.notifier.SendOrderPending(result.Order, email); err != nil {
				s.log.Warn("failed to notify reviewers", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *OrderService) ListMine(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Order, error) {
	return s.repo.ListAccountOrders(ctx, accountID, clampLimit(limit), offset)
}

// Get returns an order only to its owner.
func (s *OrderService) Get(ctx context.Context, accountID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListForReview(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error) {
	return s.repo.ListOrders(ctx, status, clampLimit(limit), offset)
}

// Decide accepts or rejects a pending order. Rejection refunds the price in
// the same transaction as the status flip.
func (s *OrderService) Decide(ctx context.Context, reviewerID, orderID uuid.UUID, accept bool) (*model.Order, error) {
	order, err := s.repo.DecideOrder(ctx, orderID, reviewerID, accept)
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]any{"order_id": order.ID, "accepted": accept})
	if err := s.repo.LogAdminAction(ctx, reviewerID, model.AdminActionDecideOrder, &order.AccountID, details); err != nil {
		s.log.Warn("failed to log order decision", zap.Error(err))
	}

	s.log.Info("order decided",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))

	s.broadcastWallet(ctx, order.AccountID)
	if s.hub != nil {
		message := "Your order was approved"
		if !accept {
			message = "Your order was rejected and refunded"
		}
		s.hub.BroadcastNotification(order.AccountID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.SendOrderDecided(order); err != nil {
			s.log.Warn("failed to notify reviewers", zap.Error(err))
		}
	}
	return order, nil
}

func (s *OrderService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, true)
}

func (s *OrderService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

func (s *OrderService) broadcastWallet(ctx context.Context, accountID uuid.UUID) {
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
