package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/service"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/ws"
)

type Handler struct {
	cfg        *config.Config
	accountSvc *service.AccountService
	walletSvc  *service.WalletService
	giftSvc    *service.GiftService
	passSvc    *service.PassService
	redeemSvc  *service.RedeemService
	orderSvc   *service.OrderService
	hub        *ws.Hub
}

func New(
	cfg *config.Config,
	accountSvc *service.AccountService,
	walletSvc *service.WalletService,
	giftSvc *service.GiftService,
	passSvc *service.PassService,
	redeemSvc *service.RedeemService,
	orderSvc *service.OrderService,
	hub *ws.Hub,
) *Handler {
	return &Handler{
		cfg:        cfg,
		accountSvc: accountSvc,
		walletSvc:  walletSvc,
		giftSvc:    giftSvc,
		passSvc:    passSvc,
		redeemSvc:  redeemSvc,
		orderSvc:   orderSvc,
		hub:        hub,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// errorResponse maps domain errors onto HTTP statuses. Every handler funnels
// service errors through here so the client sees a consistent taxonomy.
func errorResponse(c *fiber.Ctx, err error) error {
	var cooldown *repository.CooldownError
	if errors.As(err, &cooldown) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":        "on cooldown",
			"remaining_ms": cooldown.RemainingMs(),
		})
	}

	switch {
	case errors.Is(err, repository.ErrInsufficientFunds):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, repository.ErrGiftForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrGiftNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCodeNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrRewardNotFound),
		errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, repository.ErrSettingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, repository.ErrGiftResolved),
		errors.Is(err, repository.ErrOrderDecided),
		errors.Is(err, repository.ErrCodeExhausted),
		errors.Is(err, repository.ErrCodeAlreadyRedeemed),
		errors.Is(err, repository.ErrTaskCompleted),
		errors.Is(err, repository.ErrRewardAlreadyClaimed),
		errors.Is(err, repository.ErrRewardLocked),
		errors.Is(err, repository.ErrLevelNotReached),
		errors.Is(err, repository.ErrAlreadyPremium),
		errors.Is(err, repository.ErrItemNotOwned):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, repository.ErrCodeInactive),
		errors.Is(err, repository.ErrCodeExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrSelfGift),
		errors.Is(err, service.ErrNotGiftable),
		errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrDiscordIDRequired),
		errors.Is(err, service.ErrPromotionLength),
		errors.Is(err, service.ErrInvalidTier),
		errors.Is(err, service.ErrCodeRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
