package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
)

// Login upserts the account from the verified session claims. Called by the
// frontend right after the OAuth redirect lands.
func (h *Handler) Login(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	var avatarURL *string
	if session.AvatarURL != "" {
		avatarURL = &session.AvatarURL
	}

	account, err := h.accountSvc.Login(c.Context(), middleware.GetAccountID(c), session.Email, session.DisplayName, avatarURL)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(account)
}

// GetMe returns the caller's own account.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	account, err := h.accountSvc.GetAccount(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(account)
}

// Lookup resolves a public id to a public profile, for addressing gifts.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	publicID := c.Params("public_id")

	profile, err := h.accountSvc.Lookup(c.Context(), publicID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(profile)
}

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	notifications, err := h.accountSvc.ListNotifications(c.Context(), accountID, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
	})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	notificationID, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid notification id",
		})
	}

	if err := h.accountSvc.MarkNotificationRead(c.Context(), accountID, notificationID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
