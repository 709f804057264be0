package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

type SendGiftRequest struct {
	RecipientPublicID string  `json:"recipient_public_id"`
	ItemType          string  `json:"item_type"` // coins or product
	ProductID         *string `json:"product_id,omitempty"`
	Quantity          int64   `json:"quantity"`
}

// SendGift creates a pending transfer addressed by the recipient's public id.
func (h *Handler) SendGift(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	var req SendGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	itemType := model.GiftItemType(req.ItemType)
	if itemType != model.GiftItemTypeCoins && itemType != model.GiftItemTypeProduct {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "item_type must be 'coins' or 'product'",
		})
	}

	var productID *uuid.UUID
	if req.ProductID != nil {
		id, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid product id",
			})
		}
		productID = &id
	}

	gift, err := h.giftSvc.Send(c.Context(), accountID, req.RecipientPublicID, itemType, productID, req.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(gift)
}

// AcceptGift resolves a pending transfer in the caller's favor.
func (h *Handler) AcceptGift(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	giftID, err := uuid.Parse(c.Params("gift_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid gift id",
		})
	}

	gift, err := h.giftSvc.Accept(c.Context(), giftID, accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gift)
}

// ReturnGift sends a pending transfer back to its sender.
func (h *Handler) ReturnGift(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	giftID, err := uuid.Parse(c.Params("gift_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid gift id",
		})
	}

	gift, err := h.giftSvc.Return(c.Context(), giftID, accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gift)
}

// ListGifts returns transfers the caller sent or received, newest first.
func (h *Handler) ListGifts(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	gifts, err := h.giftSvc.ListGifts(c.Context(), accountID, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"gifts": gifts,
	})
}

// GetBackpack returns the caller's owned product items.
func (h *Handler) GetBackpack(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	items, err := h.giftSvc.GetBackpack(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}
