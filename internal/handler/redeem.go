package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
)

type RedeemRequest struct {
	Code string `json:"code"`
}

// Redeem exchanges a code for its reward.
func (h *Handler) Redeem(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.redeemSvc.Redeem(c.Context(), accountID, req.Code)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(result)
}

// ValidateCode previews a code without consuming it.
func (h *Handler) ValidateCode(c *fiber.Ctx) error {
	preview, err := h.redeemSvc.Validate(c.Context(), c.Query("code"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(preview)
}
