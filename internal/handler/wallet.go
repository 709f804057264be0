package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
)

// GetWallet returns the caller's balance and daily claim state.
func (h *Handler) GetWallet(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	wallet, err := h.walletSvc.GetWallet(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(wallet)
}

// GetHistory returns the caller's ledger, newest first.
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	entries, err := h.walletSvc.GetHistory(c.Context(), accountID, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"entries": entries,
	})
}

// ClaimDaily credits the daily reward, or 409s with the remaining cooldown.
func (h *Handler) ClaimDaily(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	result, err := h.walletSvc.ClaimDaily(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(result)
}
