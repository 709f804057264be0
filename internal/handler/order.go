package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/repository"
)

// ListProducts returns the active catalog.
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	products, err := h.orderSvc.ListProducts(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"products": products,
	})
}

type PurchaseRequest struct {
	ProductID        string  `json:"product_id"`
	DiscordID        *string `json:"discord_id,omitempty"`
	PromotionContent *string `json:"promotion_content,omitempty"`
}

// Purchase debits the product price. Reviewed products come back as a pending
// order, everything else as a backpack item.
func (h *Handler) Purchase(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}

	result, err := h.orderSvc.Purchase(c.Context(), accountID, productID, req.DiscordID, req.PromotionContent)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			balance, _ := h.walletSvc.GetWallet(c.Context(), accountID)
			resp := fiber.Map{"error": err.Error()}
			if balance != nil {
				resp["balance"] = balance.Balance
			}
			if product, perr := h.orderSvc.GetProduct(c.Context(), productID); perr == nil {
				resp["required"] = product.Price
			}
			return c.Status(fiber.StatusPaymentRequired).JSON(resp)
		}
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListMyOrders returns the caller's reviewed purchases.
func (h *Handler) ListMyOrders(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orderSvc.ListMine(c.Context(), accountID, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

// GetOrder returns one of the caller's orders.
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid order id",
		})
	}

	order, err := h.orderSvc.Get(c.Context(), accountID, orderID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(order)
}
