package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/service"
)

// AdminHandler serves the operator panel.
type AdminHandler struct {
	adminSvc *service.AdminService
	orderSvc *service.OrderService
}

func NewAdminHandler(adminSvc *service.AdminService, orderSvc *service.OrderService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, orderSvc: orderSvc}
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.GetStats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(stats)
}

func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	search := c.Query("search")

	accounts, err := h.adminSvc.ListAccounts(c.Context(), limit, offset, search)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"accounts": accounts,
	})
}

type GrantCoinsRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"` // negative revokes
	Reason string `json:"reason"`
}

// GrantCoins credits or revokes coins on the account identified by email.
func (h *AdminHandler) GrantCoins(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req GrantCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	account, err := h.adminSvc.GrantCoins(c.Context(), adminID, req.Email, req.Amount, req.Reason)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(account)
}

// ListOrders returns the review queue, optionally filtered by status.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		status = &s
	}

	orders, err := h.orderSvc.ListForReview(c.Context(), status, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

type DecideOrderRequest struct {
	Accept bool `json:"accept"`
}

// DecideOrder accepts or rejects a pending order; rejection refunds.
func (h *AdminHandler) DecideOrder(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid order id",
		})
	}

	var req DecideOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	order, err := h.orderSvc.Decide(c.Context(), adminID, orderID, req.Accept)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(order)
}

type CreateRedeemCodeRequest struct {
	Code               string     `json:"code"` // optional, generated when empty
	RewardType         string     `json:"reward_type"`
	Coins              int64      `json:"coins"`
	ProductID          *string    `json:"product_id,omitempty"`
	Quantity           int64      `json:"quantity"`
	MaxRedemptions     *int       `json:"max_redemptions,omitempty"`
	AllowRepeatPerUser bool       `json:"allow_repeat_per_user"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
}

func (r *CreateRedeemCodeRequest) toModel() (*model.RedeemCode, error) {
	rc := &model.RedeemCode{
		Code:               r.Code,
		RewardType:         model.RedeemRewardType(r.RewardType),
		Coins:              r.Coins,
		Quantity:           r.Quantity,
		MaxRedemptions:     r.MaxRedemptions,
		AllowRepeatPerUser: r.AllowRepeatPerUser,
		ExpiresAt:          r.ExpiresAt,
	}
	if r.ProductID != nil {
		id, err := uuid.Parse(*r.ProductID)
		if err != nil {
			return nil, err
		}
		rc.ProductID = &id
	}
	return rc, nil
}

func (h *AdminHandler) CreateRedeemCode(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req CreateRedeemCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	rc, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}

	if err := h.adminSvc.CreateRedeemCode(c.Context(), adminID, rc); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rc)
}

type BulkRedeemCodesRequest struct {
	CreateRedeemCodeRequest
	Count  int    `json:"count"`
	Prefix string `json:"prefix"`
}

// CreateBulkRedeemCodes generates a batch of single-use codes.
func (h *AdminHandler) CreateBulkRedeemCodes(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req BulkRedeemCodesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	template, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}

	codes, err := h.adminSvc.CreateBulkRedeemCodes(c.Context(), adminID, req.Count, *template, req.Prefix)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"codes": codes,
	})
}

func (h *AdminHandler) ListRedeemCodes(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	codes, err := h.adminSvc.ListRedeemCodes(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"codes": codes,
	})
}

type DeactivateCodeRequest struct {
	Code string `json:"code"`
}

func (h *AdminHandler) DeactivateRedeemCode(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req DeactivateCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.adminSvc.DeactivateRedeemCode(c.Context(), adminID, req.Code); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Kind        string  `json:"kind"`
	Giftable    bool    `json:"giftable"`
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Kind:        model.ProductKind(req.Kind),
		Giftable:    req.Giftable,
		IsActive:    true,
	}

	if err := h.adminSvc.CreateProduct(c.Context(), adminID, product); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.adminSvc.GetSettings(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(settings)
}

type SetSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *AdminHandler) SetSetting(c *fiber.Ctx) error {
	adminID := middleware.GetAdminID(c)

	var req SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.adminSvc.SetSetting(c.Context(), adminID, req.Key, req.Value); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *AdminHandler) GetLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	logs, err := h.adminSvc.ListLogs(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"logs": logs,
	})
}
