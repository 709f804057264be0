package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// GetPass returns the season pass overview: XP, level, reward track and
// what the caller has already claimed.
func (h *Handler) GetPass(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	overview, err := h.passSvc.GetOverview(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(overview)
}

// PurchasePremium unlocks the premium reward track for the season.
func (h *Handler) PurchasePremium(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	balance, err := h.passSvc.PurchasePremium(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"new_balance": balance,
	})
}

type ClaimRewardRequest struct {
	RewardID string `json:"reward_id"`
	Tier     string `json:"tier"` // free or premium
}

// ClaimReward grants a reached reward once per tier.
func (h *Handler) ClaimReward(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	var req ClaimRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	rewardID, err := uuid.Parse(req.RewardID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reward id",
		})
	}

	reward, newBalance, err := h.passSvc.ClaimReward(c.Context(), accountID, rewardID, model.PassTier(req.Tier))
	if err != nil {
		return errorResponse(c, err)
	}

	resp := fiber.Map{
		"reward": reward,
	}
	if newBalance != nil {
		resp["new_balance"] = *newBalance
	}
	return c.JSON(resp)
}

// ListTasks returns the active tasks with the caller's completion windows.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	tasks, err := h.passSvc.ListTasks(c.Context(), accountID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"tasks": tasks,
	})
}

// CompleteTask records a completion and feeds its XP into the season pass.
func (h *Handler) CompleteTask(c *fiber.Ctx) error {
	accountID := middleware.GetAccountID(c)

	taskID, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid task id",
		})
	}

	state, err := h.passSvc.CompleteTask(c.Context(), accountID, taskID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(state)
}
