package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// Purchase debits the full price and either queues a pending order (products
// requiring review) or fulfills straight into the backpack. One transaction:
// a failed insert never leaves the debit behind.
func (r *Repository) Purchase(ctx context.Context, accountID uuid.UUID, product *model.Product, discordID, promotionContent *string) (*model.PurchaseResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &model.PurchaseResult{}

	if product.RequiresReview {
		order := &model.Order{
			ID:               uuid.New(),
			AccountID:        accountID,
			ProductID:        product.ID,
			Price:            product.Price,
			DiscordID:        discordID,
			PromotionContent: promotionContent,
			Status:           model.OrderStatusPending,
		}

		after, err := applyBalance(ctx, tx, accountID, -product.Price, model.LedgerEntryTypePurchase, "Purchase: "+product.Name, &order.ID)
		if err != nil {
			return nil, err
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO orders (id, account_id, product_id, price, discord_id, promotion_content, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at`,
			order.ID, order.AccountID, order.ProductID, order.Price, order.DiscordID, order.PromotionContent, order.Status,
		).Scan(&order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}

		result.Order = order
		result.NewBalance = after
	} else {
		after, err := applyBalance(ctx, tx, accountID, -product.Price, model.LedgerEntryTypePurchase, "Purchase: "+product.Name, &product.ID)
		if err != nil {
			return nil, err
		}
		if err := depositBackpackItem(ctx, tx, accountID, product.ID, 1); err != nil {
			return nil, err
		}

		result.Item = &model.BackpackItem{AccountID: accountID, ProductID: product.ID, Quantity: 1}
		result.NewBalance = after
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// DecideOrder accepts or rejects a pending order. The order row lock keeps a
// second reviewer from deciding the same order; a rejection credits the
// refund in the same transaction as the status change.
func (r *Repository) DecideOrder(ctx context.Context, orderID, reviewerID uuid.UUID, accept bool) (*model.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order model.Order
	err = tx.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderDecided
	}

	now := time.Now().UTC()
	status := model.OrderStatusAccepted
	message := "Your order was approved"
	if !accept {
		status = model.OrderStatusRejected
		message = "Your order was rejected and refunded"
		if _, err := applyBalance(ctx, tx, order.AccountID, order.Price, model.LedgerEntryTypeRefund, "Order refund", &order.ID); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, decided_by = $2, decided_at = $3
		WHERE id = $4`,
		status, reviewerID, now, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	order.Status = status
	order.DecidedBy = &reviewerID
	order.DecidedAt = &now

	if err := insertNotification(ctx, tx, order.AccountID, model.NotificationTypeOrder, message, &order.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error) {
	var orders []model.Order
	if status != nil {
		err := r.db.SelectContext(ctx, &orders, `
			SELECT * FROM orders
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`, *status, limit, offset)
		return orders, err
	}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return orders, err
}

func (r *Repository) ListAccountOrders(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	return orders, err
}
