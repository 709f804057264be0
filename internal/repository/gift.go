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

// CreateGift moves the gifted value out of the sender and records the pending
// transfer plus the recipient's notification in one transaction.
func (r *Repository) CreateGift(ctx context.Context, gift *model.GiftTransfer, message string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if gift.ID == uuid.Nil {
		gift.ID = uuid.New()
	}

	switch gift.ItemType {
	case model.GiftItemTypeCoins:
		reason := "Gift sent"
		if _, err := applyBalance(ctx, tx, gift.SenderID, -gift.Quantity, model.LedgerEntryTypeGiftSend, reason, &gift.ID); err != nil {
			return err
		}
	case model.GiftItemTypeProduct:
		if err := withdrawBackpackItem(ctx, tx, gift.SenderID, *gift.ProductID, gift.Quantity); err != nil {
			return err
		}
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO gifts (id, sender_id, recipient_id, item_type, product_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		gift.ID, gift.SenderID, gift.RecipientID, gift.ItemType, gift.ProductID, gift.Quantity, model.GiftStatusPending,
	).Scan(&gift.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gift: %w", err)
	}
	gift.Status = model.GiftStatusPending

	if err := insertNotification(ctx, tx, gift.RecipientID, model.NotificationTypeGift, message, &gift.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// ResolveGift accepts or returns a pending transfer. The gift row is locked
// first so a concurrent accept and return cannot both pass the status check.
// Accepting credits the recipient; returning restores the sender and, for
// product gifts, also deposits the reciprocal item into the returner's
// backpack.
func (r *Repository) ResolveGift(ctx context.Context, giftID, recipientID uuid.UUID, accept bool) (*model.GiftTransfer, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var gift model.GiftTransfer
	err = tx.GetContext(ctx, &gift, "SELECT * FROM gifts WHERE id = $1 FOR UPDATE", giftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}

	if gift.RecipientID != recipientID {
		return nil, ErrGiftForbidden
	}
	if gift.IsResolved() {
		return nil, ErrGiftResolved
	}

	if accept {
		switch gift.ItemType {
		case model.GiftItemTypeCoins:
			if _, err := applyBalance(ctx, tx, gift.RecipientID, gift.Quantity, model.LedgerEntryTypeGiftReceive, "Gift accepted", &gift.ID); err != nil {
				return nil, err
			}
		case model.GiftItemTypeProduct:
			if err := depositBackpackItem(ctx, tx, gift.RecipientID, *gift.ProductID, gift.Quantity); err != nil {
				return nil, err
			}
		}
		gift.Status = model.GiftStatusAccepted
	} else {
		switch gift.ItemType {
		case model.GiftItemTypeCoins:
			if _, err := applyBalance(ctx, tx, gift.SenderID, gift.Quantity, model.LedgerEntryTypeRefund, "Gift returned", &gift.ID); err != nil {
				return nil, err
			}
		case model.GiftItemTypeProduct:
			if err := depositBackpackItem(ctx, tx, gift.SenderID, *gift.ProductID, gift.Quantity); err != nil {
				return nil, err
			}
			// Returning a product gift leaves the returner with the same
			// item, keeping returns symmetric with accepts.
			if err := depositBackpackItem(ctx, tx, gift.RecipientID, *gift.ProductID, gift.Quantity); err != nil {
				return nil, err
			}
		}
		gift.Status = model.GiftStatusReturned
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE gifts SET status = $1, resolved_at = $2 WHERE id = $3`,
		gift.Status, now, gift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update gift: %w", err)
	}
	gift.ResolvedAt = &now

	if err := deleteNotificationsByReference(ctx, tx, gift.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &gift, nil
}

func (r *Repository) GetGift(ctx context.Context, id uuid.UUID) (*model.GiftTransfer, error) {
	var gift model.GiftTransfer
	err := r.db.GetContext(ctx, &gift, "SELECT * FROM gifts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return &gift, nil
}

// ListGifts returns transfers the account sent or received, newest first.
func (r *Repository) ListGifts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.GiftTransfer, error) {
	var gifts []model.GiftTransfer
	err := r.db.SelectContext(ctx, &gifts, `
		SELECT * FROM gifts
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	return gifts, err
}
