package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

func (r *Repository) GetBackpack(ctx context.Context, accountID uuid.UUID) ([]model.BackpackItem, error) {
	var items []model.BackpackItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM backpack_items
		WHERE account_id = $1
		ORDER BY created_at DESC`, accountID)
	return items, err
}

// depositBackpackItem adds quantity to an owned item, creating the row if the
// account does not own the product yet.
func depositBackpackItem(ctx context.Context, tx *sqlx.Tx, accountID, productID uuid.UUID, quantity int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO backpack_items (account_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, product_id) DO UPDATE SET
			quantity = backpack_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()`,
		accountID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to deposit backpack item: %w", err)
	}
	return nil
}

// withdrawBackpackItem removes quantity from an owned item. The row is locked
// for the check and deleted when it hits zero, so quantity never goes
// negative and empty rows never linger.
func withdrawBackpackItem(ctx context.Context, tx *sqlx.Tx, accountID, productID uuid.UUID, quantity int64) error {
	var owned int64
	err := tx.GetContext(ctx, &owned, `
		SELECT quantity FROM backpack_items
		WHERE account_id = $1 AND product_id = $2 FOR UPDATE`,
		accountID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotOwned
		}
		return fmt.Errorf("failed to get backpack item: %w", err)
	}

	if owned < quantity {
		return ErrItemNotOwned
	}

	if owned == quantity {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM backpack_items
			WHERE account_id = $1 AND product_id = $2`,
			accountID, productID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE backpack_items SET quantity = quantity - $3, updated_at = NOW()
			WHERE account_id = $1 AND product_id = $2`,
			accountID, productID, quantity)
	}
	if err != nil {
		return fmt.Errorf("failed to withdraw backpack item: %w", err)
	}
	return nil
}
