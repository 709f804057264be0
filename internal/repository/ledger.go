package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

// applyBalance is the single place a cached balance changes. It locks the
// account row, rejects overdrafts, updates the cache and appends the ledger
// entry inside the caller's transaction. Returns the new balance.
func applyBalance(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, amount int64, entryType model.LedgerEntryType, reason string, referenceID *uuid.UUID) (int64, error) {
	var before int64
	err := tx.GetContext(ctx, &before, "SELECT balance FROM accounts WHERE id = $1 FOR UPDATE", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	after := before + amount
	if after < 0 {
		return before, ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, "UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2", after, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	var desc *string
	if reason != "" {
		desc = &reason
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (account_id, amount, type, reason, reference_id, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		accountID, amount, entryType, desc, referenceID, before, after)
	if err != nil {
		return 0, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return after, nil
}

// UpdateBalance applies a single balance change in its own transaction.
// Positive amounts credit, negative amounts debit.
func (r *Repository) UpdateBalance(ctx context.Context, accountID uuid.UUID, amount int64, entryType model.LedgerEntryType, reason string, referenceID *uuid.UUID) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	after, err := applyBalance(ctx, tx, accountID, amount, entryType, reason, referenceID)
	if err != nil {
		return after, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return after, nil
}

// GetBalance returns the cached balance of an account.
func (r *Repository) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, "SELECT balance FROM accounts WHERE id = $1", accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	return balance, err
}

// GetLedgerEntries returns an account's ledger history, newest first.
func (r *Repository) GetLedgerEntries(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	return entries, err
}

// ClaimDaily credits the daily reward if the cooldown has elapsed. The account
// row stays locked from the cooldown check through the credit, so concurrent
// claims serialize and exactly one succeeds per interval.
func (r *Repository) ClaimDaily(ctx context.Context, accountID uuid.UUID, reward int64, interval time.Duration) (*model.ClaimResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lastClaimAt *time.Time
	err = tx.GetContext(ctx, &lastClaimAt, "SELECT last_claim_at FROM accounts WHERE id = $1 FOR UPDATE", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get claim state: %w", err)
	}

	now := time.Now().UTC()
	if lastClaimAt != nil {
		if elapsed := now.Sub(*lastClaimAt); elapsed < interval {
			return nil, &CooldownError{Remaining: interval - elapsed}
		}
	}

	after, err := applyBalance(ctx, tx, accountID, reward, model.LedgerEntryTypeClaim, "Daily reward", nil)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, "UPDATE accounts SET last_claim_at = $1 WHERE id = $2", now, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp claim time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.ClaimResult{Amount: reward, Balance: after, LastClaimAt: now}, nil
}
