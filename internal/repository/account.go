package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetAccountByPublicID(ctx context.Context, publicID string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE public_id = $1", publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpsertAccount creates the account on first login and refreshes profile
// fields on subsequent ones. Balance and claim state are never touched here.
func (r *Repository) UpsertAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name, avatar_url, public_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING id, public_id, balance, last_claim_at, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		account.ID,
		account.Email,
		account.DisplayName,
		account.AvatarURL,
		account.PublicID,
	).Scan(&account.ID, &account.PublicID, &account.Balance, &account.LastClaimAt, &account.CreatedAt, &account.UpdatedAt)
}

func (r *Repository) ListAccounts(ctx context.Context, limit, offset int, search string) ([]model.Account, error) {
	var accounts []model.Account
	if search != "" {
		err := r.db.SelectContext(ctx, &accounts, `
			SELECT * FROM accounts
			WHERE email ILIKE '%' || $3 || '%' OR display_name ILIKE '%' || $3 || '%'
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset, search)
		return accounts, err
	}
	err := r.db.SelectContext(ctx, &accounts, `
		SELECT * FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return accounts, err
}
