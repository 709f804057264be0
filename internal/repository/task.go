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

func (r *Repository) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.GetContext(ctx, &task, "SELECT * FROM tasks WHERE id = $1 AND is_active", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListTaskStates returns the active tasks joined with the caller's most
// recent completion window.
func (r *Repository) ListTaskStates(ctx context.Context, accountID uuid.UUID) ([]model.TaskState, error) {
	var states []model.TaskState
	err := r.db.SelectContext(ctx, &states, `
		SELECT t.*, c.completed_at, c.next_available_at
		FROM tasks t
		LEFT JOIN LATERAL (
			SELECT completed_at, next_available_at
			FROM task_completions
			WHERE task_id = t.id AND account_id = $1
			ORDER BY completed_at DESC
			LIMIT 1
		) c ON TRUE
		WHERE t.is_active
		ORDER BY t.created_at`, accountID)
	return states, err
}

// CompleteTask records the completion and feeds the XP reward into the season
// pass. The pass row lock serializes an account's completions, so a daily
// task cannot be completed twice inside its window.
func (r *Repository) CompleteTask(ctx context.Context, accountID uuid.UUID, season int, task *model.Task, window time.Duration) (*model.PassState, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	state, err := ensurePassState(ctx, tx, accountID, season)
	if err != nil {
		return nil, err
	}

	var last model.TaskCompletion
	err = tx.GetContext(ctx, &last, `
		SELECT * FROM task_completions
		WHERE task_id = $1 AND account_id = $2
		ORDER BY completed_at DESC
		LIMIT 1`, task.ID, accountID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last completion: %w", err)
	}

	now := time.Now().UTC()
	if err == nil {
		if task.Frequency == model.TaskFrequencyOnce {
			return nil, ErrTaskCompleted
		}
		if last.NextAvailableAt != nil && now.Before(*last.NextAvailableAt) {
			return nil, &CooldownError{Remaining: last.NextAvailableAt.Sub(now)}
		}
	}

	var nextAvailableAt *time.Time
	if task.Frequency == model.TaskFrequencyDaily {
		next := now.Add(window)
		nextAvailableAt = &next
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_completions (task_id, account_id, completed_at, next_available_at)
		VALUES ($1, $2, $3, $4)`,
		task.ID, accountID, now, nextAvailableAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	err = tx.GetContext(ctx, state, `
		UPDATE pass_states SET xp = xp + $3, updated_at = NOW()
		WHERE account_id = $1 AND season = $2
		RETURNING *`,
		accountID, season, task.XPReward)
	if err != nil {
		return nil, fmt.Errorf("failed to grant xp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return state, nil
}
