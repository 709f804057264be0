package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskFrequency string

const (
	TaskFrequencyDaily TaskFrequency = "daily"
	TaskFrequencyOnce  TaskFrequency = "once"
)

type Task struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Frequency TaskFrequency `json:"frequency" db:"frequency"`
	XPReward  int64         `json:"xp_reward" db:"xp_reward"`
	IsActive  bool          `json:"is_active" db:"is_active"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

type TaskCompletion struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	TaskID          uuid.UUID  `json:"task_id" db:"task_id"`
	AccountID       uuid.UUID  `json:"account_id" db:"account_id"`
	CompletedAt     time.Time  `json:"completed_at" db:"completed_at"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty" db:"next_available_at"` // daily tasks only
}

// TaskState is a task joined with the caller's completion window.
type TaskState struct {
	Task
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty" db:"next_available_at"`
}

// Available reports whether the task can be completed at now.
func (t *TaskState) Available(now time.Time) bool {
	if t.CompletedAt == nil {
		return true
	}
	if t.Frequency == TaskFrequencyOnce {
		return false
	}
	return t.NextAvailableAt != nil && !now.Before(*t.NextAvailableAt)
}
