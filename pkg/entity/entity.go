package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDifficulty  = 1
	DefaultDailyTarget = 500
)

type User struct {
	ID           uuid.UUID
	Name         string
	DisplayName  string
	PasswordHash string
	DailyTarget  int
}

type Habit struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"uid"`
	Title       string     `json:"title"`
	Difficulty  int        `json:"difficulty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// SetCompleted switches completion state keeping CompletedAt present only
// while the habit is completed. Returns false if the state didn't change.
func (h *Habit) SetCompleted(done bool, now time.Time) bool {
	if h.IsCompleted == done {
		return false
	}
	h.IsCompleted = done
	if done {
		at := now
		h.CompletedAt = &at
	} else {
		h.CompletedAt = nil
	}
	return true
}

// Toggle flips completion state and reports the new one.
func (h *Habit) Toggle(now time.Time) bool {
	h.SetCompleted(!h.IsCompleted, now)
	return h.IsCompleted
}

// Duplicate makes a fresh incomplete copy. ID is left zero for the store to assign.
func (h *Habit) Duplicate(now time.Time) *Habit {
	return &Habit{
		UserID:     h.UserID,
		Title:      h.Title,
		Difficulty: h.Difficulty,
		CreatedAt:  now,
	}
}
