//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/limbo/dopamine/pkg/progression"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Title string `validate:"required,max=100"`
	// Zero means entity.DefaultDifficulty
	Difficulty int `validate:"min=0,max=3"`
}

type DisplayNameRequest struct {
	DisplayName string `validate:"required,max=50"`
}

type DailyTargetRequest struct {
	DailyTarget int `validate:"min=100,max=2000,multiple_of=50"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
	// Onboarding: stores the name shown on dashboard
	SetDisplayName(ctx context.Context, id uuid.UUID, req *DisplayNameRequest) (*entity.User, error)
	SetDailyTarget(ctx context.Context, id uuid.UUID, req *DailyTargetRequest) (*entity.User, error)
	// Removes all habits, clears display name and restores default daily target
	ResetProgress(ctx context.Context, id uuid.UUID) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
	// Flips completion state, stamping or clearing completion time
	ToggleHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	// Creates a fresh incomplete copy with the same title and difficulty
	DuplicateHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
}

type ProgressServiceI interface {
	Dashboard(ctx context.Context, uid uuid.UUID) (*Dashboard, error)
	// Seven days ending on reference, oldest first
	Weekly(ctx context.Context, uid uuid.UUID, reference time.Time) ([]progression.DayPoints, error)
	DayDetails(ctx context.Context, uid uuid.UUID, day time.Time) (*progression.DayDetails, error)
	// Parses YYYY-MM-DD in the service time zone. Empty key means today
	ParseDay(key string) (time.Time, error)
}

// ReminderScheduler is notified about habit lifecycle to plan reminders.
type ReminderScheduler interface {
	ScheduleTaskReminder(habit *entity.Habit)
	CancelTaskReminder(habitID uuid.UUID)
	CancelUserReminders(userID uuid.UUID)
}
