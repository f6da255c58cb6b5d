package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/repository"
	"github.com/limbo/dopamine/pkg/entity"
)

type HabitsService struct {
	repo repository.HabitsRepositoryI
	settings
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, opts ...Option) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo:     habitsRepo,
		settings: collect(opts),
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = entity.DefaultDifficulty
	}
	return hs.create(ctx, &entity.Habit{
		UserID:     uid,
		Title:      req.Title,
		Difficulty: difficulty,
		CreatedAt:  hs.now(),
	})
}

func (hs *HabitsService) create(ctx context.Context, h *entity.Habit) (*entity.Habit, error) {
	id, err := hs.repo.Create(ctx, h)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	hs.reminders.ScheduleTaskReminder(habit)
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	if _, err := hs.GetHabit(ctx, habitID, userID); err != nil {
		return err
	}
	err := hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	hs.reminders.CancelTaskReminder(habitID)
	return nil
}

func (hs *HabitsService) ToggleHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	completed := habit.Toggle(hs.now())
	err = hs.repo.SetCompletion(ctx, habit.ID, habit.IsCompleted, habit.CompletedAt)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if completed {
		hs.reminders.CancelTaskReminder(habit.ID)
	}
	return habit, nil
}

func (hs *HabitsService) DuplicateHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	return hs.create(ctx, habit.Duplicate(hs.now()))
}
