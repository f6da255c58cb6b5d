package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/pkg/entity"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateHabitNotFoundError
	stateUserNotFoundError
	stateWrongOwner
	stateUserExistsError
)

// Variables for tests
var (
	userID   = uuid.New()
	fixedNow = time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
)

func clock() time.Time {
	return fixedNow
}

// habitRepoMock keeps habits in memory unless state forces an error.
type habitRepoMock struct {
	state  mockState
	habits map[uuid.UUID]*entity.Habit
	order  []uuid.UUID
}

func newHabitRepoMock(habits ...*entity.Habit) *habitRepoMock {
	m := &habitRepoMock{habits: make(map[uuid.UUID]*entity.Habit)}
	for _, h := range habits {
		m.put(h)
	}
	return m
}

func (hrmock *habitRepoMock) put(h *entity.Habit) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if _, ok := hrmock.habits[h.ID]; !ok {
		hrmock.order = append(hrmock.order, h.ID)
	}
	cp := *h
	hrmock.habits[h.ID] = &cp
}

func (hrmock *habitRepoMock) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	switch hrmock.state {
	case stateUserNotFoundError:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	}
	h := *habit
	h.ID = uuid.New()
	hrmock.put(&h)
	return h.ID, nil
}

func (hrmock *habitRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return nil, errorvalues.ErrHabitNotFound
	case stateDBError:
		return nil, errors.New("db error")
	}
	h, ok := hrmock.habits[id]
	if !ok {
		return nil, errorvalues.ErrHabitNotFound
	}
	cp := *h
	if hrmock.state == stateWrongOwner {
		cp.UserID = uuid.New()
	}
	return &cp, nil
}

func (hrmock *habitRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	all, err := hrmock.GetAllByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []*entity.Habit{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (hrmock *habitRepoMock) GetAllByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	if hrmock.state == stateDBError {
		return nil, errors.New("db error")
	}
	result := make([]*entity.Habit, 0)
	for _, id := range hrmock.order {
		h, ok := hrmock.habits[id]
		if ok && h.UserID == uid {
			cp := *h
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (hrmock *habitRepoMock) SetCompletion(ctx context.Context, id uuid.UUID, isCompleted bool, completedAt *time.Time) error {
	switch hrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateHabitNotFoundError:
		return errorvalues.ErrHabitNotFound
	}
	h, ok := hrmock.habits[id]
	if !ok {
		return errorvalues.ErrHabitNotFound
	}
	h.IsCompleted = isCompleted
	h.CompletedAt = completedAt
	return nil
}

func (hrmock *habitRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch hrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateHabitNotFoundError:
		return errorvalues.ErrHabitNotFound
	}
	if _, ok := hrmock.habits[id]; !ok {
		return errorvalues.ErrHabitNotFound
	}
	delete(hrmock.habits, id)
	return nil
}

type userRepoMock struct {
	state     mockState
	user      entity.User
	resetWith int
}

func (urmock *userRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch urmock.state {
	case stateUserExistsError:
		return errorvalues.ErrUserExists
	case stateDBError:
		return errors.New("db error")
	}
	urmock.user = *user
	urmock.user.ID = userID
	return nil
}

func (urmock *userRepoMock) find() (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFoundError:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	}
	u := urmock.user
	return &u, nil
}

func (urmock *userRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	return urmock.find()
}

func (urmock *userRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	return urmock.find()
}

func (urmock *userRepoMock) Update(ctx context.Context, user *entity.User) error {
	if urmock.state == stateDBError {
		return errors.New("db error")
	}
	urmock.user = *user
	return nil
}

func (urmock *userRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	switch urmock.state {
	case stateUserNotFoundError:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	}
	return nil
}

func (urmock *userRepoMock) ResetProgress(ctx context.Context, uid uuid.UUID, dailyTarget int) error {
	switch urmock.state {
	case stateUserNotFoundError:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	}
	urmock.resetWith = dailyTarget
	urmock.user.DisplayName = ""
	urmock.user.DailyTarget = dailyTarget
	return nil
}

type reminderSpy struct {
	mu          sync.Mutex
	scheduled   []uuid.UUID
	cancelled   []uuid.UUID
	cancelUsers []uuid.UUID
}

func (r *reminderSpy) ScheduleTaskReminder(h *entity.Habit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, h.ID)
}

func (r *reminderSpy) CancelTaskReminder(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, id)
}

func (r *reminderSpy) CancelUserReminders(uid uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelUsers = append(r.cancelUsers, uid)
}
