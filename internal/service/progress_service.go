package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/repository"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/limbo/dopamine/pkg/progression"
)

type Dashboard struct {
	DisplayName string `json:"display_name"`
	Quote       string `json:"quote"`
	progression.Snapshot
}

// ProgressService loads a fresh habit snapshot on every call and hands it to
// the progression engine. Nothing is cached between requests.
type ProgressService struct {
	users  repository.UsersRepositoryI
	habits repository.HabitsRepositoryI
	engine *progression.Engine
	settings
}

func NewProgressService(usersRepo repository.UsersRepositoryI, habitsRepo repository.HabitsRepositoryI, engine *progression.Engine, opts ...Option) *ProgressService {
	if usersRepo == nil || habitsRepo == nil {
		log.Fatal("on progress service provided nil repos")
	}
	if engine == nil {
		engine = progression.NewEngine(time.Local, progression.DefaultThresholds())
	}
	return &ProgressService{
		users:    usersRepo,
		habits:   habitsRepo,
		engine:   engine,
		settings: collect(opts),
	}
}

func (ps *ProgressService) Dashboard(ctx context.Context, uid uuid.UUID) (*Dashboard, error) {
	user, err := ps.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	habits, err := ps.snapshot(ctx, uid)
	if err != nil {
		return nil, err
	}
	now := ps.now()
	return &Dashboard{
		DisplayName: user.DisplayName,
		Quote:       DailyQuote(now, ps.engine.Calendar.Location()),
		Snapshot:    ps.engine.Snapshot(habits, user.DailyTarget, now),
	}, nil
}

func (ps *ProgressService) Weekly(ctx context.Context, uid uuid.UUID, reference time.Time) ([]progression.DayPoints, error) {
	habits, err := ps.snapshot(ctx, uid)
	if err != nil {
		return nil, err
	}
	return ps.engine.Weekly(habits, reference), nil
}

func (ps *ProgressService) DayDetails(ctx context.Context, uid uuid.UUID, day time.Time) (*progression.DayDetails, error) {
	habits, err := ps.snapshot(ctx, uid)
	if err != nil {
		return nil, err
	}
	details := ps.engine.DayDetails(day, habits)
	return &details, nil
}

func (ps *ProgressService) ParseDay(key string) (time.Time, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return ps.engine.Calendar.StartOfDay(ps.now()), nil
	}
	day, err := ps.engine.Calendar.ParseDay(key)
	if err != nil {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	return day, nil
}

func (ps *ProgressService) snapshot(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits, err := ps.habits.GetAllByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}
