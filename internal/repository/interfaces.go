package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/dopamine/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database. Name and PasswordHash are necessary, DailyTarget falls back to default when zero
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
	// Deletes every habit of the user, clears display name and sets daily target, all in one transaction
	ResetProgress(ctx context.Context, uid uuid.UUID, dailyTarget int) error
}

type HabitsRepositoryI interface {
	// Creates new habit in database. In habit only UserID, Title, Difficulty are necessary
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Lists every habit owned by user, used as a snapshot for progress calculations
	GetAllByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Stores completion flag and timestamp of habit
	SetCompletion(ctx context.Context, id uuid.UUID, isCompleted bool, completedAt *time.Time) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
