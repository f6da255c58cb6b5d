package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/pkg/entity"
)

const habitColumns = `id, user_id, title, difficulty, is_completed, created_at, completed_at`

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(cfg DBConfig) *HabitsRepository {
	return &HabitsRepository{
		conn: NewPool(cfg),
	}
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	var id uuid.UUID
	createdAt := habit.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	row := hr.conn.QueryRow(ctx, `INSERT INTO habits (user_id, title, difficulty, created_at) VALUES ($1, $2, $3, $4) RETURNING id;`,
		habit.UserID,
		habit.Title,
		habit.Difficulty,
		createdAt,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	row := hr.conn.QueryRow(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = $1;`, id)
	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	rows, err := hr.conn.Query(ctx, `SELECT `+habitColumns+` FROM habits WHERE user_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3;`,
		uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	return collectHabits(rows)
}

func (hr *HabitsRepository) GetAllByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	rows, err := hr.conn.Query(ctx, `SELECT `+habitColumns+` FROM habits WHERE user_id = $1 ORDER BY created_at, id;`, uid)
	if err != nil {
		return nil, errors.New("getting all habits by uid error: " + err.Error())
	}
	return collectHabits(rows)
}

func (hr *HabitsRepository) SetCompletion(ctx context.Context, id uuid.UUID, isCompleted bool, completedAt *time.Time) error {
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET is_completed = $1, completed_at = $2 WHERE id = $3;`,
		isCompleted, completedAt, id,
	)
	if err != nil {
		return errors.New("error updating habit completion: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func scanHabit(row pgx.Row) (*entity.Habit, error) {
	var h entity.Habit
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Difficulty, &h.IsCompleted, &h.CreatedAt, &h.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func collectHabits(rows pgx.Rows) ([]*entity.Habit, error) {
	defer rows.Close()
	habits := make([]*entity.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return habits, nil
}
