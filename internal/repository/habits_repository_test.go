package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/repository"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userID       = uuid.New()
	habitColumns = []string{"id", "user_id", "title", "difficulty", "is_completed", "created_at", "completed_at"}
)

func habitRow(rows *pgxmock.Rows, h *entity.Habit) *pgxmock.Rows {
	return rows.AddRow(h.ID, h.UserID, h.Title, h.Difficulty, h.IsCompleted, h.CreatedAt, h.CompletedAt)
}

func TestCreateHabit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitsRepoWithConn(mock)
	createdAt := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	habit := entity.Habit{
		UserID:     userID,
		Title:      "drink water",
		Difficulty: 2,
		CreatedAt:  createdAt,
	}
	hid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO habits (user_id, title, difficulty, created_at) VALUES ($1, $2, $3, $4) RETURNING id;`)
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Difficulty, createdAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(hid))
		id, err := repo.Create(ctx, &habit)
		assert.NoError(t, err)
		assert.Equal(t, hid, id)
	})
	t.Run("zero creation time", func(t *testing.T) {
		fresh := habit
		fresh.CreatedAt = time.Time{}
		mock.ExpectQuery(query).
			WithArgs(fresh.UserID, fresh.Title, fresh.Difficulty, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(hid))
		_, err := repo.Create(ctx, &fresh)
		assert.NoError(t, err)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Difficulty, createdAt).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &habit)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Difficulty, createdAt).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &habit)
		assert.Error(t, err)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHabitByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitsRepoWithConn(mock)
	completedAt := time.Now()
	habit := entity.Habit{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "read 20 pages",
		Difficulty:  1,
		IsCompleted: true,
		CreatedAt:   completedAt.Add(-time.Hour),
		CompletedAt: &completedAt,
	}
	query := regexp.QuoteMeta(`SELECT id, user_id, title, difficulty, is_completed, created_at, completed_at FROM habits WHERE id = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.ID).
			WillReturnRows(habitRow(pgxmock.NewRows(habitColumns), &habit))
		result, err := repo.GetByID(ctx, habit.ID)
		assert.NoError(t, err)
		assert.Equal(t, habit, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, habit.ID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habit.ID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByID(ctx, habit.ID)
		assert.Error(t, err)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHabits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitsRepoWithConn(mock)
	completedAt := time.Now()
	habits := []*entity.Habit{
		{
			ID:         uuid.New(),
			UserID:     userID,
			Title:      "stretch",
			Difficulty: 1,
			CreatedAt:  completedAt.Add(-2 * time.Hour),
		},
		{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       "run 5k",
			Difficulty:  3,
			IsCompleted: true,
			CreatedAt:   completedAt.Add(-time.Hour),
			CompletedAt: &completedAt,
		},
	}
	paged := regexp.QuoteMeta(`SELECT id, user_id, title, difficulty, is_completed, created_at, completed_at FROM habits WHERE user_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3;`)
	all := regexp.QuoteMeta(`SELECT id, user_id, title, difficulty, is_completed, created_at, completed_at FROM habits WHERE user_id = $1 ORDER BY created_at, id;`)
	ctx := context.Background()
	rows := func() *pgxmock.Rows {
		r := pgxmock.NewRows(habitColumns)
		for _, h := range habits {
			habitRow(r, h)
		}
		return r
	}
	t.Run("paged", func(t *testing.T) {
		mock.ExpectQuery(paged).WithArgs(userID, 10, 0).WillReturnRows(rows())
		result, err := repo.GetByUserID(ctx, userID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, habits, result)
	})
	t.Run("all", func(t *testing.T) {
		mock.ExpectQuery(all).WithArgs(userID).WillReturnRows(rows())
		result, err := repo.GetAllByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, habits, result)
	})
	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(all).WithArgs(userID).WillReturnRows(pgxmock.NewRows(habitColumns))
		result, err := repo.GetAllByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NotNil(t, result)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(paged).WithArgs(userID, 10, 0).WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, userID, 10, 0)
		assert.Error(t, err)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCompletion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitsRepoWithConn(mock)
	ctx := context.Background()
	hid := uuid.New()
	now := time.Now()
	query := regexp.QuoteMeta(`UPDATE habits SET is_completed = $1, completed_at = $2 WHERE id = $3;`)
	t.Run("complete", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(true, &now, hid).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.SetCompletion(ctx, hid, true, &now))
	})
	t.Run("uncomplete", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(false, (*time.Time)(nil), hid).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.SetCompletion(ctx, hid, false, nil))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(true, &now, hid).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.SetCompletion(ctx, hid, true, &now), errorvalues.ErrHabitNotFound)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHabit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitsRepoWithConn(mock)
	ctx := context.Background()
	hid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM habits WHERE id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(hid).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, hid))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(hid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, hid), errorvalues.ErrHabitNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(hid).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Delete(ctx, hid))
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
