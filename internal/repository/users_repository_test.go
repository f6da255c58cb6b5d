package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/repository"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{"id", "name", "display_name", "password_hash", "daily_target"}

func TestCreateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	user := entity.User{
		Name:         "test_user",
		PasswordHash: "test_password_hash",
	}
	query := regexp.QuoteMeta(`INSERT INTO users (name, display_name, password_hash, daily_target) VALUES ($1, $2, $3, $4);`)
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	t.Run("successfully created with default target", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, "", user.PasswordHash, entity.DefaultDailyTarget).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &user)
		assert.NoError(t, err)
	})
	t.Run("custom target", func(t *testing.T) {
		custom := user
		custom.DailyTarget = 800
		conn.ExpectExec(query).
			WithArgs(user.Name, "", user.PasswordHash, 800).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &custom)
		assert.NoError(t, err)
	})
	t.Run("unique violation error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, "", user.PasswordHash, entity.DefaultDailyTarget).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		err := repo.Create(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, "", user.PasswordHash, entity.DefaultDailyTarget).
			WillReturnError(errors.New("db error"))
		err := repo.Create(ctx, &user)
		assert.Error(t, err)
	})
	t.Run("nil user", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestFindUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := entity.User{
		ID:           uuid.New(),
		Name:         "test_user",
		DisplayName:  "Deniz",
		PasswordHash: "test_password_hash",
		DailyTarget:  500,
	}
	byName := regexp.QuoteMeta(`SELECT id, name, display_name, password_hash, daily_target FROM users WHERE name = $1;`)
	byID := regexp.QuoteMeta(`SELECT id, name, display_name, password_hash, daily_target FROM users WHERE id = $1;`)
	row := func() *pgxmock.Rows {
		return pgxmock.NewRows(userColumns).
			AddRow(user.ID, user.Name, user.DisplayName, user.PasswordHash, user.DailyTarget)
	}
	t.Run("by name", func(t *testing.T) {
		conn.ExpectQuery(byName).WithArgs(user.Name).WillReturnRows(row())
		result, err := repo.FindByName(ctx, user.Name)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("by name not found", func(t *testing.T) {
		conn.ExpectQuery(byName).WithArgs(user.Name).WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByName(ctx, user.Name)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("by id", func(t *testing.T) {
		conn.ExpectQuery(byID).WithArgs(user.ID).WillReturnRows(row())
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("by id db error", func(t *testing.T) {
		conn.ExpectQuery(byID).WithArgs(user.ID).WillReturnError(errors.New("db error"))
		_, err := repo.FindByID(ctx, user.ID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestUpdateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := entity.User{
		ID:           uuid.New(),
		Name:         "test_user",
		DisplayName:  "Deniz",
		PasswordHash: "hash",
		DailyTarget:  750,
	}
	query := regexp.QuoteMeta(`UPDATE users SET name = $1, display_name = $2, password_hash = $3, daily_target = $4 WHERE id = $5;`)
	t.Run("success", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, user.DisplayName, user.PasswordHash, user.DailyTarget, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.Update(ctx, &user))
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, user.DisplayName, user.PasswordHash, user.DailyTarget, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.Update(ctx, &user), errorvalues.ErrUserNotFound)
	})
	t.Run("name taken", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Name, user.DisplayName, user.PasswordHash, user.DailyTarget, user.ID).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		assert.ErrorIs(t, repo.Update(ctx, &user), errorvalues.ErrUserExists)
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	t.Run("success", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, uid))
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, uid), errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(uid).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Delete(ctx, uid))
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestResetProgress(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	deleteHabits := regexp.QuoteMeta(`DELETE FROM habits WHERE user_id = $1;`)
	resetUser := regexp.QuoteMeta(`UPDATE users SET display_name = '', daily_target = $1 WHERE id = $2;`)
	t.Run("success", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteHabits).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 4))
		conn.ExpectExec(resetUser).WithArgs(500, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		conn.ExpectCommit()
		assert.NoError(t, repo.ResetProgress(ctx, uid, 500))
	})
	t.Run("unknown user", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteHabits).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		conn.ExpectExec(resetUser).WithArgs(500, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		conn.ExpectRollback()
		assert.ErrorIs(t, repo.ResetProgress(ctx, uid, 500), errorvalues.ErrUserNotFound)
	})
	t.Run("delete fails", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteHabits).WithArgs(uid).WillReturnError(errors.New("db error"))
		conn.ExpectRollback()
		assert.Error(t, repo.ResetProgress(ctx, uid, 500))
	})
	t.Run("begin fails", func(t *testing.T) {
		conn.ExpectBegin().WillReturnError(errors.New("db error"))
		assert.Error(t, repo.ResetProgress(ctx, uid, 500))
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}
