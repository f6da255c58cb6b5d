package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	return &UsersRepository{
		conn: NewPool(cfg),
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	target := user.DailyTarget
	if target == 0 {
		target = entity.DefaultDailyTarget
	}
	_, err := ur.conn.Exec(ctx, `INSERT INTO users (name, display_name, password_hash, daily_target) VALUES ($1, $2, $3, $4);`,
		user.Name,
		user.DisplayName,
		user.PasswordHash,
		target,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrUserExists
			}
		}
		return errors.New("creating user db error: " + err.Error())
	}
	return nil
}

func (ur *UsersRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, name, display_name, password_hash, daily_target FROM users WHERE name = $1;`, name)
	if err := row.Scan(&user.ID, &user.Name, &user.DisplayName, &user.PasswordHash, &user.DailyTarget); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by name error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, name, display_name, password_hash, daily_target FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&user.ID, &user.Name, &user.DisplayName, &user.PasswordHash, &user.DailyTarget); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) Update(ctx context.Context, user *entity.User) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET name = $1, display_name = $2, password_hash = $3, daily_target = $4 WHERE id = $5;`,
		user.Name,
		user.DisplayName,
		user.PasswordHash,
		user.DailyTarget,
		user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errorvalues.ErrUserExists
		}
		return errors.New("updating user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	ct, err := ur.conn.Exec(ctx, `DELETE FROM users WHERE id = $1;`, uid)
	if err != nil {
		return errors.New("deleting user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) ResetProgress(ctx context.Context, uid uuid.UUID, dailyTarget int) error {
	tx, err := ur.conn.Begin(ctx)
	if err != nil {
		return errors.New("starting reset transaction error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `DELETE FROM habits WHERE user_id = $1;`, uid)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("deleting user habits error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `UPDATE users SET display_name = '', daily_target = $1 WHERE id = $2;`, dailyTarget, uid)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("resetting user profile error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return errorvalues.ErrUserNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing reset error: " + err.Error())
	}
	return nil
}
