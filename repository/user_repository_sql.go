package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"income-tax/domain"
)

const (
	insertUserQuery = `INSERT INTO users (username, password) VALUES (?, ?) ON CONFLICT(username) DO NOTHING`
	selectUserQuery = `SELECT username, password FROM users WHERE username = ?`
)

// UserRepositorySQL keeps users in a two-column table. The password column
// holds a bcrypt hash, never the plain password.
type UserRepositorySQL struct {
	db *sqlx.DB
}

func NewUserRepositorySQL(db *sqlx.DB) *UserRepositorySQL {
	return &UserRepositorySQL{db: db}
}

func (r *UserRepositorySQL) Create(ctx context.Context, user domain.User) error {
	res, err := r.db.ExecContext(ctx, insertUserQuery, user.Username, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return ErrUserExists
	}
	return nil
}

func (r *UserRepositorySQL) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, selectUserQuery, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}
