package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"income-tax/domain"
)

func newMockUserRepository(t *testing.T) (*UserRepositorySQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepositorySQL(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUserRepositorySQL_Create(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("asha", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), domain.User{Username: "asha", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySQL_CreateDuplicate(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("asha", "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), domain.User{Username: "asha", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySQL_CreateError(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WillReturnError(errors.New("database is locked"))

	err := repo.Create(context.Background(), domain.User{Username: "asha", PasswordHash: "hash"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
}

func TestUserRepositorySQL_FindByUsername(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("asha").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).AddRow("asha", "hash"))

	user, err := repo.FindByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, domain.User{Username: "asha", PasswordHash: "hash"}, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySQL_FindByUsernameMissing(t *testing.T) {
	repo, mock := newMockUserRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("ravi").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}))

	_, err := repo.FindByUsername(context.Background(), "ravi")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, t.TempDir()+"/users.db", 0)
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepositorySQL(db)
	require.NoError(t, repo.Create(ctx, domain.User{Username: "asha", PasswordHash: "h1"}))
	assert.ErrorIs(t, repo.Create(ctx, domain.User{Username: "asha", PasswordHash: "h2"}), ErrUserExists)

	user, err := repo.FindByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "h1", user.PasswordHash)

	_, err = OpenSQLite(ctx, " ", 0)
	assert.Error(t, err)
}
