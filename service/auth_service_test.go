package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"income-tax/domain"
	"income-tax/repository"
)

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]domain.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrUserExists
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.User{}, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthService(t *testing.T, repo repository.UserRepository) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, bcrypt.MinCost, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestAuthService_SignUpAndLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, domain.Credentials{Username: " asha ", Password: "s3cret"}))

	stored := repo.users["asha"]
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	assert.NoError(t, svc.Login(ctx, domain.Credentials{Username: "asha", Password: "s3cret"}))
	assert.ErrorIs(t, svc.Login(ctx, domain.Credentials{Username: "asha", Password: "wrong"}), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, domain.Credentials{Username: "ravi", Password: "s3cret"}), ErrInvalidCredentials)
}

func TestAuthService_DuplicateUser(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepository())
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, domain.Credentials{Username: "asha", Password: "a"}))
	assert.ErrorIs(t, svc.SignUp(ctx, domain.Credentials{Username: "asha", Password: "b"}), ErrUserExists)
}

func TestAuthService_MissingCredentials(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepository())
	ctx := context.Background()

	assert.ErrorIs(t, svc.SignUp(ctx, domain.Credentials{Username: "  ", Password: "x"}), ErrMissingCredentials)
	assert.ErrorIs(t, svc.SignUp(ctx, domain.Credentials{Username: "asha"}), ErrMissingCredentials)
	assert.ErrorIs(t, svc.Login(ctx, domain.Credentials{Password: "x"}), ErrMissingCredentials)
}

func TestAuthService_StorageFailure(t *testing.T) {
	repo := newFakeUserRepository()
	repo.err = errors.New("disk full")
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SignUp(ctx, domain.Credentials{Username: "asha", Password: "x"}), ErrStorage)
	assert.ErrorIs(t, svc.Login(ctx, domain.Credentials{Username: "asha", Password: "x"}), ErrStorage)
}

func TestNewAuthService_InvalidCostFallsBack(t *testing.T) {
	svc, err := NewAuthService(newFakeUserRepository(), 99, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
