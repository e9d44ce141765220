package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"income-tax/domain"
	"income-tax/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already taken")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrStorage            = errors.New("user store unavailable")
)

// AuthService is the login gate. Passwords are stored as bcrypt hashes and
// checked with bcrypt's constant-time comparison.
type AuthService struct {
	users     repository.UserRepository
	cost      int
	dummyHash []byte
	logger    zerolog.Logger
}

// NewAuthService creates the service; cost outside bcrypt's range uses
// bcrypt.DefaultCost.
func NewAuthService(users repository.UserRepository, cost int, logger zerolog.Logger) (*AuthService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// hash de relleno para que un usuario inexistente tarde lo mismo
	dummy, err := bcrypt.GenerateFromPassword([]byte("income-tax-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		users:     users,
		cost:      cost,
		dummyHash: dummy,
		logger:    logger,
	}, nil
}

func (s *AuthService) SignUp(ctx context.Context, creds domain.Credentials) error {
	username := creds.Name()
	if username == "" || creds.Password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.users.Create(ctx, domain.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, repository.ErrUserExists) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().Str("username", username).Msg("user signed up")
	return nil
}

func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) error {
	username := creds.Name()
	if username == "" || creds.Password == "" {
		return ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(creds.Password))
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Info().Str("username", username).Msg("login rejected")
		return ErrInvalidCredentials
	}
	return nil
}
