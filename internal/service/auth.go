package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
	"donorbook/internal/infra/credentials"
)

// timingHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
const timingHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z2hBY3m5pBqkUY1P1p5Hq8yS"

// AuthService authenticates and provisions staff users.
type AuthService struct {
	users  domain.UserRepository
	now    func() time.Time
	logger infra.Logger
}

func NewAuthService(d Deps) *AuthService {
	return &AuthService{users: d.Users, now: d.clock(), logger: d.Logger}
}

// Authenticate checks a username and password pair.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.StaffUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			credentials.CheckPassword(timingHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !credentials.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn().Str("username", user.Username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Me loads the staff user behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, id string) (*domain.StaffUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// CreateUser provisions a staff account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, name, email, password string) (*domain.StaffUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Invalid("username is required")
	}
	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.StaffUser{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if user.Name == "" {
		user.Name = username
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Msg("staff user created")
	return user, nil
}

// ResetPassword replaces a staff user's password.
func (s *AuthService) ResetPassword(ctx context.Context, username, password string) error {
	hash, err := credentials.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, username, hash)
}
