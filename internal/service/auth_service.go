package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tasklog/internal/models"
	"tasklog/internal/ratelimit"
	"tasklog/internal/repository"
	"tasklog/internal/security"
)

type AuthService struct {
	users   UserStore
	limiter *ratelimit.LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users UserStore, limiter *ratelimit.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		limiter: limiter,
		log:     log,
	}
}

// Login verifies credentials and returns the principal to embed in a fresh
// session. Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Principal{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if !s.limiter.Allow(ctx, username) {
		s.log.Warn().Str("username", username).Msg("login rate limited")
		return models.Principal{}, ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.limiter.RecordFailure(ctx, username)
			return models.Principal{}, ErrInvalidCredentials
		}
		return models.Principal{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		s.limiter.RecordFailure(ctx, username)
		s.log.Info().Str("user_id", user.ID).Msg("login failed: bad password")
		return models.Principal{}, ErrInvalidCredentials
	}

	s.limiter.Reset(ctx, username)
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return models.Principal{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
