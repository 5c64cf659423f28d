package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tasklog/internal/authz"
	"tasklog/internal/ids"
	"tasklog/internal/models"
	"tasklog/internal/repository"
	"tasklog/internal/security"
)

type UserService struct {
	users      UserStore
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(users UserStore, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

type CreateUserInput struct {
	Username string
	Password string
	Role     models.UserRole
}

// Create provisions an account; admin-only.
func (s *UserService) Create(ctx context.Context, principal *models.Principal, input CreateUserInput) (models.User, error) {
	if principal == nil {
		return models.User{}, ErrUnauthorized
	}
	if !authz.CanManageUsers(principal) {
		return models.User{}, ErrForbidden
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = models.UserRoleUser
	}
	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}

	passwordHash, err := security.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return models.User{}, ErrUsernameExists
		}
		return models.User{}, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("actor_id", principal.ID).
		Msg("user created")
	return user, nil
}

// List returns account summaries with task counts for admins, and an empty
// list for anyone else.
func (s *UserService) List(ctx context.Context, principal *models.Principal) ([]models.UserSummary, error) {
	if !authz.CanManageUsers(principal) {
		return []models.UserSummary{}, nil
	}
	return s.users.ListSummaries(ctx)
}

// EnsureAdmin is the first-run provisioning hook: find-or-create the
// administrative account. Idempotent, and only ever invoked from process
// startup, never from an HTTP endpoint.
func (s *UserService) EnsureAdmin(ctx context.Context, username string, password string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		s.log.Debug().Str("username", username).Msg("admin account already exists")
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	passwordHash, err := security.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.UserRoleAdmin,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// A concurrent bootstrap may have won the race; that is still success.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil
		}
		return err
	}

	s.log.Info().Str("username", username).Msg("admin account created")
	return nil
}
