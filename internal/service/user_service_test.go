package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/models"
	"tasklog/internal/security"
)

func TestCreateUserAdminOnly(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, 4, zerolog.Nop())

	_, err := svc.Create(context.Background(), nil, CreateUserInput{Username: "eve", Password: "pw"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Create(context.Background(), ownerPrincipal, CreateUserInput{Username: "eve", Password: "pw"})
	assert.ErrorIs(t, err, ErrForbidden)

	user, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{Username: "eve", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.True(t, security.VerifyPassword("pw", user.PasswordHash))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), 4, zerolog.Nop())

	_, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{Username: "", Password: "pw"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), adminPrincipal, CreateUserInput{Username: "eve", Password: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), adminPrincipal, CreateUserInput{
		Username: "eve",
		Password: "pw",
		Role:     models.UserRole("OVERLORD"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserDuplicateLeavesExistingIntact(t *testing.T) {
	existing := newTestUser(t, "user-1", "alice", "original-pw", models.UserRoleUser)
	users := newFakeUserStore(existing)
	svc := NewUserService(users, 4, zerolog.Nop())

	_, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{
		Username: "alice",
		Password: "new-pw",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)

	kept, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "user-1", kept.ID)
	assert.True(t, security.VerifyPassword("original-pw", kept.PasswordHash))
}

func TestCreateUserWithAdminRole(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), 4, zerolog.Nop())

	user, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{
		Username: "second-admin",
		Password: "pw",
		Role:     models.UserRoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
}

func TestListUsers(t *testing.T) {
	users := newFakeUserStore(
		newTestUser(t, "user-1", "alice", "pw", models.UserRoleUser),
		newTestUser(t, "user-2", "bob", "pw", models.UserRoleUser),
	)
	users.taskCounts["user-1"] = 3
	svc := NewUserService(users, 4, zerolog.Nop())

	summaries, err := svc.List(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	for _, s := range summaries {
		if s.ID == "user-1" {
			assert.Equal(t, 3, s.TaskCount)
		}
	}

	// Everyone else sees nothing rather than an error.
	summaries, err = svc.List(context.Background(), ownerPrincipal)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, 4, zerolog.Nop())

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin123"))

	created, err := users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, created.Role)
	assert.True(t, security.VerifyPassword("admin123", created.PasswordHash))

	// Second run must not touch the existing account.
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "different"))
	again, err := users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.True(t, security.VerifyPassword("admin123", again.PasswordHash))
}
