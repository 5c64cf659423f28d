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

func newTestUser(t *testing.T, id, username, password string, role models.UserRole) models.User {
	t.Helper()
	hash, err := security.HashPassword(password, 4)
	require.NoError(t, err)
	return models.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserStore(newTestUser(t, "user-1", "alice", "correct-horse", models.UserRoleAdmin))
	svc := NewAuthService(users, nil, zerolog.Nop())

	principal, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: "user-1", Username: "alice", Role: models.UserRoleAdmin}, principal)
}

func TestLoginTrimsUsername(t *testing.T) {
	users := newFakeUserStore(newTestUser(t, "user-1", "alice", "correct-horse", models.UserRoleUser))
	svc := NewAuthService(users, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "  alice ", "correct-horse")
	assert.NoError(t, err)
}

// Unknown usernames and wrong passwords must fail identically.
func TestLoginInvalidCredentials(t *testing.T) {
	users := newFakeUserStore(newTestUser(t, "user-1", "alice", "correct-horse", models.UserRoleUser))
	svc := NewAuthService(users, nil, zerolog.Nop())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "unknown user", username: "mallory", password: "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}
