package service_test

import (
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T, db *postgres.DB) service.AuthService {
	t.Helper()
	return service.NewAuthService(postgres.NewUserRepository(db), testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newAuthService(t, db)

	token, user, err := auth.Register(ctx, service.RegisterInput{
		Username: "grappler",
		Email:    "grappler@example.com",
		Password: "sup3rsecret",
		Goal:     "strength",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	// The token carries the user id and admin flag.
	claims := &service.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	// Login by username.
	_, logged, err := auth.Login(ctx, "grappler", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	// Login by email works too.
	_, logged, err = auth.Login(ctx, "grappler@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newAuthService(t, db)

	input := service.RegisterInput{
		Username: "grappler",
		Email:    "grappler@example.com",
		Password: "sup3rsecret",
	}
	_, _, err := auth.Register(ctx, input)
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, input)
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	// Same email under a different username is also taken.
	input.Username = "grappler2"
	_, _, err = auth.Register(ctx, input)
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newAuthService(t, db)

	_, _, err := auth.Register(ctx, service.RegisterInput{
		Username: "grappler",
		Email:    "grappler@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "grappler", "wrongpass")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, _, err = auth.Login(ctx, "nobody", "sup3rsecret")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newAuthService(t, db)

	_, user, err := auth.Register(ctx, service.RegisterInput{
		Username: "grappler",
		Email:    "grappler@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	err = auth.UpdatePassword(ctx, user.ID, "nope", "newpassword1")
	assert.ErrorIs(t, err, service.ErrPasswordMismatch)

	require.NoError(t, auth.UpdatePassword(ctx, user.ID, "sup3rsecret", "newpassword1"))

	_, _, err = auth.Login(ctx, "grappler", "sup3rsecret")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "grappler", "newpassword1")
	assert.NoError(t, err)
}
