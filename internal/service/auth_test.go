package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/ecommerce/internal/identity"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(email string) transport.CreateUser {
	return transport.CreateUser{FullName: "Test User", Email: email, Password: "Secret#123", ConfirmPassword: "Secret#123"}
}

func TestCreateUser_FirstIsAdminThenUser(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	pub := &fakePublisher{}
	svc.Events = pub
	ctx := context.Background()
	roles := &identity.RoleManager{DB: gdb}

	resp, err := svc.CreateUser(ctx, registration("first@example.com"))
	require.NoError(t, err)
	assert.Equal(t, transport.ServiceResponse{Flag: true, Message: "Account created successfully"}, resp)

	resp, err = svc.CreateUser(ctx, registration("second@example.com"))
	require.NoError(t, err)
	assert.True(t, resp.Flag)

	role, err := roles.GetUserRole(ctx, "first@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = roles.GetUserRole(ctx, "second@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	assert.Equal(t, []string{"user_registered", "user_registered"}, pub.types())
}

func TestCreateUser_DuplicateAndInvalid(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)

	resp, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)
	assert.False(t, resp.Flag)
	assert.Equal(t, "Email address might be use or unknown error occurred.", resp.Message)

	bad := registration("bob@example.com")
	bad.ConfirmPassword = "nope"
	resp, err = svc.CreateUser(ctx, bad)
	require.NoError(t, err)
	assert.False(t, resp.Flag)
	assert.Equal(t, "Password do not match.", resp.Message)
}

type failingRoles struct{ err error }

func (f failingRoles) AddUserToRole(context.Context, *models.AppUser, string) (bool, error) {
	return false, f.err
}

func TestCreateUser_RoleFailureRemovesUser(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	svc.Roles = failingRoles{err: errors.New("role store down")}
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)
	assert.False(t, resp.Flag)
	assert.Equal(t, "Error occurred in create account.", resp.Message)

	var count int64
	require.NoError(t, gdb.Model(&models.AppUser{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginUser(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)

	resp, err := svc.LoginUser(ctx, transport.LoginUser{Email: "ann@example.com", Password: "Secret#123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)

	resp, err = svc.LoginUser(ctx, transport.LoginUser{Email: "ann@example.com", Password: "Wrong#123"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email not found or invalid credentials", resp.Message)

	resp, err = svc.LoginUser(ctx, transport.LoginUser{Email: "not-an-email"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestLoginUser_FailsWithoutRole(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)
	require.NoError(t, gdb.Where("1 = 1").Delete(&models.UserRole{}).Error)

	resp, err := svc.LoginUser(ctx, transport.LoginUser{Email: "ann@example.com", Password: "Secret#123"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email not found or invalid credentials", resp.Message)
}

func TestReviveToken(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)
	login, err := svc.LoginUser(ctx, transport.LoginUser{Email: "ann@example.com", Password: "Secret#123"})
	require.NoError(t, err)
	require.True(t, login.Success)

	revived, err := svc.ReviveToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revived.Success)
	assert.NotEmpty(t, revived.Token)
	assert.NotEqual(t, login.RefreshToken, revived.RefreshToken)

	again, err := svc.ReviveToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, "Invalid token", again.Message)

	resp, err := svc.ReviveToken(ctx, "random-string")
	require.NoError(t, err)
	assert.Equal(t, "Invalid token", resp.Message)
}

func TestRepeatedLogins_IndependentRefreshTokens(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)

	creds := transport.LoginUser{Email: "ann@example.com", Password: "Secret#123"}
	first, err := svc.LoginUser(ctx, creds)
	require.NoError(t, err)
	second, err := svc.LoginUser(ctx, creds)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	for _, tok := range []string{first.RefreshToken, second.RefreshToken} {
		ok, err := svc.Tokens.ValidateRefreshToken(ctx, tok)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestLogout(t *testing.T) {
	gdb := setupDB(t)
	svc := newAuthService(t, gdb)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registration("ann@example.com"))
	require.NoError(t, err)
	login, err := svc.LoginUser(ctx, transport.LoginUser{Email: "ann@example.com", Password: "Secret#123"})
	require.NoError(t, err)

	resp, err := svc.Logout(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, resp.Flag)

	revived, err := svc.ReviveToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revived.Success)

	resp, err = svc.Logout(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.False(t, resp.Flag)
}
