package identity_test

import (
	"context"
	"testing"

	"github.com/Skotchmaster/ecommerce/internal/db"
	"github.com/Skotchmaster/ecommerce/internal/identity"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagers(t *testing.T) (*identity.UserManager, *identity.RoleManager) {
	t.Helper()
	gdb, err := db.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(gdb))
	roles := &identity.RoleManager{DB: gdb}
	return &identity.UserManager{DB: gdb, Roles: roles}, roles
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	users, _ := newManagers(t)
	ctx := context.Background()

	ok, err := users.CreateUser(ctx, &models.AppUser{FullName: "Ann", Email: "Ann@Example.com"}, "Secret#123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.CreateUser(ctx, &models.AppUser{FullName: "Ann 2", Email: "ann@example.com"}, "Secret#123")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLoginUser(t *testing.T) {
	users, roles := newManagers(t)
	ctx := context.Background()

	u := &models.AppUser{FullName: "Ann", Email: "ann@example.com"}
	_, err := users.CreateUser(ctx, u, "Secret#123")
	require.NoError(t, err)

	ok, err := users.LoginUser(ctx, "ann@example.com", "Secret#123")
	require.NoError(t, err)
	assert.False(t, ok, "no role yet")

	added, err := roles.AddUserToRole(ctx, u, models.RoleUser)
	require.NoError(t, err)
	require.True(t, added)

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"valid", "ann@example.com", "Secret#123", true},
		{"email is case insensitive", "ANN@example.com", "Secret#123", true},
		{"wrong password", "ann@example.com", "secret#123", false},
		{"unknown email", "bob@example.com", "Secret#123", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ok, err := users.LoginUser(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestGetUserClaims(t *testing.T) {
	users, roles := newManagers(t)
	ctx := context.Background()

	u := &models.AppUser{FullName: "Ann Lee", Email: "ann@example.com"}
	_, err := users.CreateUser(ctx, u, "Secret#123")
	require.NoError(t, err)
	_, err = roles.AddUserToRole(ctx, u, models.RoleAdmin)
	require.NoError(t, err)

	claims, err := users.GetUserClaims(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", claims.FullName)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	byID, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = users.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAddUserToRole(t *testing.T) {
	users, roles := newManagers(t)
	ctx := context.Background()

	u := &models.AppUser{FullName: "Ann", Email: "ann@example.com"}
	_, err := users.CreateUser(ctx, u, "Secret#123")
	require.NoError(t, err)

	_, err = roles.AddUserToRole(ctx, u, "Root")
	assert.ErrorIs(t, err, identity.ErrUnknownRole)

	ok, err := roles.AddUserToRole(ctx, u, models.RoleUser)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = roles.AddUserToRole(ctx, u, models.RoleUser)
	require.NoError(t, err)
	assert.False(t, ok)

	role, err := roles.GetUserRole(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	role, err = roles.GetUserRole(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestRemoveUserByEmail(t *testing.T) {
	users, roles := newManagers(t)
	ctx := context.Background()

	n, err := users.RemoveUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	u := &models.AppUser{FullName: "Ann", Email: "ann@example.com"}
	_, err = users.CreateUser(ctx, u, "Secret#123")
	require.NoError(t, err)
	_, err = roles.AddUserToRole(ctx, u, models.RoleUser)
	require.NoError(t, err)

	n, err = users.RemoveUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = users.GetUserByEmail(ctx, "ann@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	role, err := roles.GetUserRole(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Empty(t, role)
}
