package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	apperr "parkspot/internal/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(entities.RegisterRequest{
		FirstName: "Alice",
		Username:  "alice",
		Password:  "hunter2",
		Role:      db.RoleLandowner,
		Email:     "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, db.RoleLandowner, user.Role)
	assert.NotEqual(t, "hunter2", user.PasswordHash, "password must be hashed")

	loggedIn, token, err := svc.Login("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login("alice", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, _, err = svc.Login("nobody", "hunter2")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(entities.RegisterRequest{Username: "alice", Password: "x"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.Register(entities.RegisterRequest{FirstName: "A", Username: "alice", Password: "x", Role: "superuser"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestRegisterDefaultsRoleAndRejectsDuplicates(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(entities.RegisterRequest{FirstName: "Bob", Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, db.RoleVehicleOwner, user.Role)

	_, err = svc.Register(entities.RegisterRequest{FirstName: "Bobby", Username: "bob", Password: "pw2"})
	require.Error(t, err)
	assert.Equal(t, "Username already taken", err.Error())
}

func TestDeleteUser(t *testing.T) {
	admin := &db.User{ID: "admin-1", Username: "root", Role: db.RoleAdmin}
	driver := &db.User{ID: "driver-1", Username: "alice", Role: db.RoleVehicleOwner}
	svc := NewUserService(newFakeUserStore(admin, driver))

	require.NoError(t, svc.DeleteUser("driver-1"))

	err := svc.DeleteUser("admin-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	err = svc.DeleteUser("ghost")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
