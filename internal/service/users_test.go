// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/model"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db)
	ctx := context.Background()

	u, err := users.Authenticate(ctx, "admin@nxtech.test", "admin-password")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	reloaded, err := users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.LastLoginAt.Valid)

	_, err = users.Authenticate(ctx, "admin@nxtech.test", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "nobody@nxtech.test", "admin-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    UserInput
		field string
	}{
		{"bad email", UserInput{Email: ptr("nope"), Name: ptr("N"), Password: ptr("long-enough")}, "email"},
		{"no name", UserInput{Email: ptr("a@b.test"), Password: ptr("long-enough")}, "name"},
		{"bad role", UserInput{Email: ptr("a@b.test"), Name: ptr("N"), Role: ptr("owner"), Password: ptr("long-enough")}, "role"},
		{"no password", UserInput{Email: ptr("a@b.test"), Name: ptr("N")}, "password"},
		{"short password", UserInput{Email: ptr("a@b.test"), Name: ptr("N"), Password: ptr("short")}, "password"},
		{"duplicate email", UserInput{Email: ptr("admin@nxtech.test"), Name: ptr("N"), Password: ptr("long-enough")}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.CreateUser(ctx, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	u, err := users.CreateUser(ctx, UserInput{Email: ptr("ed@nxtech.test"), Name: ptr("Ed"), Password: ptr("long-enough")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, u.Role)

	_, err = users.Authenticate(ctx, "ed@nxtech.test", "long-enough")
	assert.NoError(t, err)
}

func TestLastAdminGuards(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db)
	ctx := context.Background()

	admin, err := users.Authenticate(ctx, "admin@nxtech.test", "admin-password")
	require.NoError(t, err)
	editor, err := users.CreateUser(ctx, UserInput{Email: ptr("ed@nxtech.test"), Name: ptr("Ed"), Password: ptr("long-enough")})
	require.NoError(t, err)

	var verr *ValidationError
	require.ErrorAs(t, users.DeleteUser(ctx, admin.ID, admin.ID), &verr, "self delete")
	require.ErrorAs(t, users.DeleteUser(ctx, editor.ID, admin.ID), &verr, "last admin delete")
	_, err = users.UpdateUser(ctx, admin.ID, UserInput{Role: ptr(model.RoleEditor)})
	require.ErrorAs(t, err, &verr, "last admin demotion")

	promoted, err := users.UpdateUser(ctx, editor.ID, UserInput{Role: ptr(model.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	require.NoError(t, users.DeleteUser(ctx, editor.ID, admin.ID))
	_, err = users.GetUser(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, users.DeleteUser(ctx, editor.ID, 9999), ErrNotFound)
}

func TestUpdateUserPassword(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db)
	ctx := context.Background()

	u, err := users.CreateUser(ctx, UserInput{Email: ptr("ed@nxtech.test"), Name: ptr("Ed"), Password: ptr("first-password")})
	require.NoError(t, err)

	_, err = users.UpdateUser(ctx, u.ID, UserInput{Password: ptr("second-password")})
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "ed@nxtech.test", "first-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "ed@nxtech.test", "second-password")
	assert.NoError(t, err)
}
