// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/nxtech/nxtech-site/internal/auth"
	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
)

// dummyHash is checked against when the email is unknown so that both
// failure paths cost one argon2 evaluation.
var dummyHash, _ = auth.HashPassword("timing-equaliser-password")

// UserService manages admin panel accounts.
type UserService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewUserService creates a UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{
		queries: store.New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type UserInput struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// Authenticate checks credentials and stamps the last login time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = auth.CheckPassword(password, dummyHash)
		return store.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return store.User{}, ErrInvalidCredentials
	}

	if err := s.queries.UpdateUserLastLogin(ctx, user.ID, s.now()); err != nil {
		return user, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]store.User, error) {
	return s.queries.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (store.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	return u, notFound(err)
}

func (s *UserService) CreateUser(ctx context.Context, in UserInput) (store.User, error) {
	email, name, role := pick(in.Email, ""), pick(in.Name, ""), pick(in.Role, model.RoleEditor)
	if err := firstErr(validEmail("email", email), required("name", name), validRole(role)); err != nil {
		return store.User{}, err
	}
	if in.Password == nil {
		return store.User{}, invalid("password", "password is required")
	}
	hash, err := hashPassword(*in.Password)
	if err != nil {
		return store.User{}, err
	}

	now := s.now()
	u, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return u, uniqueViolation(err, "email")
}

// UpdateUser applies a patch. Demoting the last admin is refused.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in UserInput) (store.User, error) {
	cur, err := s.GetUser(ctx, id)
	if err != nil {
		return cur, err
	}

	p := store.UpdateUserParams{
		ID:           id,
		Email:        pick(in.Email, cur.Email),
		Name:         pick(in.Name, cur.Name),
		Role:         pick(in.Role, cur.Role),
		PasswordHash: cur.PasswordHash,
		UpdatedAt:    s.now(),
	}
	if err := firstErr(validEmail("email", p.Email), required("name", p.Name), validRole(p.Role)); err != nil {
		return cur, err
	}
	if in.Password != nil {
		if p.PasswordHash, err = hashPassword(*in.Password); err != nil {
			return cur, err
		}
	}
	if cur.Role == model.RoleAdmin && p.Role != model.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return cur, err
		}
	}

	u, err := s.queries.UpdateUser(ctx, p)
	return u, uniqueViolation(notFound(err), "email")
}

// DeleteUser removes id on behalf of actorID. Users cannot delete
// themselves and the last admin cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return invalid("id", "you cannot delete your own account")
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}
	return s.queries.DeleteUser(ctx, id)
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context) error {
	n, err := s.queries.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return invalid("role", "at least one admin must remain")
	}
	return nil
}

func validRole(role string) error {
	if !model.IsValidRole(role) {
		return invalid("role", "role must be admin or editor")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return "", &ValidationError{Field: "password", Message: err.Error()}
	}
	return auth.HashPassword(password)
}
