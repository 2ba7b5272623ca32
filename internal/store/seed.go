// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nxtech/nxtech-site/internal/auth"
)

// DefaultCategory is created on first start so blogs always have a category to reference.
const (
	DefaultCategoryName = "General"
	DefaultCategorySlug = "general"
)

// SeedOptions configures the bootstrap admin.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string // generated and logged once when empty
}

// Seed creates the bootstrap admin when no users exist and the default blog category.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)
	now := time.Now().UTC()

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count == 0 {
		password := opts.AdminPassword
		generated := password == ""
		if generated {
			password = uuid.NewString()
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		user, err := queries.CreateUser(ctx, CreateUserParams{
			Email:        opts.AdminEmail,
			PasswordHash: hash,
			Name:         "Administrator",
			Role:         "admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		if generated {
			slog.Warn("created bootstrap admin with generated password; change it after first login",
				"id", user.ID, "email", user.Email, "password", password)
		} else {
			slog.Info("created bootstrap admin", "id", user.ID, "email", user.Email)
		}
	}

	_, err = queries.GetBlogCategoryBySlug(ctx, DefaultCategorySlug)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := queries.CreateBlogCategory(ctx, DefaultCategoryName, DefaultCategorySlug, now); err != nil {
			return fmt.Errorf("creating default category: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking default category: %w", err)
	}
	return nil
}
