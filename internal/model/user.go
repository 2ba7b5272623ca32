// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// IsValidRole reports whether role is a known user role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
