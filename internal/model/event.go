// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and value types shared across
// the site: roles, statuses, event levels and blog publication state.
package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth       = "auth"
	EventCategoryContent    = "content"
	EventCategoryUser       = "user"
	EventCategoryLead       = "lead"
	EventCategoryCache      = "cache"
	EventCategoryRevalidate = "revalidate"
	EventCategoryScheduler  = "scheduler"
	EventCategorySystem     = "system"
)
