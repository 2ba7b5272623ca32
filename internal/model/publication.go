// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// PublicationStage tags the variant held by a PublicationState.
type PublicationStage int

const (
	Draft PublicationStage = iota
	Scheduled
	Published
)

func (s PublicationStage) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Published:
		return "published"
	default:
		return "draft"
	}
}

// PublicationState replaces the bare nullable published_at column.
// At is meaningful for Scheduled and Published only.
type PublicationState struct {
	Stage PublicationStage
	At    time.Time
}

// PublicationFromColumns derives the state from the stored columns.
// A published_at in the future is treated as scheduled for that instant.
func PublicationFromColumns(publishedAt, scheduledAt sql.NullTime, now time.Time) PublicationState {
	switch {
	case publishedAt.Valid && !publishedAt.Time.After(now):
		return PublicationState{Stage: Published, At: publishedAt.Time}
	case publishedAt.Valid:
		return PublicationState{Stage: Scheduled, At: publishedAt.Time}
	case scheduledAt.Valid:
		return PublicationState{Stage: Scheduled, At: scheduledAt.Time}
	default:
		return PublicationState{Stage: Draft}
	}
}

// Visible reports whether the blog can be seen on public pages.
func (p PublicationState) Visible() bool {
	return p.Stage == Published
}
