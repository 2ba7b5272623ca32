// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the admin and public write paths: validation,
// store calls and the cache revalidation that follows each content change.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
)

// EventService writes and reads the admin event log.
type EventService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// LogEvent creates an event log entry. userID 0 means no user.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID int64, metadata map[string]any) error {
	var uid sql.NullInt64
	if userID > 0 {
		uid = sql.NullInt64{Int64: userID, Valid: true}
	}

	meta := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			meta = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    uid,
		Metadata:  meta,
		CreatedAt: s.now(),
	})
	return err
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
}

// ListEvents returns the newest events, optionally filtered by level.
func (s *EventService) ListEvents(ctx context.Context, level string, limit int64) ([]store.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.queries.ListEvents(ctx, store.ListEventsParams{Level: level, Limit: limit})
}

// Prune deletes events older than retention and returns how many went.
func (s *EventService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.queries.DeleteEventsBefore(ctx, s.now().Add(-retention))
}
