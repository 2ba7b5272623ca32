// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session tracks anonymous site visitors so the chat widget can
// update the lead it already created instead of inserting a duplicate.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

const (
	keyVisitorID  = "visitor_id"
	keyChatLeadID = "chat_lead_id"

	// Lifetime of a visitor session.
	Lifetime = 30 * 24 * time.Hour
)

// Visitors wraps an scs session manager backed by the sessions table.
type Visitors struct {
	sm    *scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// New creates the visitor session manager. Expired rows are swept every
// 30 minutes until Close.
func New(db *sql.DB, isDev bool) *Visitors {
	st := sqlite3store.NewWithCleanupInterval(db, 30*time.Minute)

	sm := scs.New()
	sm.Store = st
	sm.Lifetime = Lifetime
	sm.IdleTimeout = 7 * 24 * time.Hour
	sm.Cookie.Name = "nxt_visitor"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	sm.Cookie.Persist = true

	return &Visitors{sm: sm, store: st}
}

// Manager exposes the underlying scs manager.
func (v *Visitors) Manager() *scs.SessionManager {
	return v.sm
}

// Middleware loads and saves the visitor session around next.
func (v *Visitors) Middleware(next http.Handler) http.Handler {
	return v.sm.LoadAndSave(next)
}

// VisitorID returns the stable id of the current visitor, assigning one on
// first use.
func (v *Visitors) VisitorID(ctx context.Context) string {
	if id := v.sm.GetString(ctx, keyVisitorID); id != "" {
		return id
	}
	id := uuid.NewString()
	v.sm.Put(ctx, keyVisitorID, id)
	return id
}

// ChatLeadID returns the lead created earlier in this session, or 0.
func (v *Visitors) ChatLeadID(ctx context.Context) int64 {
	return v.sm.GetInt64(ctx, keyChatLeadID)
}

// SetChatLeadID remembers the lead created in this session.
func (v *Visitors) SetChatLeadID(ctx context.Context, id int64) {
	v.sm.Put(ctx, keyChatLeadID, id)
}

// Close stops the expired-session sweeper.
func (v *Visitors) Close() {
	v.store.StopCleanup()
}
