// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the NxTech site: the admin
// access gate, rate limiting, CSRF, page caching and security headers.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nxtech/nxtech-site/internal/auth"
)

// SessionCookie is the cookie carrying the signed admin token.
const SessionCookie = "nxt_admin"

// LoginPath is the page unauthenticated admin requests are sent to.
const LoginPath = "/auth"

// Action is the outcome of a gate decision.
type Action int

const (
	// ActionPass lets a public request through untouched.
	ActionPass Action = iota
	// ActionAllow lets a guarded request through with a decoded session.
	ActionAllow
	// ActionRedirect sends a guarded page request to the login page.
	ActionRedirect
	// ActionUnauthorized rejects a guarded API request with 401.
	ActionUnauthorized
)

// Verdict is the result of Gate.Decide.
type Verdict struct {
	Action   Action
	Session  auth.Session
	Location string
}

// GateConfig lists the path prefixes the gate classifies.
type GateConfig struct {
	// PagePrefixes guard HTML pages; failures redirect to the login page.
	PagePrefixes []string
	// APIPrefixes guard JSON endpoints; failures answer 401.
	APIPrefixes []string
	// PublicPrefixes are never guarded and are checked first.
	PublicPrefixes []string
	LoginPath      string
}

// DefaultGateConfig returns the prefix lists used by the site router.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		PagePrefixes:   []string{"/dashboard"},
		APIPrefixes:    []string{"/api/admin"},
		PublicPrefixes: []string{LoginPath, "/static", "/uploads", "/favicon.ico"},
		LoginPath:      LoginPath,
	}
}

// Gate guards admin paths behind a valid admin session token.
type Gate struct {
	cfg   GateConfig
	codec *auth.TokenCodec
}

// NewGate creates a gate decoding tokens with codec.
func NewGate(cfg GateConfig, codec *auth.TokenCodec) *Gate {
	if cfg.LoginPath == "" {
		cfg.LoginPath = LoginPath
	}
	return &Gate{cfg: cfg, codec: codec}
}

// Decide classifies a request by its path and raw token. It has no side
// effects, so the same inputs always yield the same verdict.
func (g *Gate) Decide(path, token string) Verdict {
	if matchesAny(path, g.cfg.PublicPrefixes) {
		return Verdict{Action: ActionPass}
	}

	isAPI := matchesAny(path, g.cfg.APIPrefixes)
	if !isAPI && !matchesAny(path, g.cfg.PagePrefixes) {
		return Verdict{Action: ActionPass}
	}

	sess, err := g.codec.Decode(token)
	if err == nil && sess.IsAdmin {
		return Verdict{Action: ActionAllow, Session: sess}
	}

	if isAPI {
		return Verdict{Action: ActionUnauthorized}
	}
	return Verdict{
		Action:   ActionRedirect,
		Location: g.cfg.LoginPath + "?callbackUrl=" + url.QueryEscape(path),
	}
}

// Middleware applies Decide to every request.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := g.Decide(r.URL.Path, TokenFromRequest(r))
		switch v.Action {
		case ActionAllow:
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), v.Session)))
		case ActionRedirect:
			http.Redirect(w, r, v.Location, http.StatusSeeOther)
		case ActionUnauthorized:
			slog.Debug("admin api request rejected", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// TokenFromRequest returns the admin token from the session cookie, falling
// back to an Authorization bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// matchesAny reports whether path equals a prefix or lies beneath it.
func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

type contextKey string

const contextKeySession contextKey = "admin_session"

// WithSession stores the admin session in ctx.
func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, contextKeySession, s)
}

// SessionFromContext returns the admin session set by the gate.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(contextKeySession).(auth.Session)
	return s, ok
}

// UserID returns the acting admin's id, or 0 outside a gated request.
func UserID(r *http.Request) int64 {
	if s, ok := SessionFromContext(r.Context()); ok {
		return s.UserID
	}
	return 0
}
