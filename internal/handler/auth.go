// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nxtech/nxtech-site/internal/auth"
	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/service"
)

// DefaultCallback is where a successful login lands without a callbackUrl.
const DefaultCallback = "/dashboard"

const msgInvalidCredentials = "Invalid email or password"

// AuthHandler signs admins in and out. The session lives entirely in the
// signed nxt_admin cookie, so there is no server-side session to revoke.
type AuthHandler struct {
	users        *service.UserService
	events       *service.EventService
	codec        *auth.TokenCodec
	protection   *middleware.LoginProtection
	tmpl         *template.Template
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. protection may be nil.
func NewAuthHandler(users *service.UserService, events *service.EventService, codec *auth.TokenCodec,
	protection *middleware.LoginProtection, tmpl *template.Template, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		users:        users,
		events:       events,
		codec:        codec,
		protection:   protection,
		tmpl:         tmpl,
		secureCookie: secureCookie,
	}
}

type loginPage struct {
	Title       string
	CallbackURL string
	Email       string
	Error       string
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SafeCallback returns raw when it is a local absolute path and
// DefaultCallback otherwise.
func SafeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return DefaultCallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultCallback
	}
	return raw
}

func wantsJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// LoginForm handles GET /auth. A visitor who already holds a valid admin
// token goes straight to the callback.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	callback := SafeCallback(r.URL.Query().Get("callbackUrl"))
	if s, err := h.codec.Decode(middleware.TokenFromRequest(r)); err == nil && s.IsAdmin {
		http.Redirect(w, r, callback, http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.tmpl, "login", http.StatusOK, loginPage{Title: "Sign in", CallbackURL: callback})
}

// Login handles POST /auth/login from the form or a JSON client.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	asJSON := wantsJSON(r)

	var req loginRequest
	if asJSON {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		req = loginRequest{
			Email:       r.PostFormValue("email"),
			Password:    r.PostFormValue("password"),
			CallbackURL: r.PostFormValue("callbackUrl"),
		}
	}
	req.Email = strings.TrimSpace(req.Email)
	callback := SafeCallback(req.CallbackURL)

	fail := func(status int, msg string) {
		if asJSON {
			http.Error(w, msg, status)
			return
		}
		renderPage(w, r, h.tmpl, "login", status, loginPage{
			Title:       "Sign in",
			CallbackURL: callback,
			Email:       req.Email,
			Error:       msg,
		})
	}

	if req.Email == "" || req.Password == "" {
		fail(http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx := r.Context()
	ip := middleware.ClientIP(r)

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(req.Email); locked {
			h.logAuthEvent(r, model.EventLevelWarning, "Login attempt on locked account", 0, req.Email, ip)
			fail(http.StatusTooManyRequests, fmt.Sprintf("Account temporarily locked. Try again in %s.", formatWait(remaining)))
			return
		}
	}

	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.logAuthEvent(r, model.EventLevelWarning, "Login failed", 0, req.Email, ip)
		if h.protection != nil {
			if locked, d := h.protection.RecordFailedAttempt(req.Email); locked {
				fail(http.StatusTooManyRequests, fmt.Sprintf("Too many failed attempts. Try again in %s.", formatWait(d)))
				return
			}
		}
		fail(http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(req.Email)
	}

	token, expires, err := h.codec.Sign(auth.Session{UserID: user.ID, IsAdmin: user.Role == model.RoleAdmin})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setSessionCookie(w, token, expires)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	h.logAuthEvent(r, model.EventLevelInfo, "User logged in", user.ID, user.Email, ip)

	if asJSON {
		writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
		return
	}
	http.Redirect(w, r, callback, http.StatusSeeOther)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	// The gate does not run on /auth, so the session is read from the token.
	uid := middleware.UserID(r)
	if uid == 0 {
		if s, err := h.codec.Decode(middleware.TokenFromRequest(r)); err == nil {
			uid = s.UserID
		}
	}
	if uid > 0 {
		h.logAuthEvent(r, model.EventLevelInfo, "User logged out", uid, "", middleware.ClientIP(r))
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) logAuthEvent(r *http.Request, level, message string, userID int64, email, ip string) {
	if h.events == nil {
		return
	}
	meta := map[string]any{"ip": ip}
	if email != "" {
		meta["email"] = email
	}
	if err := h.events.LogEvent(r.Context(), level, model.EventCategoryAuth, message, userID, meta); err != nil {
		slog.Error("failed to record auth event", "error", err)
	}
}

// formatWait renders a lockout duration rounded up to whole minutes.
func formatWait(d time.Duration) string {
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", mins)
}
