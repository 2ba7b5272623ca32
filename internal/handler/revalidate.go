// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"
)

// HeaderRevalidateSecret carries the shared secret when it is not passed
// as the secret query parameter.
const HeaderRevalidateSecret = "X-Revalidate-Secret"

// PathTagInvalidator is the part of revalidate.Dispatcher the trigger
// endpoint drives.
type PathTagInvalidator interface {
	InvalidateDynamicPath(ctx context.Context, path string)
	InvalidateTag(ctx context.Context, tag string) error
}

// RevalidateHandler lets an external frontend or editor purge cached pages.
type RevalidateHandler struct {
	secret string
	inv    PathTagInvalidator
	logger *slog.Logger
	now    func() time.Time
}

// NewRevalidateHandler creates a RevalidateHandler. An empty secret turns
// every request away with 401.
func NewRevalidateHandler(secret string, inv PathTagInvalidator, logger *slog.Logger) *RevalidateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevalidateHandler{
		secret: secret,
		inv:    inv,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type revalidateResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

func (h *RevalidateHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	got := r.URL.Query().Get("secret")
	if got == "" {
		got = r.Header.Get(HeaderRevalidateSecret)
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// Revalidate handles POST /api/revalidate?path=&tag=.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "Invalid secret", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	path, tag := q.Get("path"), q.Get("tag")
	if path == "" && tag == "" {
		http.Error(w, "path or tag is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if tag != "" {
		if err := h.inv.InvalidateTag(ctx, tag); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if path != "" {
		h.inv.InvalidateDynamicPath(ctx, path)
	}

	h.logger.Info("revalidation requested", "category", "revalidate", "path", path, "tag", tag)
	writeJSON(w, http.StatusOK, revalidateResponse{Revalidated: true, Now: h.now().UnixMilli()})
}
