// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nxtech/nxtech-site/internal/cache"
	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/scheduler"
	"github.com/nxtech/nxtech-site/internal/service"
)

// CacheHandler exposes page cache statistics and a manual purge.
type CacheHandler struct {
	manager *cache.Manager
	events  *service.EventService
}

// NewCacheHandler creates a CacheHandler.
func NewCacheHandler(manager *cache.Manager, events *service.EventService) *CacheHandler {
	return &CacheHandler{manager: manager, events: events}
}

// Stats handles GET /api/admin/cache.
func (h *CacheHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Stats())
}

// Clear handles POST /api/admin/cache/clear.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ClearAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("page cache cleared", "user_id", middleware.UserID(r))
	if h.events != nil {
		if err := h.events.LogInfo(r.Context(), model.EventCategoryCache, "Page cache cleared", middleware.UserID(r), nil); err != nil {
			slog.Error("failed to record cache event", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, h.manager.Stats())
}

// JobRegistry lists and runs scheduled jobs.
type JobRegistry interface {
	List() []scheduler.JobInfo
	Trigger(ctx context.Context, name string) error
}

// SchedulerHandler lets admins inspect and run the cron jobs.
type SchedulerHandler struct {
	jobs JobRegistry
}

// NewSchedulerHandler creates a SchedulerHandler.
func NewSchedulerHandler(jobs JobRegistry) *SchedulerHandler {
	return &SchedulerHandler{jobs: jobs}
}

// List handles GET /api/admin/scheduler.
func (h *SchedulerHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newList(h.jobs.List()))
}

type triggerResponse struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Trigger handles POST /api/admin/scheduler/{name}/run. A job that runs
// and fails is reported in the body, not as an HTTP error.
func (h *SchedulerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := h.jobs.Trigger(r.Context(), name)
	if errors.Is(err, scheduler.ErrUnknownJob) {
		http.Error(w, "Unknown job", http.StatusNotFound)
		return
	}

	resp := triggerResponse{Name: name, Success: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	slog.Info("job triggered manually", "job", name, "user_id", middleware.UserID(r), "success", resp.Success)
	writeJSON(w, http.StatusOK, resp)
}
