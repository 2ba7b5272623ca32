// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/nxtech/nxtech-site/internal/dashboard"
)

// DashboardHandler serves the admin overview as JSON and as an HTML page.
type DashboardHandler struct {
	agg  *dashboard.Aggregator
	tmpl *template.Template
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(agg *dashboard.Aggregator, tmpl *template.Template) *DashboardHandler {
	return &DashboardHandler{agg: agg, tmpl: tmpl}
}

// Stats handles GET /api/admin/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.agg.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Activity handles GET /api/admin/dashboard/activity?days=7&limit=10.
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	feed, err := h.agg.RecentActivity(r.Context(),
		queryInt(r, "days", dashboard.DefaultWindowDays),
		queryInt(r, "limit", dashboard.DefaultLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(feed))
}

type dashboardPage struct {
	Title      string
	Stats      dashboard.Stats
	Activity   []dashboard.Activity
	WindowDays int
}

// Page handles GET /dashboard.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{Title: "Dashboard", WindowDays: dashboard.DefaultWindowDays}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		page.Stats, err = h.agg.Stats(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Activity, err = h.agg.RecentActivity(ctx, page.WindowDays, dashboard.DefaultLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	renderPage(w, r, h.tmpl, "dashboard", http.StatusOK, page)
}
