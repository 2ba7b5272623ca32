// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/dashboard"
	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/store"
)

func newDashboardHandler(t *testing.T, app *testApp) *DashboardHandler {
	t.Helper()
	ctx := context.Background()

	_, err := app.submissions.SubmitContact(ctx, service.ContactInput{
		Name: "Ada", Email: "ada@example.com", Subject: "Partnership", Message: "Hi",
	}, service.ClientInfo{})
	require.NoError(t, err)
	_, err = app.submissions.SubmitQuote(ctx, service.QuoteInput{
		Name: "Bo", Email: "bo@example.com", Service: "Cloud",
	}, service.ClientInfo{})
	require.NoError(t, err)

	return NewDashboardHandler(dashboard.NewAggregator(store.New(app.db)), app.tmpl)
}

func TestDashboardHandler_Stats(t *testing.T) {
	app := newTestApp(t)
	h := newDashboardHandler(t, app)

	w := httptest.NewRecorder()
	h.Stats(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil))

	assertStatus(t, w.Code, http.StatusOK)
	stats := decodeBody[dashboard.Stats](t, w)
	assert.Equal(t, int64(2), stats.NewLeads.Current)
	assert.True(t, stats.NewLeads.NoPriorData)
	assert.InDelta(t, 100.0, stats.NewLeads.Change, 0.001)
}

func TestDashboardHandler_Activity(t *testing.T) {
	app := newTestApp(t)
	h := newDashboardHandler(t, app)

	w := httptest.NewRecorder()
	h.Activity(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/activity?limit=1", nil))

	assertStatus(t, w.Code, http.StatusOK)
	feed := decodeBody[listResponse[dashboard.Activity]](t, w)
	require.Equal(t, 1, feed.Total)

	w = httptest.NewRecorder()
	h.Activity(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/activity", nil))
	assert.Equal(t, 2, decodeBody[listResponse[dashboard.Activity]](t, w).Total)
}

func TestDashboardHandler_Page(t *testing.T) {
	app := newTestApp(t)
	h := newDashboardHandler(t, app)

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, "Website Visits")
	assert.Contains(t, body, "New Leads")
	assert.Contains(t, body, "no data last week")
	assert.Contains(t, body, "Partnership (Ada)")
}
