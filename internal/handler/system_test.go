// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/cache"
	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/scheduler"
)

func TestCacheHandler(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	mgr := cache.NewManagerWithBackend(cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute}),
		cache.BackendMemory, time.Minute)
	t.Cleanup(func() { _ = mgr.Close() })
	require.NoError(t, mgr.Pages.Set(ctx, "/services", "", &cache.Page{Status: http.StatusOK, Body: []byte("x")}))

	h := NewCacheHandler(mgr, app.events)

	w := httptest.NewRecorder()
	h.Stats(w, httptest.NewRequest(http.MethodGet, "/api/admin/cache", nil))
	assertStatus(t, w.Code, http.StatusOK)
	assert.Equal(t, cache.BackendMemory, decodeBody[cache.ManagerStats](t, w).Backend)

	w = httptest.NewRecorder()
	h.Clear(w, app.asAdmin(t, httptest.NewRequest(http.MethodPost, "/api/admin/cache/clear", nil)))
	assertStatus(t, w.Code, http.StatusOK)
	assert.Equal(t, 0, decodeBody[cache.ManagerStats](t, w).Items)

	_, ok := mgr.Pages.Get(ctx, "/services", "")
	assert.False(t, ok)

	events, err := app.events.ListEvents(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCategoryCache, events[0].Category)
}

type fakeJobs struct {
	ran []string
}

func (f *fakeJobs) List() []scheduler.JobInfo {
	return []scheduler.JobInfo{{Name: "publish_scheduled", Schedule: "@every 1m"}}
}

func (f *fakeJobs) Trigger(_ context.Context, name string) error {
	switch name {
	case "publish_scheduled":
		f.ran = append(f.ran, name)
		return nil
	case "broken":
		return errors.New("boom")
	default:
		return scheduler.ErrUnknownJob
	}
}

func TestSchedulerHandler(t *testing.T) {
	jobs := &fakeJobs{}
	h := NewSchedulerHandler(jobs)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/admin/scheduler", nil))
	assertStatus(t, w.Code, http.StatusOK)
	list := decodeBody[listResponse[scheduler.JobInfo]](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "publish_scheduled", list.Data[0].Name)

	trigger := func(name string) *httptest.ResponseRecorder {
		req := requestWithURLParams(httptest.NewRequest(http.MethodPost, "/api/admin/scheduler/"+name+"/run", nil),
			map[string]string{"name": name})
		w := httptest.NewRecorder()
		h.Trigger(w, req)
		return w
	}

	w = trigger("publish_scheduled")
	assertStatus(t, w.Code, http.StatusOK)
	assert.True(t, decodeBody[triggerResponse](t, w).Success)
	assert.Equal(t, []string{"publish_scheduled"}, jobs.ran)

	w = trigger("broken")
	assertStatus(t, w.Code, http.StatusOK)
	resp := decodeBody[triggerResponse](t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "boom", resp.Error)

	assertStatus(t, trigger("nope").Code, http.StatusNotFound)
}
