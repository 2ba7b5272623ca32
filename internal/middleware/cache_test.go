// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nxtech/nxtech-site/internal/cache"
)

func TestStaticCache(t *testing.T) {
	tests := []struct {
		name   string
		maxAge int
		want   string
	}{
		{"one hour", 3600, "public, max-age=3600"},
		{"one week", 604800, "public, max-age=604800"},
		{"zero", 0, "public, max-age=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := StaticCache(tt.maxAge)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("body"))
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

			if got := rr.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
			if body := rr.Body.String(); body != "body" {
				t.Errorf("Body = %q, want %q", body, "body")
			}
		})
	}
}

func newTestPages(t *testing.T) *cache.PageCache {
	t.Helper()
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = mem.Close() })
	return cache.NewPageCache(mem, time.Hour)
}

func TestPageCache_HitAfterMiss(t *testing.T) {
	pages := newTestPages(t)
	calls := 0
	h := PageCache(pages)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":"services"}`))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/services", nil))
	if got := first.Header().Get(HeaderCache); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/services", nil))
	if got := second.Header().Get(HeaderCache); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if second.Body.String() != `{"page":"services"}` {
		t.Errorf("cached body = %q", second.Body.String())
	}
	if ct := second.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("cached Content-Type = %q, want application/json", ct)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}

	if err := pages.Invalidate(context.Background(), "/services"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	third := httptest.NewRecorder()
	h.ServeHTTP(third, httptest.NewRequest(http.MethodGet, "/services", nil))
	if got := third.Header().Get(HeaderCache); got != "MISS" {
		t.Errorf("after invalidate X-Cache = %q, want MISS", got)
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestPageCache_SkipsErrorsAndWrites(t *testing.T) {
	pages := newTestPages(t)
	h := PageCache(pages)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/services/missing" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/services/missing", nil))
	if _, ok := pages.Get(context.Background(), "/services/missing", ""); ok {
		t.Error("404 response should not be cached")
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/services", nil))
	if _, ok := pages.Get(context.Background(), "/services", ""); ok {
		t.Error("POST response should not be cached")
	}
}
