// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDefaultCSRFConfig(t *testing.T) {
	authKey := []byte("12345678901234567890123456789012")

	dev := DefaultCSRFConfig(authKey, true)
	if len(dev.AuthKey) != 32 {
		t.Errorf("len(AuthKey) = %d, want 32", len(dev.AuthKey))
	}
	if len(dev.TrustedOrigins) != 2 {
		t.Errorf("len(TrustedOrigins) = %d, want 2 in development", len(dev.TrustedOrigins))
	}
	for _, origin := range dev.TrustedOrigins {
		if strings.HasPrefix(origin, "http") {
			t.Errorf("TrustedOrigin %q should be host:port, not a URL", origin)
		}
		if !strings.Contains(origin, ":") {
			t.Errorf("TrustedOrigin %q should include a port", origin)
		}
	}

	prod := DefaultCSRFConfig(authKey, false)
	if len(prod.TrustedOrigins) != 0 {
		t.Errorf("len(TrustedOrigins) = %d, want 0 in production", len(prod.TrustedOrigins))
	}
}

func TestCSRF_CrossSiteRejected(t *testing.T) {
	h := CSRF(DefaultCSRFConfig([]byte("12345678901234567890123456789012"), false))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-site POST status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	get := httptest.NewRequest(http.MethodGet, "/auth", nil)
	get.Header.Set("Sec-Fetch-Site", "cross-site")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Errorf("cross-site GET status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSkipCSRF(t *testing.T) {
	protect := CSRF(DefaultCSRFConfig([]byte("12345678901234567890123456789012"), false))
	h := SkipCSRF("/api/revalidate")(protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name   string
		path   string
		bearer bool
		cookie bool
		want   int
	}{
		{"skipped path", "/api/revalidate", false, false, http.StatusOK},
		{"bearer caller", "/api/admin/services", true, false, http.StatusOK},
		{"cookie caller", "/api/admin/services", false, true, http.StatusForbidden},
		{"cookie and bearer", "/api/admin/services", true, true, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set("Sec-Fetch-Site", "cross-site")
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer token")
			}
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
