// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/auth"
	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/testutil"
)

const (
	testSecret        = "0123456789abcdef0123456789abcdef"
	testAdminEmail    = "admin@nxtech.test"
	testAdminPassword = "admin-password"
)

func ptr[T any](v T) *T { return &v }

// testApp wires the services a handler test needs on a fresh database.
type testApp struct {
	db          *sql.DB
	trace       *testutil.Trace
	content     *service.ContentService
	blogs       *service.BlogService
	submissions *service.SubmissionService
	users       *service.UserService
	events      *service.EventService
	codec       *auth.TokenCodec
	tmpl        *template.Template
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(context.Background(), db, store.SeedOptions{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}))
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	trace := &testutil.Trace{}
	inv := testutil.RecordingInvalidator{Trace: trace}
	return &testApp{
		db:          db,
		trace:       trace,
		content:     service.NewContentService(db, inv),
		blogs:       service.NewBlogService(db, inv),
		submissions: service.NewSubmissionService(db, nil, testutil.TestLogger()),
		users:       service.NewUserService(db),
		events:      service.NewEventService(db),
		codec:       auth.NewTokenCodec(testSecret, time.Hour),
		tmpl:        tmpl,
	}
}

// adminID returns the id of the seeded admin.
func (a *testApp) adminID(t *testing.T) int64 {
	t.Helper()
	u, err := store.New(a.db).GetUserByEmail(context.Background(), testAdminEmail)
	require.NoError(t, err)
	return u.ID
}

// asAdmin attaches the seeded admin's session the way the gate does.
func (a *testApp) asAdmin(t *testing.T, r *http.Request) *http.Request {
	t.Helper()
	s := auth.Session{UserID: a.adminID(t), IsAdmin: true}
	return r.WithContext(middleware.WithSession(r.Context(), s))
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	tok, _, err := a.codec.Sign(auth.Session{UserID: a.adminID(t), IsAdmin: true})
	require.NoError(t, err)
	return tok
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
