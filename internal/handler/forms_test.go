// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/session"
)

func TestFormsHandler_Apply(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	job, err := app.content.CreateJob(ctx, service.JobInput{
		Title: ptr("Designer"), Location: ptr("Berlin"), Description: ptr("Draw"),
	})
	require.NoError(t, err)
	closed, err := app.content.CreateJob(ctx, service.JobInput{
		Title: ptr("Old"), Location: ptr("Berlin"), Description: ptr("Gone"), IsActive: ptr(false),
	})
	require.NoError(t, err)

	h := NewFormsHandler(app.submissions, nil)
	apply := func(jobID int64, body any) *httptest.ResponseRecorder {
		id := strconv.FormatInt(jobID, 10)
		req := requestWithURLParams(jsonRequest(t, http.MethodPost, "/api/jobs/"+id+"/applications", body),
			map[string]string{"id": id})
		w := httptest.NewRecorder()
		h.Apply(w, req)
		return w
	}

	w := apply(job.ID, service.ApplicationInput{Name: "Ada", Email: "ada@example.com"})
	assertStatus(t, w.Code, http.StatusCreated)
	app1 := decodeBody[ApplicationView](t, w)
	assert.Equal(t, job.ID, app1.JobID)
	assert.Equal(t, "NEW", app1.Status)

	assertStatus(t, apply(closed.ID, service.ApplicationInput{Name: "Ada", Email: "ada@example.com"}).Code, http.StatusNotFound)
	assertStatus(t, apply(job.ID, service.ApplicationInput{Name: "Ada", Email: "not-an-email"}).Code, http.StatusBadRequest)
}

func TestFormsHandler_Contact(t *testing.T) {
	app := newTestApp(t)
	h := NewFormsHandler(app.submissions, nil)

	req := jsonRequest(t, http.MethodPost, "/api/contact-submissions", service.ContactInput{
		Name: "Grace", Email: "grace@example.com", Message: "Hello",
	})
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	w := httptest.NewRecorder()
	h.Contact(w, req)

	assertStatus(t, w.Code, http.StatusCreated)
	c := decodeBody[ContactView](t, w)
	assert.Equal(t, "Chrome", c.Browser)
	assert.Equal(t, "Windows", c.OS)
	assert.False(t, c.IsRead)
}

func TestFormsHandler_BadJSON(t *testing.T) {
	app := newTestApp(t)
	h := NewFormsHandler(app.submissions, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/quote-requests", nil)
	w := httptest.NewRecorder()
	h.Quote(w, req)
	assertStatus(t, w.Code, http.StatusBadRequest)
}

func TestFormsHandler_ChatLeadSameSession(t *testing.T) {
	app := newTestApp(t)
	visitors := session.New(app.db, true)
	t.Cleanup(visitors.Close)

	h := visitors.Middleware(http.HandlerFunc(NewFormsHandler(app.submissions, visitors).ChatLead))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/chat-leads", service.ChatLeadInput{Email: "lead@example.com"}))
	assertStatus(t, w.Code, http.StatusCreated)
	first := decodeBody[ChatLeadView](t, w)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "session cookie")

	req := jsonRequest(t, http.MethodPost, "/api/chat-leads", service.ChatLeadInput{Name: "Linus"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assertStatus(t, w.Code, http.StatusOK)
	second := decodeBody[ChatLeadView](t, w)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Linus", second.Name)
	assert.Equal(t, "lead@example.com", second.Email)

	leads, err := app.submissions.ListChatLeads(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}
