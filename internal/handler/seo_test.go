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
)

func TestSEOHandler_Sitemap(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.content.CreateService(ctx, service.ServiceInput{Title: ptr("Cloud Migration"), ShortDescription: ptr("x")})
	require.NoError(t, err)
	_, err = app.content.CreateService(ctx, service.ServiceInput{Title: ptr("Retired"), ShortDescription: ptr("x"), IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = app.blogs.CreateBlog(ctx, service.BlogInput{Title: ptr("Launch"), Content: ptr("x"), Published: ptr(true)})
	require.NoError(t, err)
	_, err = app.blogs.CreateBlog(ctx, service.BlogInput{Title: ptr("Unfinished"), Content: ptr("x")})
	require.NoError(t, err)
	job, err := app.content.CreateJob(ctx, service.JobInput{
		Title: ptr("SRE"), Location: ptr("Remote"), Description: ptr("Pager"),
	})
	require.NoError(t, err)

	h := NewSEOHandler(app.db, "https://nxtech.io", false)
	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	for _, loc := range []string{
		"<loc>https://nxtech.io/</loc>",
		"<loc>https://nxtech.io/services</loc>",
		"<loc>https://nxtech.io/services/cloud-migration</loc>",
		"<loc>https://nxtech.io/blog/launch</loc>",
		"<loc>https://nxtech.io/careers/" + strconv.FormatInt(job.ID, 10) + "</loc>",
	} {
		assert.Contains(t, body, loc)
	}
	assert.NotContains(t, body, "/services/retired")
	assert.NotContains(t, body, "/blog/unfinished")
}

func TestSEOHandler_Robots(t *testing.T) {
	app := newTestApp(t)

	h := NewSEOHandler(app.db, "", false)
	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "nxtech.example"
	w := httptest.NewRecorder()
	h.Robots(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), "Disallow: /dashboard")
	assert.Contains(t, w.Body.String(), "Sitemap: http://nxtech.example/sitemap.xml")

	staging := NewSEOHandler(app.db, "https://staging.nxtech.io", true)
	w = httptest.NewRecorder()
	staging.Robots(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Equal(t, "User-agent: *\nDisallow: /\n", w.Body.String())
}
