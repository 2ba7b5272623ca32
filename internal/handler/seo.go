// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nxtech/nxtech-site/internal/seo"
	"github.com/nxtech/nxtech-site/internal/store"
)

// listingPages are the public listing routes, in sitemap order.
var listingPages = []string{"/about", "/services", "/industries", "/portfolio", "/blog", "/careers"}

// SEOHandler serves robots.txt and a sitemap built from live content.
// Neither goes through the page cache, so the sitemap is never stale.
type SEOHandler struct {
	queries     *store.Queries
	siteURL     string
	disallowAll bool
	now         func() time.Time
}

// NewSEOHandler creates an SEOHandler. An empty siteURL falls back to the
// request host. disallowAll blocks every crawler.
func NewSEOHandler(db *sql.DB, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{
		queries:     store.New(db),
		siteURL:     siteURL,
		disallowAll: disallowAll,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.disallowAll,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	var (
		services   []store.Service
		industries []store.Industry
		portfolios []store.Portfolio
		blogs      []store.Blog
		jobs       []store.Job
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		services, err = h.queries.ListActiveServices(ctx)
		return err
	})
	g.Go(func() (err error) {
		industries, err = h.queries.ListActiveIndustries(ctx)
		return err
	})
	g.Go(func() (err error) {
		portfolios, err = h.queries.ListActivePortfolios(ctx, 0)
		return err
	})
	g.Go(func() (err error) {
		blogs, err = h.queries.ListPublishedBlogs(ctx, store.ListPublishedBlogsParams{Now: h.now()})
		return err
	})
	g.Go(func() (err error) {
		jobs, err = h.queries.ListActiveJobs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	b := seo.NewSitemapBuilder(h.baseURL(r))
	b.AddHomepage()
	for _, p := range listingPages {
		b.AddListing(p)
	}
	for _, s := range services {
		b.AddEntries([]seo.Entry{{Path: "/services/" + s.Slug, UpdatedAt: s.UpdatedAt}})
	}
	for _, i := range industries {
		b.AddEntries([]seo.Entry{{Path: "/industries/" + i.Slug, UpdatedAt: i.UpdatedAt}})
	}
	for _, p := range portfolios {
		b.AddEntries([]seo.Entry{{Path: "/portfolio/" + p.Slug, UpdatedAt: p.UpdatedAt}})
	}
	for _, bl := range blogs {
		b.AddEntries([]seo.Entry{{Path: "/blog/" + bl.Slug, UpdatedAt: bl.UpdatedAt}})
	}
	for _, j := range jobs {
		b.AddEntries([]seo.Entry{{Path: "/careers/" + strconv.FormatInt(j.ID, 10), UpdatedAt: j.UpdatedAt}})
	}

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "building sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
