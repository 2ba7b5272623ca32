// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/sync/errgroup"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
)

// Page sizes on the home page.
const (
	homePortfolioLimit = 6
	homeBlogLimit      = 3
)

// Blog bodies are stored as markdown written in the admin editor. The
// rendered HTML is sanitised before it leaves the server.
var (
	markdown      = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlSanitizer = bluemonday.UGCPolicy()
)

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return string(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}

// PublicHandler serves the marketing pages as JSON payloads. Only active
// and published rows are ever returned.
type PublicHandler struct {
	queries *store.Queries
	now     func() time.Time
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(db *sql.DB) *PublicHandler {
	return &PublicHandler{
		queries: store.New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// writeLookupError answers 404 for missing rows and defers to writeError
// for everything else.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	writeError(w, r, err)
}

type HomePage struct {
	Services     []ServiceView     `json:"services"`
	Industries   []IndustryView    `json:"industries"`
	Portfolios   []PortfolioView   `json:"portfolios"`
	Testimonials []TestimonialView `json:"testimonials"`
	Blogs        []BlogView        `json:"blogs"`
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	var (
		services     []store.Service
		industries   []store.Industry
		portfolios   []store.Portfolio
		testimonials []store.Testimonial
		blogs        []store.Blog
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
		portfolios, err = h.queries.ListActivePortfolios(ctx, homePortfolioLimit)
		return err
	})
	g.Go(func() (err error) {
		testimonials, err = h.queries.ListActiveTestimonials(ctx)
		return err
	})
	g.Go(func() (err error) {
		blogs, err = h.queries.ListPublishedBlogs(ctx, store.ListPublishedBlogsParams{Now: now, Limit: homeBlogLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, HomePage{
		Services:     mapAll(services, serviceView),
		Industries:   mapAll(industries, industryView),
		Portfolios:   mapAll(portfolios, portfolioView),
		Testimonials: mapAll(testimonials, testimonialView),
		Blogs:        mapAll(blogs, func(b store.Blog) BlogView { return blogSummary(b, now) }),
	})
}

type AboutPage struct {
	Team         []TeamMemberView  `json:"team"`
	Testimonials []TestimonialView `json:"testimonials"`
}

// About handles GET /about.
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	var (
		team         []store.TeamMember
		testimonials []store.Testimonial
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		team, err = h.queries.ListActiveTeamMembers(ctx)
		return err
	})
	g.Go(func() (err error) {
		testimonials, err = h.queries.ListActiveTestimonials(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AboutPage{
		Team:         mapAll(team, teamMemberView),
		Testimonials: mapAll(testimonials, testimonialView),
	})
}

// Services handles GET /services.
func (h *PublicHandler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListActiveServices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapAll(services, serviceView)))
}

// Service handles GET /services/{slug}.
func (h *PublicHandler) Service(w http.ResponseWriter, r *http.Request) {
	s, err := h.queries.GetServiceBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !s.IsActive {
		err = sql.ErrNoRows
	}
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceView(s))
}

// Industries handles GET /industries.
func (h *PublicHandler) Industries(w http.ResponseWriter, r *http.Request) {
	industries, err := h.queries.ListActiveIndustries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapAll(industries, industryView)))
}

type IndustryPage struct {
	IndustryView
	Portfolios []PortfolioView `json:"portfolios"`
}

// Industry handles GET /industries/{slug}. The payload carries the
// industry's active portfolio entries.
func (h *PublicHandler) Industry(w http.ResponseWriter, r *http.Request) {
	ind, err := h.queries.GetIndustryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !ind.IsActive {
		err = sql.ErrNoRows
	}
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	portfolios, err := h.queries.ListActivePortfoliosByIndustry(r.Context(), ind.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, IndustryPage{
		IndustryView: industryView(ind),
		Portfolios:   mapAll(portfolios, portfolioView),
	})
}

// Portfolios handles GET /portfolio.
func (h *PublicHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.queries.ListActivePortfolios(r.Context(), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapAll(portfolios, portfolioView)))
}

// Portfolio handles GET /portfolio/{slug}.
func (h *PublicHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.queries.GetPortfolioBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !p.IsActive {
		err = sql.ErrNoRows
	}
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolioView(p))
}

type BlogListPage struct {
	Blogs      []BlogView     `json:"blogs"`
	Categories []CategoryView `json:"categories"`
	Category   string         `json:"category,omitempty"`
}

// Blogs handles GET /blog. An optional ?category=slug narrows the list;
// an unknown category is 404.
func (h *PublicHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()
	params := store.ListPublishedBlogsParams{Now: now}

	slug := r.URL.Query().Get("category")
	if slug != "" {
		cat, err := h.queries.GetBlogCategoryBySlug(ctx, slug)
		if err != nil {
			writeLookupError(w, r, err)
			return
		}
		params.CategoryID = sql.NullInt64{Int64: cat.ID, Valid: true}
	}

	var (
		blogs      []store.Blog
		categories []store.BlogCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		blogs, err = h.queries.ListPublishedBlogs(gctx, params)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.queries.ListBlogCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, BlogListPage{
		Blogs:      mapAll(blogs, func(b store.Blog) BlogView { return blogSummary(b, now) }),
		Categories: mapAll(categories, categoryView),
		Category:   slug,
	})
}

type BlogPage struct {
	BlogView
	Category CategoryView `json:"category"`
}

// Blog handles GET /blog/{slug}. Drafts and scheduled posts are 404.
func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	b, err := h.queries.GetBlogBySlug(ctx, chi.URLParam(r, "slug"))
	if err == nil && !model.PublicationFromColumns(b.PublishedAt, b.ScheduledAt, now).Visible() {
		err = sql.ErrNoRows
	}
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	html, err := renderMarkdown(b.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := h.queries.GetBlogCategory(ctx, b.CategoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page := BlogPage{BlogView: blogSummary(b, now), Category: categoryView(cat)}
	page.ContentHTML = html
	writeJSON(w, http.StatusOK, page)
}

// Careers handles GET /careers and GET /api/jobs.
func (h *PublicHandler) Careers(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.queries.ListActiveJobs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapAll(jobs, jobView)))
}

// Career handles GET /careers/{id}.
func (h *PublicHandler) Career(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	j, err := h.queries.GetJob(r.Context(), id)
	if err == nil && !j.IsActive {
		err = sql.ErrNoRows
	}
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobView(j))
}
