// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nxtech/nxtech-site/internal/handler"
	"github.com/nxtech/nxtech-site/internal/middleware"
)

// mountResource registers the handlers a Resource sets under pattern.
// Routes: GET /, POST /, GET /{id}, PATCH /{id}, PUT /{id}, DELETE /{id}
func mountResource(r chi.Router, pattern string, res handler.Resource) {
	r.Route(pattern, func(r chi.Router) {
		if res.List != nil {
			r.Get("/", res.List)
		}
		if res.Create != nil {
			r.Post("/", res.Create)
		}
		if res.Get != nil {
			r.Get("/{id}", res.Get)
		}
		if res.Update != nil {
			r.Patch("/{id}", res.Update)
			r.Put("/{id}", res.Update)
		}
		if res.Delete != nil {
			r.Delete("/{id}", res.Delete)
		}
	})
}

// registerPublicPages registers the cached public page routes.
func registerPublicPages(r chi.Router, h *handler.PublicHandler) {
	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/services", h.Services)
	r.Get("/services/{slug}", h.Service)
	r.Get("/industries", h.Industries)
	r.Get("/industries/{slug}", h.Industry)
	r.Get("/portfolio", h.Portfolios)
	r.Get("/portfolio/{slug}", h.Portfolio)
	r.Get("/blog", h.Blogs)
	r.Get("/blog/{slug}", h.Blog)
	r.Get("/careers", h.Careers)
	r.Get("/careers/{id}", h.Career)
}

func newRouter(a *app) http.Handler {
	cfg := a.cfg
	isDev := cfg.IsDevelopment()

	publicH := handler.NewPublicHandler(a.db)
	formsH := handler.NewFormsHandler(a.submissions, a.visitors)
	revalidateH := handler.NewRevalidateHandler(cfg.RevalidateSecret, a.dispatcher, a.logger)
	authH := handler.NewAuthHandler(a.users, a.events, a.codec, a.protection, a.tmpl, !isDev)
	adminH := handler.NewAdminHandler(a.content, a.blogs, a.submissions, a.users, a.events)
	dashH := handler.NewDashboardHandler(a.dashboard, a.tmpl)
	uploadH := handler.NewUploadHandler(a.uploads)
	cacheH := handler.NewCacheHandler(a.cache, a.events)
	schedH := handler.NewSchedulerHandler(a.scheduler.Registry())
	seoH := handler.NewSEOHandler(a.db, cfg.SiteURL, isDev)

	uploadsDir := cfg.UploadsDir
	if cfg.UseS3() {
		uploadsDir = ""
	}
	healthH := handler.NewHealthHandler(a.db, a.cache, a.codec, uploadsDir)

	gate := middleware.NewGate(middleware.DefaultGateConfig(), a.codec)
	csrf := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), isDev))
	limiter := middleware.NewIPRateLimiter(cfg.APIRateLimit, 0)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))
	r.Use(gate.Middleware)

	r.Get("/health", healthH.Health)
	r.Get("/robots.txt", seoH.Robots)
	r.Get("/sitemap.xml", seoH.Sitemap)

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.With(middleware.StaticCache(86400)).Get("/uploads/*", fs.ServeHTTP)
	}

	// Public pages are served from the page cache until a mutation or the
	// revalidation endpoint drops them.
	r.Group(func(r chi.Router) {
		r.Use(middleware.PageCache(a.cache.Pages))
		registerPublicPages(r, publicH)
	})

	// Public API, called cross-origin by the frontend, so no CSRF check.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/api/jobs", publicH.Careers)
		r.Post("/api/jobs/{id}/applications", formsH.Apply)
		r.Post("/api/contact-submissions", formsH.Contact)
		r.Post("/api/quote-requests", formsH.Quote)
		r.With(a.visitors.Middleware).Post("/api/chat-leads", formsH.ChatLead)
		r.Post("/api/revalidate", revalidateH.Revalidate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SkipCSRF())
		r.Use(csrf)

		r.Get(middleware.LoginPath, authH.LoginForm)
		r.With(a.protection.Middleware).Post("/auth/login", authH.Login)
		r.Post("/auth/logout", authH.Logout)

		r.Get("/dashboard", dashH.Page)

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/dashboard/stats", dashH.Stats)
			r.Get("/dashboard/activity", dashH.Activity)

			mountResource(r, "/services", adminH.Services())
			mountResource(r, "/industries", adminH.Industries())
			mountResource(r, "/portfolios", adminH.Portfolios())
			mountResource(r, "/testimonials", adminH.Testimonials())
			mountResource(r, "/team-members", adminH.TeamMembers())
			mountResource(r, "/jobs", adminH.Jobs())
			mountResource(r, "/blogs", adminH.Blogs())
			mountResource(r, "/blog-categories", adminH.BlogCategories())
			mountResource(r, "/applications", adminH.Applications())
			mountResource(r, "/contact-submissions", adminH.Contacts())
			mountResource(r, "/quote-requests", adminH.Quotes())
			mountResource(r, "/chat-leads", adminH.ChatLeads())
			mountResource(r, "/users", adminH.Users())

			r.Post("/uploads", uploadH.Upload)
			r.Get("/events", adminH.Events)
			r.Get("/cache", cacheH.Stats)
			r.Post("/cache/clear", cacheH.Clear)
			r.Get("/scheduler", schedH.List)
			r.Post("/scheduler/{name}/run", schedH.Trigger)
		})
	})

	return r
}
