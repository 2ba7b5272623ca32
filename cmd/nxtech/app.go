// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/nxtech/nxtech-site/internal/auth"
	"github.com/nxtech/nxtech-site/internal/cache"
	"github.com/nxtech/nxtech-site/internal/config"
	"github.com/nxtech/nxtech-site/internal/dashboard"
	"github.com/nxtech/nxtech-site/internal/geoip"
	"github.com/nxtech/nxtech-site/internal/handler"
	"github.com/nxtech/nxtech-site/internal/imaging"
	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/revalidate"
	"github.com/nxtech/nxtech-site/internal/scheduler"
	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/session"
	"github.com/nxtech/nxtech-site/internal/storage"
	"github.com/nxtech/nxtech-site/internal/store"
)

// app holds the long-lived components shared by the router and the
// scheduler.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	logger *slog.Logger

	cache      *cache.Manager
	dispatcher *revalidate.Dispatcher
	geoip      *geoip.Resolver
	codec      *auth.TokenCodec
	visitors   *session.Visitors
	protection *middleware.LoginProtection
	tmpl       *template.Template

	content     *service.ContentService
	blogs       *service.BlogService
	submissions *service.SubmissionService
	users       *service.UserService
	events      *service.EventService
	uploads     *service.UploadService
	dashboard   *dashboard.Aggregator

	scheduler *scheduler.Scheduler
}

// newApp wires every component from cfg. Background goroutines owned by
// the login protection stop when ctx is cancelled; the rest stop in Close.
func newApp(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, db: db, logger: logger}

	a.cache = cache.NewManager(cache.ManagerOptions{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.CachePrefix,
		TTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:  cfg.CacheMaxSize,
	}, logger)

	backends := []revalidate.Backend{revalidate.NewPageCacheBackend(a.cache.Pages)}
	if cfg.RevalidateHookURL != "" {
		backends = append(backends, revalidate.NewHookBackend(cfg.RevalidateHookURL, cfg.RevalidateSecret, nil))
		logger.Info("remote revalidation hook enabled", "url", cfg.RevalidateHookURL)
	}
	a.dispatcher = revalidate.NewDispatcher(logger, backends...)

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		// Leads are still accepted, just without a country.
		logger.Warn("geoip database unavailable", "category", "system", "path", cfg.GeoIPDBPath, "error", err)
	}
	a.geoip = resolver

	objects, err := newObjectStore(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("upload storage ready", "backend", objects.Name())

	tmpl, err := handler.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	a.tmpl = tmpl

	a.codec = auth.NewTokenCodec(cfg.SessionSecret, cfg.TokenTTL)
	a.visitors = session.New(db, cfg.IsDevelopment())
	a.protection = middleware.NewLoginProtection(ctx, middleware.DefaultLoginProtectionConfig())

	a.content = service.NewContentService(db, a.dispatcher)
	a.blogs = service.NewBlogService(db, a.dispatcher)
	a.submissions = service.NewSubmissionService(db, a.geoip, logger)
	a.users = service.NewUserService(db)
	a.events = service.NewEventService(db)
	a.uploads = service.NewUploadService(objects, imaging.NewProcessor(imaging.DefaultOptions), cfg.UploadMaxBytes(), logger)
	a.dashboard = dashboard.NewAggregator(store.New(db))

	a.scheduler = scheduler.New(scheduler.Deps{
		Blogs:     a.blogs,
		Listings:  a.dispatcher,
		Events:    a.events,
		GeoIP:     a.geoip,
		Retention: time.Duration(cfg.EventRetentionDays) * 24 * time.Hour,
	}, logger)

	return a, nil
}

func newObjectStore(cfg *config.Config) (storage.Store, error) {
	if !cfg.UseS3() {
		return storage.NewLocalStore(cfg.UploadsDir, "/uploads"), nil
	}
	s3, err := storage.NewS3Store(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring s3 storage: %w", err)
	}
	return s3, nil
}

// Close releases the cache, the visitor session sweeper and the GeoIP
// database.
func (a *app) Close() {
	a.visitors.Close()
	if err := a.cache.Close(); err != nil {
		a.logger.Error("error closing cache", "error", err)
	}
	if a.geoip != nil {
		if err := a.geoip.Close(); err != nil {
			a.logger.Error("error closing geoip database", "error", err)
		}
	}
}
