// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic jobs on a cron clock.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
)

// Job names.
const (
	JobPublishBlogs    = "publish-scheduled-blogs"
	JobRefreshListings = "refresh-listings"
	JobPruneEvents     = "prune-events"
	JobReloadGeoIP     = "reload-geoip"
)

const defaultJobTimeout = 2 * time.Minute

// BlogPublisher publishes scheduled blogs that are due.
type BlogPublisher interface {
	PublishDue(ctx context.Context) ([]store.Blog, error)
}

// ListingRefresher revalidates every public listing page.
type ListingRefresher interface {
	InvalidateAllListings(ctx context.Context)
}

// EventLog records and prunes admin-visible events.
type EventLog interface {
	LogEvent(ctx context.Context, level, category, message string, userID int64, metadata map[string]any) error
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// GeoIPReloader reopens the GeoIP database when its file changed.
type GeoIPReloader interface {
	Enabled() bool
	Reload() (bool, error)
}

// Deps are the services the jobs operate on. GeoIP may be nil.
type Deps struct {
	Blogs     BlogPublisher
	Listings  ListingRefresher
	Events    EventLog
	GeoIP     GeoIPReloader
	Retention time.Duration
}

// Scheduler owns the cron instance and its jobs. Schedules are in UTC.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	deps     Deps
	logger   *slog.Logger
}

// New creates a scheduler; call Start to register and run the jobs.
func New(deps Deps, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithLocation(time.UTC))
	return &Scheduler{
		cron:     c,
		registry: NewRegistry(c, logger),
		deps:     deps,
		logger:   logger,
	}
}

// Registry exposes the job registry for listing and manual triggers.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Start registers the jobs and starts the cron clock.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name, desc, spec string
		fn               JobFunc
	}{
		{JobPublishBlogs, "Publish blogs whose scheduled time has passed", "* * * * *", s.publishScheduledBlogs},
		{JobRefreshListings, "Revalidate every public listing page", "@hourly", s.refreshListings},
		{JobPruneEvents, "Delete events older than the retention window", "0 3 * * *", s.pruneEvents},
	}
	if s.deps.GeoIP != nil && s.deps.GeoIP.Enabled() {
		jobs = append(jobs, struct {
			name, desc, spec string
			fn               JobFunc
		}{JobReloadGeoIP, "Reload the GeoIP database if the file changed", "0 4 * * *", s.reloadGeoIP})
	}

	for _, j := range jobs {
		if err := s.registry.Add(j.name, j.desc, j.spec, defaultJobTimeout, j.fn); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) publishScheduledBlogs(ctx context.Context) error {
	published, err := s.deps.Blogs.PublishDue(ctx)
	for _, b := range published {
		meta := map[string]any{
			"blog_id": b.ID,
			"slug":    b.Slug,
		}
		if b.PublishedAt.Valid {
			meta["published_at"] = b.PublishedAt.Time.Format(time.RFC3339)
		}
		if logErr := s.deps.Events.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryScheduler,
			"Blog published by scheduler: "+b.Title, 0, meta); logErr != nil {
			s.logger.Warn("failed to record scheduled publish event", "blog_id", b.ID, "error", logErr)
		}
	}
	if len(published) > 0 {
		s.logger.Info("published scheduled blogs", "count", len(published))
	}
	if err != nil {
		return fmt.Errorf("publishing scheduled blogs: %w", err)
	}
	return nil
}

func (s *Scheduler) refreshListings(ctx context.Context) error {
	s.deps.Listings.InvalidateAllListings(ctx)
	return nil
}

func (s *Scheduler) pruneEvents(ctx context.Context) error {
	n, err := s.deps.Events.Prune(ctx, s.deps.Retention)
	if err != nil {
		return fmt.Errorf("pruning events: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned old events", "count", n, "retention", s.deps.Retention)
	}
	return nil
}

func (s *Scheduler) reloadGeoIP(_ context.Context) error {
	reloaded, err := s.deps.GeoIP.Reload()
	if err != nil {
		return fmt.Errorf("reloading geoip: %w", err)
	}
	if reloaded {
		s.logger.Info("geoip database reloaded")
	}
	return nil
}
