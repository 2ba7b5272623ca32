// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/testutil"
)

type fakeBlogs struct {
	published []store.Blog
	err       error
}

func (f *fakeBlogs) PublishDue(context.Context) ([]store.Blog, error) {
	return f.published, f.err
}

type fakeListings struct{ calls int }

func (f *fakeListings) InvalidateAllListings(context.Context) { f.calls++ }

type fakeEvents struct {
	mu        sync.Mutex
	messages  []string
	retention time.Duration
	pruneErr  error
}

func (f *fakeEvents) LogEvent(_ context.Context, _, _, message string, _ int64, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeEvents) Prune(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 3, f.pruneErr
}

type fakeGeoIP struct {
	enabled bool
	reloads int
}

func (f *fakeGeoIP) Enabled() bool { return f.enabled }

func (f *fakeGeoIP) Reload() (bool, error) {
	f.reloads++
	return true, nil
}

func newTestScheduler(t *testing.T, deps Deps) *Scheduler {
	t.Helper()
	s := New(deps, testutil.TestLogger())
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func TestScheduler_RegistersJobs(t *testing.T) {
	s := newTestScheduler(t, Deps{
		Blogs:    &fakeBlogs{},
		Listings: &fakeListings{},
		Events:   &fakeEvents{},
		GeoIP:    &fakeGeoIP{enabled: true},
	})

	jobs := s.Registry().List()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
		assert.False(t, j.NextRun.IsZero(), "job %s has no next run", j.Name)
	}
	assert.Equal(t, []string{JobPruneEvents, JobPublishBlogs, JobRefreshListings, JobReloadGeoIP}, names)
}

func TestScheduler_SkipsGeoIPWhenDisabled(t *testing.T) {
	s := newTestScheduler(t, Deps{
		Blogs:    &fakeBlogs{},
		Listings: &fakeListings{},
		Events:   &fakeEvents{},
		GeoIP:    &fakeGeoIP{},
	})

	err := s.Registry().Trigger(context.Background(), JobReloadGeoIP)
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestScheduler_PublishRecordsEvents(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	blogs := &fakeBlogs{published: []store.Blog{
		{ID: 1, Title: "Launch", Slug: "launch", PublishedAt: sql.NullTime{Time: at, Valid: true}},
		{ID: 2, Title: "Roadmap", Slug: "roadmap", PublishedAt: sql.NullTime{Time: at, Valid: true}},
	}}
	events := &fakeEvents{}
	s := newTestScheduler(t, Deps{Blogs: blogs, Listings: &fakeListings{}, Events: events})

	require.NoError(t, s.Registry().Trigger(context.Background(), JobPublishBlogs))
	assert.Equal(t, []string{
		"Blog published by scheduler: Launch",
		"Blog published by scheduler: Roadmap",
	}, events.messages)

	info := s.Registry().List()
	for _, j := range info {
		if j.Name == JobPublishBlogs {
			assert.False(t, j.LastRun.IsZero())
			assert.Empty(t, j.LastError)
		}
	}
}

func TestScheduler_FailureIsRecorded(t *testing.T) {
	blogs := &fakeBlogs{
		published: []store.Blog{{ID: 1, Title: "Partial", Slug: "partial"}},
		err:       errors.New("database is locked"),
	}
	events := &fakeEvents{}
	s := newTestScheduler(t, Deps{Blogs: blogs, Listings: &fakeListings{}, Events: events})

	err := s.Registry().Trigger(context.Background(), JobPublishBlogs)
	require.Error(t, err)
	assert.Len(t, events.messages, 1, "blogs published before the failure still get an event")

	for _, j := range s.Registry().List() {
		if j.Name == JobPublishBlogs {
			assert.Contains(t, j.LastError, "database is locked")
		}
	}
}

func TestScheduler_RefreshPruneReload(t *testing.T) {
	listings := &fakeListings{}
	events := &fakeEvents{}
	geo := &fakeGeoIP{enabled: true}
	s := newTestScheduler(t, Deps{
		Blogs:     &fakeBlogs{},
		Listings:  listings,
		Events:    events,
		GeoIP:     geo,
		Retention: 30 * 24 * time.Hour,
	})
	ctx := context.Background()

	require.NoError(t, s.Registry().Trigger(ctx, JobRefreshListings))
	require.NoError(t, s.Registry().Trigger(ctx, JobPruneEvents))
	require.NoError(t, s.Registry().Trigger(ctx, JobReloadGeoIP))

	assert.Equal(t, 1, listings.calls)
	assert.Equal(t, 30*24*time.Hour, events.retention)
	assert.Equal(t, 1, geo.reloads)
}

func TestRegistry_JobTimeout(t *testing.T) {
	s := New(Deps{}, testutil.TestLogger())
	r := s.Registry()

	require.NoError(t, r.Add("slow", "waits for its deadline", "@daily", 20*time.Millisecond,
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))

	err := r.Trigger(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegistry_InvalidSchedule(t *testing.T) {
	s := New(Deps{}, testutil.TestLogger())
	err := s.Registry().Add("bad", "", "not a cron spec", time.Second, func(context.Context) error { return nil })
	assert.Error(t, err)
}
