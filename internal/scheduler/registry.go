// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrUnknownJob is returned when triggering a job that was never registered.
var ErrUnknownJob = errors.New("unknown job")

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name        string
	description string
	schedule    string
	timeout     time.Duration
	entryID     cron.EntryID
	fn          JobFunc

	running  sync.Mutex
	mu       sync.RWMutex
	lastRun  time.Time
	lastErr  string
	duration time.Duration
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Schedule    string        `json:"schedule"`
	LastRun     time.Time     `json:"lastRun,omitzero"`
	LastError   string        `json:"lastError,omitempty"`
	Duration    time.Duration `json:"durationNs,omitempty"`
	NextRun     time.Time     `json:"nextRun,omitzero"`
}

// Registry tracks the jobs added to one cron instance so they can be listed
// and run on demand from the admin API.
type Registry struct {
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// NewRegistry creates a registry on c.
func NewRegistry(c *cron.Cron, logger *slog.Logger) *Registry {
	return &Registry{
		cron:   c,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		jobs:   make(map[string]*registeredJob),
	}
}

// Add schedules fn under name. Each run gets a context bounded by timeout.
func (r *Registry) Add(name, description, schedule string, timeout time.Duration, fn JobFunc) error {
	job := &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		timeout:     timeout,
		fn:          fn,
	}

	id, err := r.cron.AddFunc(schedule, func() {
		_ = r.run(context.Background(), job)
	})
	if err != nil {
		return fmt.Errorf("adding job %s: %w", name, err)
	}
	job.entryID = id

	r.mu.Lock()
	r.jobs[name] = job
	r.mu.Unlock()
	return nil
}

// Trigger runs a job immediately and returns its error. A run already in
// progress for the same job is waited for first.
func (r *Registry) Trigger(ctx context.Context, name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return r.run(ctx, job)
}

func (r *Registry) run(parent context.Context, job *registeredJob) error {
	job.running.Lock()
	defer job.running.Unlock()

	ctx, cancel := context.WithTimeout(parent, job.timeout)
	defer cancel()

	start := r.now()
	err := job.fn(ctx)
	elapsed := r.now().Sub(start)

	job.mu.Lock()
	job.lastRun = start
	job.duration = elapsed
	job.lastErr = ""
	if err != nil {
		job.lastErr = err.Error()
	}
	job.mu.Unlock()

	if err != nil {
		r.logger.Error("scheduled job failed", "category", "scheduler", "job", job.name, "error", err)
	} else {
		r.logger.Debug("scheduled job finished", "job", job.name, "duration", elapsed)
	}
	return err
}

// List returns every registered job sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		job.mu.RLock()
		info := JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
			LastRun:     job.lastRun,
			LastError:   job.lastErr,
			Duration:    job.duration,
		}
		job.mu.RUnlock()
		if e := r.cron.Entry(job.entryID); e.Valid() {
			info.NextRun = e.Next
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
