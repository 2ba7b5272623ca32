// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Backend names reported by Manager.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ManagerOptions configures the cache manager.
type ManagerOptions struct {
	RedisURL string
	Prefix   string
	TTL      time.Duration
	MaxSize  int
}

// Manager owns the cache backend and the page cache built on it.
type Manager struct {
	Pages *PageCache

	backend     Cacher
	backendName string
	startedAt   time.Time
}

// NewManager picks Redis when a URL is configured and reachable, and falls
// back to process memory otherwise.
func NewManager(opts ManagerOptions, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}

	var backend Cacher
	name := BackendMemory
	if opts.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(opts.RedisURL, opts.Prefix, opts.TTL)
		if err != nil {
			logger.Warn("redis unavailable, falling back to memory cache",
				"category", "cache", "error", err)
		} else {
			backend, name = rc, BackendRedis
		}
	}
	if backend == nil {
		backend = NewMemoryCache(MemoryCacheOptions{
			DefaultTTL:      opts.TTL,
			MaxSize:         opts.MaxSize,
			CleanupInterval: time.Minute,
		})
	}

	logger.Info("page cache ready", "backend", name, "ttl", opts.TTL)
	return NewManagerWithBackend(backend, name, opts.TTL)
}

// NewManagerWithBackend wraps an existing backend.
func NewManagerWithBackend(backend Cacher, name string, ttl time.Duration) *Manager {
	return &Manager{
		Pages:       NewPageCache(backend, ttl),
		backend:     backend,
		backendName: name,
		startedAt:   time.Now().UTC(),
	}
}

// Backend returns the backend name.
func (m *Manager) Backend() string {
	return m.backendName
}

// ManagerStats is the admin view of the cache.
type ManagerStats struct {
	Backend   string    `json:"backend"`
	StartedAt time.Time `json:"started_at"`
	Stats
}

// Stats returns backend statistics.
func (m *Manager) Stats() ManagerStats {
	out := ManagerStats{Backend: m.backendName, StartedAt: m.startedAt}
	if sp, ok := m.backend.(StatsProvider); ok {
		out.Stats = sp.Stats()
	}
	return out
}

// ClearAll drops every cached page and resets counters.
func (m *Manager) ClearAll(ctx context.Context) error {
	if err := m.Pages.Clear(ctx); err != nil {
		return err
	}
	if sp, ok := m.backend.(StatsProvider); ok {
		sp.ResetStats()
	}
	return nil
}

// Ping reports backend health. Memory backends are always healthy.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.backend.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
