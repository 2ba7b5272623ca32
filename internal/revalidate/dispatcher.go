// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package revalidate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Backend is one place cached renders live: the local page cache, a remote
// frontend, a CDN.
type Backend interface {
	Name() string
	InvalidatePath(ctx context.Context, path string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Invalidator is what mutation code depends on. Neither method reports
// failure: a failed purge is logged and the cache TTL takes over.
type Invalidator interface {
	InvalidateStaticPaths(ctx context.Context, paths []string)
	InvalidateDynamicPath(ctx context.Context, path string)
}

// Dispatcher fans invalidations out to every backend.
type Dispatcher struct {
	backends []Backend
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over backends.
func NewDispatcher(logger *slog.Logger, backends ...Backend) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{backends: backends, logger: logger}
}

// InvalidateStaticPaths purges each path on each backend. A failure on one
// path or backend does not stop the rest.
func (d *Dispatcher) InvalidateStaticPaths(ctx context.Context, paths []string) {
	for _, p := range paths {
		d.InvalidateDynamicPath(ctx, p)
	}
}

// InvalidateDynamicPath purges a single path on each backend.
func (d *Dispatcher) InvalidateDynamicPath(ctx context.Context, path string) {
	path = normalizePath(path)
	if path == "" {
		return
	}
	for _, b := range d.backends {
		if err := b.InvalidatePath(ctx, path); err != nil {
			d.logger.Warn("revalidation failed",
				"category", "revalidate",
				"backend", b.Name(),
				"path", path,
				"error", err)
			continue
		}
		d.logger.Debug("path revalidated", "backend", b.Name(), "path", path)
	}
}

// InvalidateTarget purges a kind's listing paths and every cached detail
// page under its prefix.
func (d *Dispatcher) InvalidateTarget(ctx context.Context, t Target) {
	d.InvalidateStaticPaths(ctx, t.ListingPaths)
	if !t.HasDetail() {
		return
	}
	for _, b := range d.backends {
		if err := b.InvalidatePrefix(ctx, t.DetailPrefix); err != nil {
			d.logger.Warn("revalidation failed",
				"category", "revalidate",
				"backend", b.Name(),
				"prefix", t.DetailPrefix,
				"error", err)
		}
	}
}

// InvalidateTag resolves tag to a kind and purges its target.
func (d *Dispatcher) InvalidateTag(ctx context.Context, tag string) error {
	kind, ok := ParseTag(tag)
	if !ok {
		return fmt.Errorf("unknown revalidation tag %q", tag)
	}
	d.InvalidateTarget(ctx, MustTarget(kind))
	return nil
}

// InvalidateAllListings purges every listing path of every kind.
func (d *Dispatcher) InvalidateAllListings(ctx context.Context) {
	d.InvalidateStaticPaths(ctx, AllListingPaths())
}

// normalizePath keeps paths in the form the page cache stores them:
// leading slash, no trailing slash, no query.
func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

var _ Invalidator = (*Dispatcher)(nil)
