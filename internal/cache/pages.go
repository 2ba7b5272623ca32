// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

// pageKeyPrefix namespaces rendered pages inside the shared backend.
const pageKeyPrefix = "page:"

// Page is a rendered public response.
type Page struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cached_at"`
}

// PageCache stores rendered public pages keyed by request path. Every
// query-string variant of a path is stored under that path, so
// invalidating a path drops all of its variants.
type PageCache struct {
	pages   *TypedCache[Page]
	backend Cacher
}

// NewPageCache creates a page cache on backend.
func NewPageCache(backend Cacher, ttl time.Duration) *PageCache {
	return &PageCache{
		pages:   NewTypedCache[Page](backend, ttl),
		backend: backend,
	}
}

// PageKey returns the backend key for a path and raw query.
func PageKey(path, rawQuery string) string {
	return pathKey(path) + rawQuery
}

func pathKey(path string) string {
	return pageKeyPrefix + path + "|"
}

// Get returns a cached page.
func (c *PageCache) Get(ctx context.Context, path, rawQuery string) (*Page, bool) {
	return c.pages.Get(ctx, PageKey(path, rawQuery))
}

// Set stores a rendered page.
func (c *PageCache) Set(ctx context.Context, path, rawQuery string, page *Page) error {
	if page.CachedAt.IsZero() {
		page.CachedAt = time.Now().UTC()
	}
	return c.pages.Set(ctx, PageKey(path, rawQuery), page)
}

// Invalidate drops every cached variant of exactly path.
func (c *PageCache) Invalidate(ctx context.Context, path string) error {
	return c.backend.DeleteByPrefix(ctx, pathKey(path))
}

// InvalidatePrefix drops every cached path that starts with prefix.
func (c *PageCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	return c.backend.DeleteByPrefix(ctx, pageKeyPrefix+prefix)
}

// Clear drops every cached page.
func (c *PageCache) Clear(ctx context.Context) error {
	return c.backend.DeleteByPrefix(ctx, pageKeyPrefix)
}
