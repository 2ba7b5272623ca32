// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"slices"
	"time"

	"github.com/nxtech/nxtech-site/internal/revalidate"
)

// purgeTimeout bounds the invalidation phase once it is detached from the
// caller's context.
const purgeTimeout = 10 * time.Second

// Entity describes how Revalidating reads and removes a T and how it maps
// a T onto public URLs.
type Entity[T any] struct {
	Load   func(ctx context.Context, id int64) (T, error)
	Remove func(ctx context.Context, id int64) error
	// Key is the detail URL segment: the slug, or the id for id-keyed kinds.
	Key func(T) string
	// Visible reports whether T is shown on public pages at now.
	Visible func(T, time.Time) bool
	// Related returns pages of other kinds that render data from rows.
	// Optional.
	Related func(ctx context.Context, rows ...T) []string
}

// Revalidating wraps every write to one content kind so that cached public
// pages are purged after the store has changed. The order inside a call is
// fixed: read the current row, write, then invalidate. The invalidation
// phase outlives a cancelled caller since the write has already committed.
type Revalidating[T any] struct {
	target revalidate.Target
	entity Entity[T]
	inv    revalidate.Invalidator
	now    func() time.Time
}

// NewRevalidating creates a revalidating repository for target.
func NewRevalidating[T any](target revalidate.Target, entity Entity[T], inv revalidate.Invalidator) *Revalidating[T] {
	return &Revalidating[T]{
		target: target,
		entity: entity,
		inv:    inv,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Get loads a row, mapping a missing row to ErrNotFound.
func (r *Revalidating[T]) Get(ctx context.Context, id int64) (T, error) {
	v, err := r.entity.Load(ctx, id)
	return v, notFound(err)
}

// Create runs insert and then purges the listing paths, plus the detail
// path and related pages when the new row is already visible.
func (r *Revalidating[T]) Create(ctx context.Context, insert func(ctx context.Context) (T, error)) (T, error) {
	created, err := insert(ctx)
	if err != nil {
		return created, err
	}

	ctx, cancel := detach(ctx)
	defer cancel()

	r.inv.InvalidateStaticPaths(ctx, r.target.ListingPaths)
	if r.entity.Visible(created, r.now()) {
		r.invalidateDetail(ctx, r.entity.Key(created))
		r.invalidateRelated(ctx, created)
	}
	return created, nil
}

// Update loads the current row, hands it to apply (which validates and
// writes), then purges:
//   - the listing paths, always;
//   - the new detail path, when the row was visible before or after;
//   - the old detail path, when the key changed and the row was visible before;
//   - related pages of the visible before and after rows.
func (r *Revalidating[T]) Update(ctx context.Context, id int64, apply func(ctx context.Context, current T) (T, error)) (T, error) {
	before, err := r.Get(ctx, id)
	if err != nil {
		return before, err
	}
	wasVisible := r.entity.Visible(before, r.now())

	after, err := apply(ctx, before)
	if err != nil {
		return after, notFound(err)
	}
	isVisible := r.entity.Visible(after, r.now())

	ctx, cancel := detach(ctx)
	defer cancel()

	r.inv.InvalidateStaticPaths(ctx, r.target.ListingPaths)

	oldKey, newKey := r.entity.Key(before), r.entity.Key(after)
	if wasVisible || isVisible {
		r.invalidateDetail(ctx, newKey)
	}
	if oldKey != newKey && wasVisible {
		r.invalidateDetail(ctx, oldKey)
	}

	var shown []T
	if wasVisible {
		shown = append(shown, before)
	}
	if isVisible {
		shown = append(shown, after)
	}
	r.invalidateRelated(ctx, shown...)
	return after, nil
}

// Delete loads the row, removes it, then purges the listing paths and the
// row's detail path. The deleted row is returned.
func (r *Revalidating[T]) Delete(ctx context.Context, id int64) (T, error) {
	return r.DeleteGuarded(ctx, id, nil)
}

// DeleteGuarded is Delete with a check that runs after the load and before
// the removal. A guard error aborts the delete with nothing purged.
func (r *Revalidating[T]) DeleteGuarded(ctx context.Context, id int64, guard func(ctx context.Context, current T) error) (T, error) {
	before, err := r.Get(ctx, id)
	if err != nil {
		return before, err
	}
	if guard != nil {
		if err := guard(ctx, before); err != nil {
			return before, err
		}
	}

	if err := r.entity.Remove(ctx, id); err != nil {
		return before, err
	}

	ctx, cancel := detach(ctx)
	defer cancel()

	r.inv.InvalidateStaticPaths(ctx, r.target.ListingPaths)
	r.invalidateDetail(ctx, r.entity.Key(before))
	if r.entity.Visible(before, r.now()) {
		r.invalidateRelated(ctx, before)
	}
	return before, nil
}

func (r *Revalidating[T]) invalidateDetail(ctx context.Context, key string) {
	if p := r.target.DetailPath(key); p != "" {
		r.inv.InvalidateDynamicPath(ctx, p)
	}
}

func (r *Revalidating[T]) invalidateRelated(ctx context.Context, rows ...T) {
	if r.entity.Related == nil || len(rows) == 0 {
		return
	}
	paths := r.entity.Related(ctx, rows...)
	slices.Sort(paths)
	paths = slices.Compact(paths)
	if len(paths) > 0 {
		r.inv.InvalidateStaticPaths(ctx, paths)
	}
}

// detach keeps the caller's values but not its cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), purgeTimeout)
}
