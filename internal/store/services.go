// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const serviceColumns = `id, title, slug, short_description, description, icon, image, display_order, is_active, created_at, updated_at`

func scanService(row rowScanner) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.ShortDescription, &s.Description, &s.Icon, &s.Image,
		&s.DisplayOrder, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

type ServiceParams struct {
	Title            string
	Slug             string
	ShortDescription string
	Description      string
	Icon             string
	Image            string
	DisplayOrder     sql.NullInt64
	IsActive         bool
}

func (q *Queries) CreateService(ctx context.Context, arg ServiceParams, now time.Time) (Service, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO services
(title, slug, short_description, description, icon, image, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+serviceColumns,
		arg.Title, arg.Slug, arg.ShortDescription, arg.Description, arg.Icon, arg.Image,
		arg.DisplayOrder, arg.IsActive, now, now)
	return scanService(row)
}

func (q *Queries) UpdateService(ctx context.Context, id int64, arg ServiceParams, now time.Time) (Service, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE services SET
title = ?, slug = ?, short_description = ?, description = ?, icon = ?, image = ?, display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+serviceColumns,
		arg.Title, arg.Slug, arg.ShortDescription, arg.Description, arg.Icon, arg.Image,
		arg.DisplayOrder, arg.IsActive, now, id)
	return scanService(row)
}

func (q *Queries) GetService(ctx context.Context, id int64) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
}

func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE slug = ?`, slug))
}

func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services`+listingOrder)
	return collect(rows, err, scanService)
}

func (q *Queries) ListActiveServices(ctx context.Context) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_active = 1`+listingOrder)
	return collect(rows, err, scanService)
}

func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	return err
}
