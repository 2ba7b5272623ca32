// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const industryColumns = `id, name, slug, description, icon, image, display_order, is_active, created_at, updated_at`

func scanIndustry(row rowScanner) (Industry, error) {
	var i Industry
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.Description, &i.Icon, &i.Image,
		&i.DisplayOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

type IndustryParams struct {
	Name         string
	Slug         string
	Description  string
	Icon         string
	Image        string
	DisplayOrder sql.NullInt64
	IsActive     bool
}

func (q *Queries) CreateIndustry(ctx context.Context, arg IndustryParams, now time.Time) (Industry, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO industries
(name, slug, description, icon, image, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+industryColumns,
		arg.Name, arg.Slug, arg.Description, arg.Icon, arg.Image, arg.DisplayOrder, arg.IsActive, now, now)
	return scanIndustry(row)
}

func (q *Queries) UpdateIndustry(ctx context.Context, id int64, arg IndustryParams, now time.Time) (Industry, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE industries SET
name = ?, slug = ?, description = ?, icon = ?, image = ?, display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+industryColumns,
		arg.Name, arg.Slug, arg.Description, arg.Icon, arg.Image, arg.DisplayOrder, arg.IsActive, now, id)
	return scanIndustry(row)
}

func (q *Queries) GetIndustry(ctx context.Context, id int64) (Industry, error) {
	return scanIndustry(q.db.QueryRowContext(ctx, `SELECT `+industryColumns+` FROM industries WHERE id = ?`, id))
}

func (q *Queries) GetIndustryBySlug(ctx context.Context, slug string) (Industry, error) {
	return scanIndustry(q.db.QueryRowContext(ctx, `SELECT `+industryColumns+` FROM industries WHERE slug = ?`, slug))
}

func (q *Queries) ListIndustries(ctx context.Context) ([]Industry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+industryColumns+` FROM industries`+listingOrder)
	return collect(rows, err, scanIndustry)
}

func (q *Queries) ListActiveIndustries(ctx context.Context) ([]Industry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+industryColumns+` FROM industries WHERE is_active = 1`+listingOrder)
	return collect(rows, err, scanIndustry)
}

func (q *Queries) DeleteIndustry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM industries WHERE id = ?`, id)
	return err
}
