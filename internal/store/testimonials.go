// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const testimonialColumns = `id, name, role, company, quote, avatar, rating, display_order, is_active, created_at, updated_at`

func scanTestimonial(row rowScanner) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Role, &t.Company, &t.Quote, &t.Avatar, &t.Rating,
		&t.DisplayOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

type TestimonialParams struct {
	Name         string
	Role         string
	Company      string
	Quote        string
	Avatar       string
	Rating       int64
	DisplayOrder sql.NullInt64
	IsActive     bool
}

func (q *Queries) CreateTestimonial(ctx context.Context, arg TestimonialParams, now time.Time) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO testimonials
(name, role, company, quote, avatar, rating, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+testimonialColumns,
		arg.Name, arg.Role, arg.Company, arg.Quote, arg.Avatar, arg.Rating, arg.DisplayOrder, arg.IsActive, now, now)
	return scanTestimonial(row)
}

func (q *Queries) UpdateTestimonial(ctx context.Context, id int64, arg TestimonialParams, now time.Time) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE testimonials SET
name = ?, role = ?, company = ?, quote = ?, avatar = ?, rating = ?, display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+testimonialColumns,
		arg.Name, arg.Role, arg.Company, arg.Quote, arg.Avatar, arg.Rating, arg.DisplayOrder, arg.IsActive, now, id)
	return scanTestimonial(row)
}

func (q *Queries) GetTestimonial(ctx context.Context, id int64) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id))
}

func (q *Queries) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials`+listingOrder)
	return collect(rows, err, scanTestimonial)
}

func (q *Queries) ListActiveTestimonials(ctx context.Context) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE is_active = 1`+listingOrder)
	return collect(rows, err, scanTestimonial)
}

func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	return err
}
