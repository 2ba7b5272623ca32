// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const jobColumns = `id, title, department, location, employment_type, description, requirements, display_order, is_active, created_at, updated_at`

func scanJob(row rowScanner) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.EmploymentType, &j.Description, &j.Requirements,
		&j.DisplayOrder, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

type JobParams struct {
	Title          string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Requirements   string
	DisplayOrder   sql.NullInt64
	IsActive       bool
}

func (q *Queries) CreateJob(ctx context.Context, arg JobParams, now time.Time) (Job, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO jobs
(title, department, location, employment_type, description, requirements, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+jobColumns,
		arg.Title, arg.Department, arg.Location, arg.EmploymentType, arg.Description, arg.Requirements,
		arg.DisplayOrder, arg.IsActive, now, now)
	return scanJob(row)
}

func (q *Queries) UpdateJob(ctx context.Context, id int64, arg JobParams, now time.Time) (Job, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE jobs SET
title = ?, department = ?, location = ?, employment_type = ?, description = ?, requirements = ?,
display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+jobColumns,
		arg.Title, arg.Department, arg.Location, arg.EmploymentType, arg.Description, arg.Requirements,
		arg.DisplayOrder, arg.IsActive, now, id)
	return scanJob(row)
}

func (q *Queries) GetJob(ctx context.Context, id int64) (Job, error) {
	return scanJob(q.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
}

func (q *Queries) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs`+listingOrder)
	return collect(rows, err, scanJob)
}

func (q *Queries) ListActiveJobs(ctx context.Context) ([]Job, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE is_active = 1`+listingOrder)
	return collect(rows, err, scanJob)
}

func (q *Queries) DeleteJob(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}
