// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const teamMemberColumns = `id, name, position, bio, photo, linkedin_url, display_order, is_active, created_at, updated_at`

func scanTeamMember(row rowScanner) (TeamMember, error) {
	var m TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Photo, &m.LinkedinUrl,
		&m.DisplayOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

type TeamMemberParams struct {
	Name         string
	Position     string
	Bio          string
	Photo        string
	LinkedinUrl  string
	DisplayOrder sql.NullInt64
	IsActive     bool
}

func (q *Queries) CreateTeamMember(ctx context.Context, arg TeamMemberParams, now time.Time) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO team_members
(name, position, bio, photo, linkedin_url, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+teamMemberColumns,
		arg.Name, arg.Position, arg.Bio, arg.Photo, arg.LinkedinUrl, arg.DisplayOrder, arg.IsActive, now, now)
	return scanTeamMember(row)
}

func (q *Queries) UpdateTeamMember(ctx context.Context, id int64, arg TeamMemberParams, now time.Time) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE team_members SET
name = ?, position = ?, bio = ?, photo = ?, linkedin_url = ?, display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+teamMemberColumns,
		arg.Name, arg.Position, arg.Bio, arg.Photo, arg.LinkedinUrl, arg.DisplayOrder, arg.IsActive, now, id)
	return scanTeamMember(row)
}

func (q *Queries) GetTeamMember(ctx context.Context, id int64) (TeamMember, error) {
	return scanTeamMember(q.db.QueryRowContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id))
}

func (q *Queries) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members`+listingOrder)
	return collect(rows, err, scanTeamMember)
}

func (q *Queries) ListActiveTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE is_active = 1`+listingOrder)
	return collect(rows, err, scanTeamMember)
}

func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	return err
}
