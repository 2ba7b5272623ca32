// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portfolioColumns = `id, title, slug, client, industry_id, summary, content, image, project_url, display_order, is_active, created_at, updated_at`

func scanPortfolio(row rowScanner) (Portfolio, error) {
	var p Portfolio
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Client, &p.IndustryID, &p.Summary, &p.Content, &p.Image,
		&p.ProjectUrl, &p.DisplayOrder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

type PortfolioParams struct {
	Title        string
	Slug         string
	Client       string
	IndustryID   sql.NullInt64
	Summary      string
	Content      string
	Image        string
	ProjectUrl   string
	DisplayOrder sql.NullInt64
	IsActive     bool
}

func (q *Queries) CreatePortfolio(ctx context.Context, arg PortfolioParams, now time.Time) (Portfolio, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO portfolios
(title, slug, client, industry_id, summary, content, image, project_url, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+portfolioColumns,
		arg.Title, arg.Slug, arg.Client, arg.IndustryID, arg.Summary, arg.Content, arg.Image, arg.ProjectUrl,
		arg.DisplayOrder, arg.IsActive, now, now)
	return scanPortfolio(row)
}

func (q *Queries) UpdatePortfolio(ctx context.Context, id int64, arg PortfolioParams, now time.Time) (Portfolio, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE portfolios SET
title = ?, slug = ?, client = ?, industry_id = ?, summary = ?, content = ?, image = ?, project_url = ?,
display_order = ?, is_active = ?, updated_at = ?
WHERE id = ? RETURNING `+portfolioColumns,
		arg.Title, arg.Slug, arg.Client, arg.IndustryID, arg.Summary, arg.Content, arg.Image, arg.ProjectUrl,
		arg.DisplayOrder, arg.IsActive, now, id)
	return scanPortfolio(row)
}

func (q *Queries) GetPortfolio(ctx context.Context, id int64) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE id = ?`, id))
}

func (q *Queries) GetPortfolioBySlug(ctx context.Context, slug string) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE slug = ?`, slug))
}

func (q *Queries) ListPortfolios(ctx context.Context) ([]Portfolio, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios`+listingOrder)
	return collect(rows, err, scanPortfolio)
}

// ListActivePortfolios returns at most limit active portfolios; limit <= 0 means all.
func (q *Queries) ListActivePortfolios(ctx context.Context, limit int64) ([]Portfolio, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := q.db.QueryContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE is_active = 1`+listingOrder+` LIMIT ?`, limit)
	return collect(rows, err, scanPortfolio)
}

func (q *Queries) ListActivePortfoliosByIndustry(ctx context.Context, industryID int64) ([]Portfolio, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios
WHERE is_active = 1 AND industry_id = ?`+listingOrder, industryID)
	return collect(rows, err, scanPortfolio)
}

func (q *Queries) DeletePortfolio(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	return err
}
