// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogColumns = `id, title, slug, excerpt, content, cover_image, author, category_id, read_time, published_at, scheduled_at, created_at, updated_at`

// publishedClause matches rows visible to the public at the bound time.
const publishedClause = `published_at IS NOT NULL AND published_at <= ?`

func scanBlog(row rowScanner) (Blog, error) {
	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.CoverImage, &b.Author, &b.CategoryID,
		&b.ReadTime, &b.PublishedAt, &b.ScheduledAt, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

type BlogParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	CoverImage  string
	Author      string
	CategoryID  int64
	ReadTime    int64
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

func (q *Queries) CreateBlog(ctx context.Context, arg BlogParams, now time.Time) (Blog, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO blogs
(title, slug, excerpt, content, cover_image, author, category_id, read_time, published_at, scheduled_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+blogColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.CoverImage, arg.Author, arg.CategoryID, arg.ReadTime,
		arg.PublishedAt, arg.ScheduledAt, now, now)
	return scanBlog(row)
}

func (q *Queries) UpdateBlog(ctx context.Context, id int64, arg BlogParams, now time.Time) (Blog, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE blogs SET
title = ?, slug = ?, excerpt = ?, content = ?, cover_image = ?, author = ?, category_id = ?, read_time = ?,
published_at = ?, scheduled_at = ?, updated_at = ?
WHERE id = ? RETURNING `+blogColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.CoverImage, arg.Author, arg.CategoryID, arg.ReadTime,
		arg.PublishedAt, arg.ScheduledAt, now, id)
	return scanBlog(row)
}

func (q *Queries) GetBlog(ctx context.Context, id int64) (Blog, error) {
	return scanBlog(q.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id))
}

func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (Blog, error) {
	return scanBlog(q.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug = ?`, slug))
}

func (q *Queries) ListBlogs(ctx context.Context) ([]Blog, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC, id DESC`)
	return collect(rows, err, scanBlog)
}

type ListPublishedBlogsParams struct {
	Now        time.Time
	CategoryID sql.NullInt64 // invalid matches every category
	Limit      int64         // <= 0 means no limit
}

func (q *Queries) ListPublishedBlogs(ctx context.Context, arg ListPublishedBlogsParams) ([]Blog, error) {
	limit := arg.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := q.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs
WHERE `+publishedClause+` AND (? IS NULL OR category_id = ?)
ORDER BY published_at DESC, id DESC LIMIT ?`,
		arg.Now, arg.CategoryID, arg.CategoryID, limit)
	return collect(rows, err, scanBlog)
}

// ListBlogsPublishedSince returns up to limit blogs published in [since, now], newest first.
func (q *Queries) ListBlogsPublishedSince(ctx context.Context, since, now time.Time, limit int64) ([]Blog, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs
WHERE `+publishedClause+` AND published_at >= ?
ORDER BY published_at DESC, id DESC LIMIT ?`,
		now, since, limit)
	return collect(rows, err, scanBlog)
}

func (q *Queries) CountBlogsPublishedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs
WHERE published_at IS NOT NULL AND published_at >= ? AND published_at < ?`, from, to).Scan(&n)
	return n, err
}

// ListDueScheduledBlogs returns blogs whose scheduled publication time has passed.
func (q *Queries) ListDueScheduledBlogs(ctx context.Context, now time.Time) ([]Blog, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs
WHERE scheduled_at IS NOT NULL AND scheduled_at <= ?
ORDER BY scheduled_at ASC`, now)
	return collect(rows, err, scanBlog)
}

func (q *Queries) PublishScheduledBlog(ctx context.Context, id int64, at time.Time) (Blog, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE blogs SET published_at = ?, scheduled_at = NULL, updated_at = ?
WHERE id = ? AND scheduled_at IS NOT NULL RETURNING `+blogColumns, at, at, id)
	return scanBlog(row)
}

func (q *Queries) CountBlogsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs WHERE category_id = ?`, categoryID).Scan(&n)
	return n, err
}

func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	return err
}

const blogCategoryColumns = `id, name, slug, created_at, updated_at`

func scanBlogCategory(row rowScanner) (BlogCategory, error) {
	var c BlogCategory
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (q *Queries) CreateBlogCategory(ctx context.Context, name, slug string, now time.Time) (BlogCategory, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO blog_categories (name, slug, created_at, updated_at)
VALUES (?, ?, ?, ?) RETURNING `+blogCategoryColumns, name, slug, now, now)
	return scanBlogCategory(row)
}

func (q *Queries) UpdateBlogCategory(ctx context.Context, id int64, name, slug string, now time.Time) (BlogCategory, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE blog_categories SET name = ?, slug = ?, updated_at = ?
WHERE id = ? RETURNING `+blogCategoryColumns, name, slug, now, id)
	return scanBlogCategory(row)
}

func (q *Queries) GetBlogCategory(ctx context.Context, id int64) (BlogCategory, error) {
	return scanBlogCategory(q.db.QueryRowContext(ctx, `SELECT `+blogCategoryColumns+` FROM blog_categories WHERE id = ?`, id))
}

func (q *Queries) GetBlogCategoryBySlug(ctx context.Context, slug string) (BlogCategory, error) {
	return scanBlogCategory(q.db.QueryRowContext(ctx, `SELECT `+blogCategoryColumns+` FROM blog_categories WHERE slug = ?`, slug))
}

func (q *Queries) ListBlogCategories(ctx context.Context) ([]BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+blogCategoryColumns+` FROM blog_categories ORDER BY name ASC`)
	return collect(rows, err, scanBlogCategory)
}

func (q *Queries) DeleteBlogCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = ?`, id)
	return err
}
