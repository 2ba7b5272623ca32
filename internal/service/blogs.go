// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/revalidate"
	"github.com/nxtech/nxtech-site/internal/store"
)

// BlogService owns blog and blog-category writes.
type BlogService struct {
	queries *store.Queries
	now     func() time.Time

	blogs      *Revalidating[store.Blog]
	categories *Revalidating[store.BlogCategory]
}

// NewBlogService creates a BlogService.
func NewBlogService(db *sql.DB, inv revalidate.Invalidator) *BlogService {
	q := store.New(db)
	return &BlogService{
		queries: q,
		now:     func() time.Time { return time.Now().UTC() },
		blogs: NewRevalidating(revalidate.MustTarget(revalidate.KindBlog), Entity[store.Blog]{
			Load:    q.GetBlog,
			Remove:  q.DeleteBlog,
			Key:     func(b store.Blog) string { return b.Slug },
			Visible: func(b store.Blog, now time.Time) bool { return Publication(b, now).Visible() },
		}, inv),
		categories: NewRevalidating(revalidate.MustTarget(revalidate.KindBlogCategory), Entity[store.BlogCategory]{
			Load:    q.GetBlogCategory,
			Remove:  q.DeleteBlogCategory,
			Key:     func(c store.BlogCategory) string { return c.Slug },
			Visible: func(store.BlogCategory, time.Time) bool { return true },
			Related: categoryBlogPages(q),
		}, inv),
	}
}

// categoryBlogPages maps categories to the detail pages of their published
// blogs, which render the category name and slug.
func categoryBlogPages(q *store.Queries) func(context.Context, ...store.BlogCategory) []string {
	blog := revalidate.MustTarget(revalidate.KindBlog)
	return func(ctx context.Context, rows ...store.BlogCategory) []string {
		var paths []string
		seen := map[int64]bool{}
		for _, c := range rows {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			blogs, err := q.ListPublishedBlogs(ctx, store.ListPublishedBlogsParams{
				Now:        time.Now().UTC(),
				CategoryID: sql.NullInt64{Int64: c.ID, Valid: true},
			})
			if err != nil {
				slog.Warn("listing blog pages for category", "category_id", c.ID, "error", err)
				continue
			}
			for _, b := range blogs {
				paths = append(paths, blog.DetailPath(b.Slug))
			}
		}
		return paths
	}
}

// Publication returns the publication state of b at now.
func Publication(b store.Blog, now time.Time) model.PublicationState {
	return model.PublicationFromColumns(b.PublishedAt, b.ScheduledAt, now)
}

// BlogInput is the create/patch body for a blog. Published and ScheduledAt
// move the post between draft, scheduled and published.
type BlogInput struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Excerpt     *string    `json:"excerpt"`
	Content     *string    `json:"content"`
	CoverImage  *string    `json:"coverImage"`
	Author      *string    `json:"author"`
	CategoryID  *int64     `json:"categoryId"`
	ReadTime    *int64     `json:"readTime"`
	Published   *bool      `json:"published"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (s *BlogService) ListBlogs(ctx context.Context) ([]store.Blog, error) {
	return s.queries.ListBlogs(ctx)
}

func (s *BlogService) GetBlog(ctx context.Context, id int64) (store.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *BlogService) CreateBlog(ctx context.Context, in BlogInput) (store.Blog, error) {
	return s.blogs.Create(ctx, func(ctx context.Context) (store.Blog, error) {
		p, err := s.blogParams(ctx, in, store.Blog{})
		if err != nil {
			return store.Blog{}, err
		}
		created, err := s.queries.CreateBlog(ctx, p, s.now())
		return created, uniqueViolation(err, "slug")
	})
}

func (s *BlogService) UpdateBlog(ctx context.Context, id int64, in BlogInput) (store.Blog, error) {
	return s.blogs.Update(ctx, id, func(ctx context.Context, cur store.Blog) (store.Blog, error) {
		p, err := s.blogParams(ctx, in, cur)
		if err != nil {
			return store.Blog{}, err
		}
		updated, err := s.queries.UpdateBlog(ctx, id, p, s.now())
		return updated, uniqueViolation(err, "slug")
	})
}

func (s *BlogService) DeleteBlog(ctx context.Context, id int64) error {
	_, err := s.blogs.Delete(ctx, id)
	return err
}

// PublishDue publishes every scheduled blog whose time has come and returns
// the published posts.
func (s *BlogService) PublishDue(ctx context.Context) ([]store.Blog, error) {
	now := s.now()
	due, err := s.queries.ListDueScheduledBlogs(ctx, now)
	if err != nil {
		return nil, err
	}

	published := make([]store.Blog, 0, len(due))
	for _, b := range due {
		updated, err := s.blogs.Update(ctx, b.ID, func(ctx context.Context, cur store.Blog) (store.Blog, error) {
			return s.queries.PublishScheduledBlog(ctx, cur.ID, cur.ScheduledAt.Time)
		})
		if errors.Is(err, ErrNotFound) {
			// published or deleted concurrently
			continue
		}
		if err != nil {
			return published, err
		}
		published = append(published, updated)
	}
	return published, nil
}

func (s *BlogService) blogParams(ctx context.Context, in BlogInput, cur store.Blog) (store.BlogParams, error) {
	p := store.BlogParams{
		Title:       pick(in.Title, cur.Title),
		Excerpt:     pick(in.Excerpt, cur.Excerpt),
		Content:     pick(in.Content, cur.Content),
		CoverImage:  pick(in.CoverImage, cur.CoverImage),
		Author:      pick(in.Author, cur.Author),
		CategoryID:  cur.CategoryID,
		ReadTime:    cur.ReadTime,
		PublishedAt: cur.PublishedAt,
		ScheduledAt: cur.ScheduledAt,
	}
	if err := firstErr(required("title", p.Title), required("content", p.Content)); err != nil {
		return p, err
	}

	// Content is the source of truth: a client read time only counts when
	// the content is left untouched.
	switch {
	case in.Content != nil || cur.ID == 0:
		p.ReadTime = model.ReadTime(p.Content)
	case in.ReadTime != nil:
		if *in.ReadTime < 0 {
			return p, invalid("readTime", "readTime must not be negative")
		}
		p.ReadTime = *in.ReadTime
	}

	categoryID, err := s.resolveCategory(ctx, in.CategoryID, cur.CategoryID)
	if err != nil {
		return p, err
	}
	p.CategoryID = categoryID

	if err := s.applyPublication(&p, in, cur); err != nil {
		return p, err
	}

	slug, err := slugResolver{s.queries, store.SlugTableBlogs}.resolve(ctx, in.Slug, cur.Slug, p.Title, cur.ID)
	p.Slug = slug
	return p, err
}

func (s *BlogService) resolveCategory(ctx context.Context, requested *int64, current int64) (int64, error) {
	if requested == nil && current != 0 {
		return current, nil
	}
	if requested == nil {
		c, err := s.queries.GetBlogCategoryBySlug(ctx, store.DefaultCategorySlug)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, invalid("categoryId", "categoryId is required")
		}
		return c.ID, err
	}

	if _, err := s.queries.GetBlogCategory(ctx, *requested); errors.Is(err, sql.ErrNoRows) {
		return 0, invalid("categoryId", "category %d does not exist", *requested)
	} else if err != nil {
		return 0, err
	}
	return *requested, nil
}

func (s *BlogService) applyPublication(p *store.BlogParams, in BlogInput, cur store.Blog) error {
	now := s.now()
	if in.ScheduledAt != nil && in.Published != nil && *in.Published {
		return invalid("scheduledAt", "a post cannot be published and scheduled at once")
	}

	if in.ScheduledAt != nil {
		at := in.ScheduledAt.UTC()
		if !at.After(now) {
			return invalid("scheduledAt", "scheduledAt must be in the future")
		}
		p.PublishedAt = sql.NullTime{}
		p.ScheduledAt = sql.NullTime{Time: at, Valid: true}
		return nil
	}

	if in.Published == nil {
		return nil
	}
	if !*in.Published {
		p.PublishedAt = sql.NullTime{}
		p.ScheduledAt = sql.NullTime{}
		return nil
	}
	if Publication(cur, now).Stage != model.Published {
		p.PublishedAt = sql.NullTime{Time: now, Valid: true}
	}
	p.ScheduledAt = sql.NullTime{}
	return nil
}

// Categories

type CategoryInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (s *BlogService) ListCategories(ctx context.Context) ([]store.BlogCategory, error) {
	return s.queries.ListBlogCategories(ctx)
}

func (s *BlogService) CreateCategory(ctx context.Context, in CategoryInput) (store.BlogCategory, error) {
	return s.categories.Create(ctx, func(ctx context.Context) (store.BlogCategory, error) {
		name, slug, err := s.categoryFields(ctx, in, store.BlogCategory{})
		if err != nil {
			return store.BlogCategory{}, err
		}
		created, err := s.queries.CreateBlogCategory(ctx, name, slug, s.now())
		return created, uniqueViolation(err, "slug")
	})
}

func (s *BlogService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (store.BlogCategory, error) {
	return s.categories.Update(ctx, id, func(ctx context.Context, cur store.BlogCategory) (store.BlogCategory, error) {
		name, slug, err := s.categoryFields(ctx, in, cur)
		if err != nil {
			return store.BlogCategory{}, err
		}
		updated, err := s.queries.UpdateBlogCategory(ctx, id, name, slug, s.now())
		return updated, uniqueViolation(err, "slug")
	})
}

// DeleteCategory refuses with a *ConflictError while any blog references
// the category; nothing is changed in that case.
func (s *BlogService) DeleteCategory(ctx context.Context, id int64) error {
	_, err := s.categories.DeleteGuarded(ctx, id, func(ctx context.Context, cur store.BlogCategory) error {
		n, err := s.queries.CountBlogsByCategory(ctx, cur.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ConflictError{Resource: "category " + cur.Name, Count: n}
		}
		return nil
	})
	return err
}

func (s *BlogService) categoryFields(ctx context.Context, in CategoryInput, cur store.BlogCategory) (string, string, error) {
	name := pick(in.Name, cur.Name)
	if err := required("name", name); err != nil {
		return "", "", err
	}
	slug, err := slugResolver{s.queries, store.SlugTableBlogCategories}.resolve(ctx, in.Slug, cur.Slug, name, cur.ID)
	return name, slug, err
}
