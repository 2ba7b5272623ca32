// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a migrated temporary database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "nxtech-store-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func nullInt(v int64) sql.NullInt64 { return sql.NullInt64{Int64: v, Valid: true} }

func nullTime(v time.Time) sql.NullTime { return sql.NullTime{Time: v, Valid: true} }

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if err := Seed(ctx, db, SeedOptions{AdminEmail: "admin@example.com", AdminPassword: "secret-pass"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Second run is a no-op.
	if err := Seed(ctx, db, SeedOptions{AdminEmail: "other@example.com"}); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	users, err := q.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].Role != "admin" || users[0].Email != "admin@example.com" {
		t.Errorf("seeded user = %+v, want admin@example.com admin", users[0])
	}

	if _, err := q.GetBlogCategoryBySlug(ctx, DefaultCategorySlug); err != nil {
		t.Errorf("default category missing: %v", err)
	}
}

func TestUsers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	u, err := q.CreateUser(ctx, CreateUserParams{
		Email: "Editor@Example.com", PasswordHash: "h", Name: "Ed", Role: "editor", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := q.GetUserByEmail(ctx, "editor@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetUserByEmail ID = %d, want %d", got.ID, u.ID)
	}

	if err := q.UpdateUserLastLogin(ctx, u.ID, now); err != nil {
		t.Fatalf("UpdateUserLastLogin: %v", err)
	}
	got, _ = q.GetUserByID(ctx, u.ID)
	if !got.LastLoginAt.Valid {
		t.Error("LastLoginAt not set")
	}

	admins, err := q.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if admins != 0 {
		t.Errorf("CountAdmins = %d, want 0", admins)
	}

	if err := q.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := q.GetUserByID(ctx, u.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUserByID after delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestServices_ListingOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	base := time.Now().UTC()

	create := func(slug string, order sql.NullInt64, active bool, at time.Time) {
		t.Helper()
		_, err := q.CreateService(ctx, ServiceParams{Title: slug, Slug: slug, DisplayOrder: order, IsActive: active}, at)
		if err != nil {
			t.Fatalf("CreateService(%s): %v", slug, err)
		}
	}
	create("unordered-old", sql.NullInt64{}, true, base)
	create("unordered-new", sql.NullInt64{}, true, base.Add(time.Minute))
	create("second", nullInt(2), true, base)
	create("first", nullInt(1), true, base)
	create("hidden", nullInt(0), false, base)

	active, err := q.ListActiveServices(ctx)
	if err != nil {
		t.Fatalf("ListActiveServices: %v", err)
	}
	want := []string{"first", "second", "unordered-new", "unordered-old"}
	if len(active) != len(want) {
		t.Fatalf("len(active) = %d, want %d", len(active), len(want))
	}
	for i, s := range active {
		if s.Slug != want[i] {
			t.Errorf("active[%d] = %q, want %q", i, s.Slug, want[i])
		}
	}

	all, _ := q.ListServices(ctx)
	if len(all) != 5 || all[0].Slug != "hidden" {
		t.Errorf("ListServices first = %q (n=%d), want hidden first of 5", all[0].Slug, len(all))
	}
}

func TestSlugTaken(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	s, err := q.CreateService(ctx, ServiceParams{Title: "Web", Slug: "web", IsActive: true}, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	taken, err := q.SlugTaken(ctx, SlugTableServices, "web", 0)
	if err != nil || !taken {
		t.Errorf("SlugTaken(web, 0) = %v, %v; want true, nil", taken, err)
	}
	taken, err = q.SlugTaken(ctx, SlugTableServices, "web", s.ID)
	if err != nil || taken {
		t.Errorf("SlugTaken(web, self) = %v, %v; want false, nil", taken, err)
	}
	if _, err := q.SlugTaken(ctx, SlugTable("users; --"), "x", 0); err == nil {
		t.Error("SlugTaken with unknown table returned nil error")
	}
}

func TestBlogs_PublicationAndCategories(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	cat, err := q.CreateBlogCategory(ctx, "News", "news", now)
	if err != nil {
		t.Fatalf("CreateBlogCategory: %v", err)
	}

	mk := func(slug string, published, scheduled sql.NullTime) Blog {
		t.Helper()
		b, err := q.CreateBlog(ctx, BlogParams{
			Title: slug, Slug: slug, Content: "body", CategoryID: cat.ID, ReadTime: 1,
			PublishedAt: published, ScheduledAt: scheduled,
		}, now)
		if err != nil {
			t.Fatalf("CreateBlog(%s): %v", slug, err)
		}
		return b
	}
	mk("draft", sql.NullTime{}, sql.NullTime{})
	mk("old", nullTime(now.Add(-48*time.Hour)), sql.NullTime{})
	mk("fresh", nullTime(now.Add(-time.Hour)), sql.NullTime{})
	due := mk("due", sql.NullTime{}, nullTime(now.Add(-time.Minute)))
	mk("later", sql.NullTime{}, nullTime(now.Add(time.Hour)))

	published, err := q.ListPublishedBlogs(ctx, ListPublishedBlogsParams{Now: now})
	if err != nil {
		t.Fatalf("ListPublishedBlogs: %v", err)
	}
	if len(published) != 2 || published[0].Slug != "fresh" || published[1].Slug != "old" {
		t.Fatalf("published = %v, want [fresh old]", slugsOf(published))
	}

	recent, err := q.ListBlogsPublishedSince(ctx, now.Add(-24*time.Hour), now, 20)
	if err != nil {
		t.Fatalf("ListBlogsPublishedSince: %v", err)
	}
	if len(recent) != 1 || recent[0].Slug != "fresh" {
		t.Errorf("recent = %v, want [fresh]", slugsOf(recent))
	}

	dueList, err := q.ListDueScheduledBlogs(ctx, now)
	if err != nil {
		t.Fatalf("ListDueScheduledBlogs: %v", err)
	}
	if len(dueList) != 1 || dueList[0].ID != due.ID {
		t.Fatalf("due = %v, want [due]", slugsOf(dueList))
	}
	pub, err := q.PublishScheduledBlog(ctx, due.ID, now)
	if err != nil {
		t.Fatalf("PublishScheduledBlog: %v", err)
	}
	if !pub.PublishedAt.Valid || pub.ScheduledAt.Valid {
		t.Errorf("published blog state = %+v/%+v, want published and unscheduled", pub.PublishedAt, pub.ScheduledAt)
	}

	n, err := q.CountBlogsByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountBlogsByCategory: %v", err)
	}
	if n != 5 {
		t.Errorf("CountBlogsByCategory = %d, want 5", n)
	}

	// The foreign key refuses deleting a referenced category.
	if err := q.DeleteBlogCategory(ctx, cat.ID); err == nil {
		t.Error("DeleteBlogCategory on referenced category returned nil error")
	}
}

func TestJobApplications_CascadeAndFilter(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	job, err := q.CreateJob(ctx, JobParams{Title: "Go Engineer", EmploymentType: "full-time", IsActive: true}, now)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	for _, name := range []string{"a", "b"} {
		if _, err := q.CreateJobApplication(ctx, CreateJobApplicationParams{
			JobID: job.ID, Name: name, Email: name + "@example.com", Status: "NEW", CreatedAt: now,
		}); err != nil {
			t.Fatalf("CreateJobApplication: %v", err)
		}
	}

	apps, _ := q.ListJobApplications(ctx, ListJobApplicationsParams{JobID: nullInt(job.ID)})
	if len(apps) != 2 {
		t.Fatalf("len(apps) = %d, want 2", len(apps))
	}
	if _, err := q.UpdateJobApplicationStatus(ctx, apps[0].ID, "SHORTLISTED", now); err != nil {
		t.Fatalf("UpdateJobApplicationStatus: %v", err)
	}
	shortlisted, _ := q.ListJobApplications(ctx, ListJobApplicationsParams{Status: "SHORTLISTED"})
	if len(shortlisted) != 1 {
		t.Errorf("len(shortlisted) = %d, want 1", len(shortlisted))
	}
	if _, err := q.UpdateJobApplicationStatus(ctx, apps[0].ID, "HIRED", now); err == nil {
		t.Error("status outside the enum was accepted")
	}

	if err := q.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	apps, _ = q.ListJobApplications(ctx, ListJobApplicationsParams{})
	if len(apps) != 0 {
		t.Errorf("applications after job delete = %d, want 0", len(apps))
	}
}

func TestLeadWindows(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	for _, age := range []time.Duration{time.Hour, 3 * 24 * time.Hour, 10 * 24 * time.Hour} {
		at := now.Add(-age)
		if _, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{Name: "c", Email: "c@x.io", Message: "m", CreatedAt: at}); err != nil {
			t.Fatalf("CreateContactSubmission: %v", err)
		}
		if _, err := q.CreateQuoteRequest(ctx, CreateQuoteRequestParams{Name: "q", Email: "q@x.io", CreatedAt: at}); err != nil {
			t.Fatalf("CreateQuoteRequest: %v", err)
		}
		if _, err := q.CreateChatLead(ctx, ChatLeadParams{Name: "l"}, at); err != nil {
			t.Fatalf("CreateChatLead: %v", err)
		}
	}

	weekAgo := now.Add(-7 * 24 * time.Hour)
	contacts, _ := q.ListContactSubmissionsSince(ctx, weekAgo, 20)
	quotes, _ := q.ListQuoteRequestsSince(ctx, weekAgo, 20)
	leads, _ := q.ListChatLeadsSince(ctx, weekAgo, 1)
	if len(contacts) != 2 || len(quotes) != 2 || len(leads) != 1 {
		t.Errorf("since counts = %d/%d/%d, want 2/2/1", len(contacts), len(quotes), len(leads))
	}

	prior, _ := q.CountChatLeadsBetween(ctx, now.Add(-14*24*time.Hour), weekAgo)
	if prior != 1 {
		t.Errorf("CountChatLeadsBetween prior week = %d, want 1", prior)
	}
	current, _ := q.CountQuoteRequestsBetween(ctx, weekAgo, now.Add(time.Second))
	if current != 2 {
		t.Errorf("CountQuoteRequestsBetween current week = %d, want 2", current)
	}
}

func slugsOf(blogs []Blog) []string {
	out := make([]string, len(blogs))
	for i, b := range blogs {
		out[i] = b.Slug
	}
	return out
}
