// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard builds the admin overview: the recent activity feed
// merged from four lead and content streams, and week-over-week stats.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nxtech/nxtech-site/internal/store"
)

// ActivityType classifies a feed entry.
type ActivityType string

const (
	ActivityLead    ActivityType = "lead"
	ActivityBlog    ActivityType = "blog"
	ActivityContact ActivityType = "contact"
)

// Activity is one feed entry. It is built per request and never stored.
type Activity struct {
	Type       ActivityType `json:"type"`
	Title      string       `json:"title"`
	Meta       string       `json:"meta"`
	Link       string       `json:"link"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// Feed defaults.
const (
	DefaultWindowDays = 7
	DefaultLimit      = 10
	MaxLimit          = 50
	// perSource is the minimum fetched from each stream before merging.
	perSource = 20
)

// Source is the read side of the content store the dashboard needs.
// *store.Queries implements it.
type Source interface {
	ListQuoteRequestsSince(ctx context.Context, since time.Time, limit int64) ([]store.QuoteRequest, error)
	ListContactSubmissionsSince(ctx context.Context, since time.Time, limit int64) ([]store.ContactSubmission, error)
	ListBlogsPublishedSince(ctx context.Context, since, now time.Time, limit int64) ([]store.Blog, error)
	ListChatLeadsSince(ctx context.Context, since time.Time, limit int64) ([]store.ChatLead, error)

	CountQuoteRequestsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountContactSubmissionsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountChatLeadsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountBlogsPublishedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// Aggregator reads the dashboard data.
type Aggregator struct {
	src Source
	now func() time.Time
}

// NewAggregator creates an Aggregator over src.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src, now: func() time.Time { return time.Now().UTC() }}
}

// RecentActivity returns at most limit entries from the last windowDays,
// newest first. The four streams are fetched concurrently and any failure
// fails the whole call.
func (a *Aggregator) RecentActivity(ctx context.Context, windowDays, limit int) ([]Activity, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	fetch := int64(max(limit, perSource))

	now := a.now()
	since := now.AddDate(0, 0, -windowDays)

	var (
		quotes   []store.QuoteRequest
		contacts []store.ContactSubmission
		blogs    []store.Blog
		leads    []store.ChatLead
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		quotes, err = a.src.ListQuoteRequestsSince(gctx, since, fetch)
		return wrap("quote requests", err)
	})
	g.Go(func() (err error) {
		contacts, err = a.src.ListContactSubmissionsSince(gctx, since, fetch)
		return wrap("contact submissions", err)
	})
	g.Go(func() (err error) {
		blogs, err = a.src.ListBlogsPublishedSince(gctx, since, now, fetch)
		return wrap("blogs", err)
	})
	g.Go(func() (err error) {
		leads, err = a.src.ListChatLeadsSince(gctx, since, fetch)
		return wrap("chat leads", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed := make([]Activity, 0, len(quotes)+len(contacts)+len(blogs)+len(leads))
	for _, q := range quotes {
		feed = append(feed, newActivity(now, ActivityLead, "Quote Request",
			fmt.Sprintf("Quote request from %s", q.Name), "/dashboard/quote-requests", q.CreatedAt))
	}
	for _, c := range contacts {
		feed = append(feed, newActivity(now, ActivityContact, "Contact",
			contactTitle(c), "/dashboard/contact-submissions", c.CreatedAt))
	}
	for _, b := range blogs {
		if !b.PublishedAt.Valid || b.Slug == "" {
			continue
		}
		feed = append(feed, newActivity(now, ActivityBlog, "Blog Published",
			b.Title, "/blog/"+b.Slug, b.PublishedAt.Time))
	}
	for _, l := range leads {
		feed = append(feed, newActivity(now, ActivityLead, "Chat Lead",
			"Chat lead: "+leadName(l), "/dashboard/chat-leads", l.CreatedAt))
	}

	return MergeActivity(feed, limit), nil
}

// MergeActivity sorts feed newest first, keeping input order on ties, and
// truncates it to limit.
func MergeActivity(feed []Activity, limit int) []Activity {
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].OccurredAt.After(feed[j].OccurredAt)
	})
	if limit >= 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

func newActivity(now time.Time, typ ActivityType, label, title, link string, at time.Time) Activity {
	return Activity{
		Type:       typ,
		Title:      title,
		Meta:       label + " · " + RelativeTime(now.Sub(at)),
		Link:       link,
		OccurredAt: at,
	}
}

func contactTitle(c store.ContactSubmission) string {
	if c.Subject != "" {
		return fmt.Sprintf("%s (%s)", c.Subject, c.Name)
	}
	return "Message from " + c.Name
}

func leadName(l store.ChatLead) string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Email != "":
		return l.Email
	default:
		return l.Phone
	}
}

// RelativeTime renders an age with integer division: secs under a minute,
// then mins, hrs, days and finally weeks. Negative ages count as zero.
func RelativeTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d secs ago", int64(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%d mins ago", int64(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hrs ago", int64(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int64(d/(24*time.Hour)))
	default:
		return fmt.Sprintf("%d weeks ago", int64(d/(7*24*time.Hour)))
	}
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("loading %s: %w", what, err)
	}
	return nil
}
