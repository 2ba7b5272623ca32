// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package revalidate purges cached public pages after content changes.
package revalidate

import (
	"slices"
	"strings"
)

// Kind names a content type that feeds public pages. Kinds double as the
// tags accepted by the revalidation endpoint.
type Kind string

const (
	KindService      Kind = "service"
	KindIndustry     Kind = "industry"
	KindPortfolio    Kind = "portfolio"
	KindBlog         Kind = "blog"
	KindTestimonial  Kind = "testimonial"
	KindJob          Kind = "job"
	KindTeamMember   Kind = "team-member"
	KindBlogCategory Kind = "blog-category"
)

// Target lists the public paths a content kind can appear on.
type Target struct {
	Kind         Kind
	ListingPaths []string
	// DetailPrefix is the detail URL without its key, e.g. "/blog/".
	// Empty when the kind has no detail page.
	DetailPrefix string
}

// HasDetail reports whether the kind has a per-entity page.
func (t Target) HasDetail() bool {
	return t.DetailPrefix != ""
}

// DetailPath builds the detail URL for key, or "" when either is absent.
func (t Target) DetailPath(key string) string {
	if !t.HasDetail() || key == "" {
		return ""
	}
	return t.DetailPrefix + key
}

var targets = map[Kind]Target{
	KindService:      {Kind: KindService, ListingPaths: []string{"/", "/services"}, DetailPrefix: "/services/"},
	KindIndustry:     {Kind: KindIndustry, ListingPaths: []string{"/", "/industries"}, DetailPrefix: "/industries/"},
	KindPortfolio:    {Kind: KindPortfolio, ListingPaths: []string{"/", "/portfolio"}, DetailPrefix: "/portfolio/"},
	KindBlog:         {Kind: KindBlog, ListingPaths: []string{"/", "/blog"}, DetailPrefix: "/blog/"},
	KindTestimonial:  {Kind: KindTestimonial, ListingPaths: []string{"/", "/about"}},
	KindJob:          {Kind: KindJob, ListingPaths: []string{"/careers"}, DetailPrefix: "/careers/"},
	KindTeamMember:   {Kind: KindTeamMember, ListingPaths: []string{"/about"}},
	KindBlogCategory: {Kind: KindBlogCategory, ListingPaths: []string{"/blog"}},
}

// TargetFor returns the target of a kind. The returned slices are copies.
func TargetFor(kind Kind) (Target, bool) {
	t, ok := targets[kind]
	if !ok {
		return Target{}, false
	}
	t.ListingPaths = slices.Clone(t.ListingPaths)
	return t, true
}

// MustTarget is TargetFor for kinds known at compile time.
func MustTarget(kind Kind) Target {
	t, ok := TargetFor(kind)
	if !ok {
		panic("revalidate: unknown kind " + string(kind))
	}
	return t
}

var irregularPlurals = map[string]Kind{
	"industries":      KindIndustry,
	"blog-categories": KindBlogCategory,
}

// ParseTag maps an endpoint tag to its kind. Tags are case-insensitive and
// accept a trailing "s" ("blogs", "services").
func ParseTag(tag string) (Kind, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if _, ok := targets[Kind(tag)]; ok {
		return Kind(tag), true
	}
	if trimmed, ok := strings.CutSuffix(tag, "s"); ok {
		if _, ok := targets[Kind(trimmed)]; ok {
			return Kind(trimmed), true
		}
	}
	kind, ok := irregularPlurals[tag]
	return kind, ok
}

// Kinds returns every known kind in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(targets))
	for k := range targets {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// AllListingPaths returns the de-duplicated union of every listing path.
func AllListingPaths() []string {
	var out []string
	for _, t := range targets {
		out = append(out, t.ListingPaths...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
