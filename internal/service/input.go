// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/util"
)

// pick returns the trimmed patch value, or current when the field is absent.
func pick(p *string, current string) string {
	if p == nil {
		return current
	}
	return strings.TrimSpace(*p)
}

func pickBool(p *bool, current bool) bool {
	if p == nil {
		return current
	}
	return *p
}

func required(field, value string) error {
	if value == "" {
		return invalid(field, "%s is required", field)
	}
	return nil
}

func validEmail(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if !strings.Contains(value, "@") {
		return invalid(field, "%s must be a valid email address", field)
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return invalid(field, "%s must be a valid email address", field)
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// slugResolver settles the slug of a slugged row before it is written.
type slugResolver struct {
	queries *store.Queries
	table   store.SlugTable
}

// resolve returns the slug to store. An absent or blank requested slug keeps
// current, or is derived from source when there is no current slug.
func (s slugResolver) resolve(ctx context.Context, requested *string, current, source string, excludeID int64) (string, error) {
	slug := current
	if requested != nil {
		slug = strings.TrimSpace(*requested)
	}
	if slug == "" {
		slug = util.Slugify(source)
		if slug == "" {
			return "", invalid("slug", "slug could not be derived; provide one explicitly")
		}
	}
	if !util.IsValidSlug(slug) {
		return "", invalid("slug", "slug must contain only lowercase letters, digits and single hyphens")
	}

	taken, err := s.queries.SlugTaken(ctx, s.table, slug, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", invalid("slug", "slug %q is already in use", slug)
	}
	return slug, nil
}
