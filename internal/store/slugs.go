// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// SlugTable names a table with a unique slug column.
type SlugTable string

const (
	SlugTableServices       SlugTable = "services"
	SlugTableIndustries     SlugTable = "industries"
	SlugTablePortfolios     SlugTable = "portfolios"
	SlugTableBlogs          SlugTable = "blogs"
	SlugTableBlogCategories SlugTable = "blog_categories"
)

func (t SlugTable) valid() bool {
	switch t {
	case SlugTableServices, SlugTableIndustries, SlugTablePortfolios, SlugTableBlogs, SlugTableBlogCategories:
		return true
	}
	return false
}

// SlugTaken reports whether slug is used by a row other than excludeID in table.
func (q *Queries) SlugTaken(ctx context.Context, table SlugTable, slug string, excludeID int64) (bool, error) {
	if !table.valid() {
		return false, fmt.Errorf("unknown slug table %q", table)
	}
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+string(table)+` WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}
