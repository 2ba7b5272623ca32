// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the handlers and services:
// slug generation, nullable JSON fields and safe upload paths.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// SlugPattern is the accepted shape of a public URL slug.
	SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a title into a URL slug. Accents are stripped and other
// scripts are transliterated to ASCII before non-alphanumerics collapse to
// single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	ascii := unidecode.Unidecode(folded)
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(ascii), "-")
	return strings.Trim(slug, "-")
}

// IsValidSlug reports whether s matches SlugPattern.
func IsValidSlug(s string) bool {
	return SlugPattern.MatchString(s)
}
