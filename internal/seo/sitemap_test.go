// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://nxtech.io/")
	b.AddHomepage()
	b.AddListing("/services")
	b.AddEntries([]Entry{
		{Path: "/services/cloud", UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))},
		{Path: "/careers/4"},
	})

	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("Build() should start with the XML header")
	}

	var sm Sitemap
	if err := xml.Unmarshal(out, &sm); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sm.XMLNS != XMLNamespace {
		t.Errorf("xmlns = %q, want %q", sm.XMLNS, XMLNamespace)
	}

	wantLocs := []string{
		"https://nxtech.io/",
		"https://nxtech.io/services",
		"https://nxtech.io/services/cloud",
		"https://nxtech.io/careers/4",
	}
	for i, want := range wantLocs {
		if sm.URLs[i].Loc != want {
			t.Errorf("URLs[%d].Loc = %q, want %q", i, sm.URLs[i].Loc, want)
		}
	}
	if sm.URLs[0].Priority != "1.0" {
		t.Errorf("homepage priority = %q, want 1.0", sm.URLs[0].Priority)
	}
	if sm.URLs[2].LastMod != "2026-03-01T11:00:00Z" {
		t.Errorf("lastmod = %q, want UTC RFC3339", sm.URLs[2].LastMod)
	}
	if sm.URLs[3].LastMod != "" {
		t.Errorf("zero time should omit lastmod, got %q", sm.URLs[3].LastMod)
	}
}
