// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestBuildRobotsDefault(t *testing.T) {
	content := BuildRobots(RobotsConfig{SiteURL: "https://nxtech.io/"})

	if !strings.HasPrefix(content, "User-agent: *\n") {
		t.Errorf("BuildRobots() should start with the user-agent line, got %q", content)
	}
	for _, path := range DefaultDisallow {
		if !strings.Contains(content, "Disallow: "+path+"\n") {
			t.Errorf("BuildRobots() should disallow %q", path)
		}
	}
	if !strings.Contains(content, "Allow: /\n") {
		t.Error("BuildRobots() should contain 'Allow: /'")
	}
	if !strings.Contains(content, "Sitemap: https://nxtech.io/sitemap.xml") {
		t.Errorf("BuildRobots() sitemap reference missing, got %q", content)
	}
}

func TestBuildRobotsDisallowAll(t *testing.T) {
	content := BuildRobots(RobotsConfig{SiteURL: "https://staging.nxtech.io", DisallowAll: true})

	if content != "User-agent: *\nDisallow: /\n" {
		t.Errorf("BuildRobots() = %q", content)
	}
}

func TestBuildRobotsExtraPaths(t *testing.T) {
	content := BuildRobots(RobotsConfig{DisallowPaths: []string{"/uploads/private"}})

	if !strings.Contains(content, "Disallow: /uploads/private\n") {
		t.Errorf("BuildRobots() missing extra path, got %q", content)
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("BuildRobots() without SiteURL should not reference a sitemap")
	}
	if len(DefaultDisallow) != 3 {
		t.Errorf("DefaultDisallow was modified: %v", DefaultDisallow)
	}
}
