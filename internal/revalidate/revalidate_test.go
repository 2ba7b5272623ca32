// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package revalidate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/cache"
)

type recordingBackend struct {
	name     string
	mu       sync.Mutex
	paths    []string
	prefixes []string
	failOn   map[string]bool
}

func (b *recordingBackend) Name() string { return b.name }

func (b *recordingBackend) InvalidatePath(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = append(b.paths, path)
	if b.failOn[path] {
		return errors.New("backend down")
	}
	return nil
}

func (b *recordingBackend) InvalidatePrefix(_ context.Context, prefix string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prefixes = append(b.prefixes, prefix)
	return nil
}

func TestTargets(t *testing.T) {
	tests := []struct {
		kind    Kind
		listing []string
		detail  string
	}{
		{KindService, []string{"/", "/services"}, "/services/web"},
		{KindIndustry, []string{"/", "/industries"}, "/industries/web"},
		{KindPortfolio, []string{"/", "/portfolio"}, "/portfolio/web"},
		{KindBlog, []string{"/", "/blog"}, "/blog/web"},
		{KindTestimonial, []string{"/", "/about"}, ""},
		{KindJob, []string{"/careers"}, "/careers/web"},
		{KindTeamMember, []string{"/about"}, ""},
		{KindBlogCategory, []string{"/blog"}, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			target, ok := TargetFor(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.listing, target.ListingPaths)
			assert.Equal(t, tt.detail, target.DetailPath("web"))
			assert.Equal(t, "", target.DetailPath(""))
		})
	}

	_, ok := TargetFor("nope")
	assert.False(t, ok)
}

func TestTargetForReturnsCopies(t *testing.T) {
	a := MustTarget(KindBlog)
	a.ListingPaths[0] = "/mutated"

	b := MustTarget(KindBlog)
	assert.Equal(t, "/", b.ListingPaths[0])
}

func TestParseTag(t *testing.T) {
	tests := map[string]Kind{
		"blog":            KindBlog,
		"Blogs":           KindBlog,
		"services":        KindService,
		"industries":      KindIndustry,
		"team-members":    KindTeamMember,
		"blog-categories": KindBlogCategory,
		" job ":           KindJob,
	}
	for tag, want := range tests {
		got, ok := ParseTag(tag)
		if !ok || got != want {
			t.Errorf("ParseTag(%q) = %q, %v; want %q", tag, got, ok, want)
		}
	}
	if _, ok := ParseTag("pages"); ok {
		t.Error("ParseTag(pages) should fail")
	}
}

func TestAllListingPaths(t *testing.T) {
	got := AllListingPaths()
	want := []string{"/", "/about", "/blog", "/careers", "/industries", "/portfolio", "/services"}
	assert.Equal(t, want, got)
}

func TestDispatcher_ContinuesPastFailures(t *testing.T) {
	flaky := &recordingBackend{name: "flaky", failOn: map[string]bool{"/services": true}}
	ok := &recordingBackend{name: "ok"}
	d := NewDispatcher(nil, flaky, ok)

	d.InvalidateStaticPaths(context.Background(), []string{"/", "/services", "/about"})

	want := []string{"/", "/services", "/about"}
	assert.Equal(t, want, flaky.paths)
	assert.Equal(t, want, ok.paths)
}

func TestDispatcher_NormalizesPaths(t *testing.T) {
	b := &recordingBackend{name: "b"}
	d := NewDispatcher(nil, b)

	for _, p := range []string{"blog/hello/", "/blog?page=2", "", "   ", "/"} {
		d.InvalidateDynamicPath(context.Background(), p)
	}
	assert.Equal(t, []string{"/blog/hello", "/blog", "/"}, b.paths)
}

func TestDispatcher_InvalidateTag(t *testing.T) {
	b := &recordingBackend{name: "b"}
	d := NewDispatcher(nil, b)

	require.NoError(t, d.InvalidateTag(context.Background(), "blogs"))
	assert.Equal(t, []string{"/", "/blog"}, b.paths)
	assert.Equal(t, []string{"/blog/"}, b.prefixes)

	b.paths, b.prefixes = nil, nil
	require.NoError(t, d.InvalidateTag(context.Background(), "testimonial"))
	assert.Equal(t, []string{"/", "/about"}, b.paths)
	assert.Empty(t, b.prefixes)

	assert.Error(t, d.InvalidateTag(context.Background(), "unknown"))
}

func TestPageCacheBackend(t *testing.T) {
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = mem.Close() }()
	pages := cache.NewPageCache(mem, time.Hour)
	ctx := context.Background()

	for _, p := range []string{"/", "/blog", "/blog/a", "/blog/b"} {
		require.NoError(t, pages.Set(ctx, p, "", &cache.Page{Status: 200}))
	}

	d := NewDispatcher(nil, NewPageCacheBackend(pages))
	d.InvalidateDynamicPath(ctx, "/blog/a")

	_, hit := pages.Get(ctx, "/blog/a", "")
	assert.False(t, hit)
	_, hit = pages.Get(ctx, "/blog/b", "")
	assert.True(t, hit)

	d.InvalidateTarget(ctx, MustTarget(KindBlog))
	for _, p := range []string{"/", "/blog", "/blog/b"} {
		_, hit := pages.Get(ctx, p, "")
		assert.False(t, hit, p)
	}
}

func TestHookBackend(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []HookRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		if !Verify(payload, r.Header.Get(HeaderSignature), "s3cret") {
			http.Error(w, "bad signature", http.StatusUnauthorized)
			return
		}
		var body HookRequest
		_ = json.Unmarshal(payload, &body)
		if body.Path == "/broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hook := NewHookBackend(srv.URL, "s3cret", srv.Client())
	ctx := context.Background()

	require.NoError(t, hook.InvalidatePath(ctx, "/blog/a"))
	require.NoError(t, hook.InvalidatePrefix(ctx, "/blog/"))

	err := hook.InvalidatePath(ctx, "/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")

	bad := NewHookBackend(srv.URL, "wrong", srv.Client())
	assert.Error(t, bad.InvalidatePath(ctx, "/"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Equal(t, "/blog/a", bodies[0].Path)
	assert.Equal(t, "/blog/", bodies[1].Prefix)
	assert.True(t, slices.ContainsFunc(bodies, func(b HookRequest) bool { return b.SentAt > 0 }))
}
