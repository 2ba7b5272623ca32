// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NXT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: NXT_TEST_REDIS_URL not set")
	}
	return url
}

func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	c, err := NewRedisCacheFromURL(skipIfNoRedis(t), "nxt-test:", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisCacheFromURL: %v", err)
	}
	ctx := context.Background()
	_ = c.Clear(ctx)
	t.Cleanup(func() {
		_ = c.Clear(ctx)
		_ = c.Close()
	})
	return c
}

func TestRedisCache_Basic(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	_ = c.Delete(ctx, "k")
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete err = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_DeleteByPrefixLiteral(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	_ = c.Set(ctx, "page:/blog/a|", []byte("1"), 0)
	_ = c.Set(ctx, "page:/blog/b|", []byte("1"), 0)
	_ = c.Set(ctx, "page:/blogx|", []byte("1"), 0)
	_ = c.Set(ctx, "page:/[x]|", []byte("1"), 0)

	if err := c.DeleteByPrefix(ctx, "page:/blog/"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if has, _ := c.Has(ctx, "page:/blog/a|"); has {
		t.Error("page:/blog/a| still present")
	}
	if has, _ := c.Has(ctx, "page:/blogx|"); !has {
		t.Error("page:/blogx| should survive")
	}

	_ = c.DeleteByPrefix(ctx, "page:/[x]")
	if has, _ := c.Has(ctx, "page:/[x]|"); has {
		t.Error("bracketed key should match literally")
	}
}

func TestRedisCache_Stats(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_, _ = c.Get(ctx, "a")
	_, _ = c.Get(ctx, "missing")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Items != 1 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestEscapeGlob(t *testing.T) {
	tests := map[string]string{
		"page:/blog": "page:/blog",
		"a*b":        `a\*b`,
		"q?[x]":      `q\?\[x\]`,
		`back\slash`: `back\\slash`,
	}
	for in, want := range tests {
		if got := escapeGlob(in); got != want {
			t.Errorf("escapeGlob(%q) = %q, want %q", in, got, want)
		}
	}
}
