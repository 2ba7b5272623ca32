// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemory(t *testing.T, ttl time.Duration, maxSize int) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: ttl, MaxSize: maxSize})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := newTestMemory(t, time.Hour, 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	has, _ := c.Has(ctx, "k")
	if !has {
		t.Error("Has = false, want true")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := newTestMemory(t, time.Hour, 0)
	ctx := context.Background()

	src := []byte("abc")
	_ = c.Set(ctx, "k", src, 0)
	src[0] = 'x'

	got, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed with caller slice: %q", got)
	}
	got[1] = 'y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value changed with returned slice: %q", again)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := newTestMemory(t, 20*time.Millisecond, 0)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	time.Sleep(40 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get err = %v, want ErrCacheMiss", err)
	}
	if n := c.Stats().Items; n != 0 {
		t.Errorf("Items = %d, want 0", n)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	c := newTestMemory(t, time.Hour, 0)
	ctx := context.Background()

	for _, k := range []string{"page:/blog|", "page:/blog/a|", "page:/blog/b|", "page:/about|"} {
		_ = c.Set(ctx, k, []byte("x"), 0)
	}

	if err := c.DeleteByPrefix(ctx, "page:/blog/"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	tests := map[string]bool{
		"page:/blog|":   true,
		"page:/blog/a|": false,
		"page:/blog/b|": false,
		"page:/about|":  true,
	}
	for k, want := range tests {
		if has, _ := c.Has(ctx, k); has != want {
			t.Errorf("Has(%q) = %v, want %v", k, has, want)
		}
	}
}

func TestMemoryCache_MaxSizeEvicts(t *testing.T) {
	c := newTestMemory(t, time.Hour, 3)
	ctx := context.Background()

	_ = c.Set(ctx, "first", []byte("1"), time.Minute)
	_ = c.Set(ctx, "second", []byte("2"), time.Hour)
	_ = c.Set(ctx, "third", []byte("3"), time.Hour)
	_ = c.Set(ctx, "fourth", []byte("4"), time.Hour)

	if n := c.Stats().Items; n != 3 {
		t.Errorf("Items = %d, want 3", n)
	}
	if has, _ := c.Has(ctx, "first"); has {
		t.Error("entry closest to expiry should have been evicted")
	}
	if has, _ := c.Has(ctx, "fourth"); !has {
		t.Error("new entry missing")
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := newTestMemory(t, time.Hour, 0)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("four"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Sets != 1 {
		t.Errorf("Stats = %+v, want 2 hits 1 miss 1 set", s)
	}
	if s.Size != 4 {
		t.Errorf("Size = %d, want 4", s.Size)
	}

	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Stats after reset = %+v", s)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, CleanupInterval: time.Millisecond})
	_ = c.Close()
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get err = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set err = %v, want ErrCacheClosed", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := newTestMemory(t, time.Hour, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 50 {
				key := fmt.Sprintf("k%d-%d", n, j%10)
				_ = c.Set(ctx, key, []byte("v"), 0)
				_, _ = c.Get(ctx, key)
				if j%7 == 0 {
					_ = c.DeleteByPrefix(ctx, fmt.Sprintf("k%d-", n))
				}
			}
		}(i)
	}
	wg.Wait()

	live := 0
	c.data.Range(func(_, _ any) bool {
		live++
		return true
	})
	if n := c.Stats().Items; n != live {
		t.Errorf("Items = %d, want %d", n, live)
	}
}
