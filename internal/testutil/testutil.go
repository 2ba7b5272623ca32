// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nxtech/nxtech-site/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a migrated temporary database that is closed when the
// test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "nxtech-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestMemoryDB opens an unmigrated in-memory database on the cgo driver.
// The pool is pinned to one connection so every query sees the same memory.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Trace records an ordered list of steps from concurrent callers.
type Trace struct {
	mu    sync.Mutex
	steps []string
}

// Add appends a step.
func (tr *Trace) Add(step string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.steps = append(tr.steps, step)
}

// Steps returns a copy of the recorded steps.
func (tr *Trace) Steps() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.steps...)
}

// Reset drops every recorded step.
func (tr *Trace) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.steps = nil
}

// Invalidations returns the paths of recorded "invalidate:" steps.
func (tr *Trace) Invalidations() []string {
	var out []string
	for _, s := range tr.Steps() {
		if p, ok := strings.CutPrefix(s, "invalidate:"); ok {
			out = append(out, p)
		}
	}
	return out
}

// RecordingInvalidator satisfies revalidate.Invalidator by appending
// "invalidate:<path>" steps to a Trace.
type RecordingInvalidator struct {
	Trace *Trace
}

func (r RecordingInvalidator) InvalidateStaticPaths(ctx context.Context, paths []string) {
	for _, p := range paths {
		r.InvalidateDynamicPath(ctx, p)
	}
}

func (r RecordingInvalidator) InvalidateDynamicPath(_ context.Context, path string) {
	r.Trace.Add("invalidate:" + path)
}
