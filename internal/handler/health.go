// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/nxtech/nxtech-site/internal/auth"
	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/version"
)

// Pinger reports the health of a dependency such as the cache backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	cache      Pinger
	codec      *auth.TokenCodec
	uploadsDir string
	startTime  time.Time
}

// NewHealthHandler creates a health handler. cache may be nil; an empty
// uploadsDir skips the disk check (uploads go to object storage).
func NewHealthHandler(db *sql.DB, cache Pinger, codec *auth.TokenCodec, uploadsDir string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		cache:      cache,
		codec:      codec,
		uploadsDir: uploadsDir,
		startTime:  time.Now().UTC(),
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed response for signed-in admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Build     version.Info     `json:"build"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutines"`
	NumCPU       int    `json:"numCpus"`
	MemAlloc     string `json:"memAlloc"`
	MemSys       string `json:"memSys"`
}

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// Health handles GET /health. Anonymous callers only learn the overall
// status; admins also get the individual checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(r.Context()),
		"cache":    h.checkCache(r.Context()),
	}
	if h.uploadsDir != "" {
		checks["disk"] = h.checkDiskSpace()
	}

	overall := statusHealthy
	status := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case statusUnhealthy:
			overall = statusDegraded
			status = http.StatusServiceUnavailable
		case statusDegraded:
			overall = statusDegraded
		}
	}

	if !h.isAdmin(r) {
		writeJSON(w, status, HealthStatusPublic{Status: overall})
		return
	}

	resp := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Build:     version.Get(),
		Checks:    checks,
	}
	if r.URL.Query().Get("verbose") == "true" {
		resp.System = systemInfo()
	}
	writeJSON(w, status, resp)
}

func (h *HealthHandler) isAdmin(r *http.Request) bool {
	if h.codec == nil {
		return false
	}
	s, err := h.codec.Decode(middleware.TokenFromRequest(r))
	return err == nil && s.IsAdmin
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: statusHealthy, Message: "Disabled"}
	}
	start := time.Now()
	err := h.cache.Ping(ctx)
	latency := time.Since(start)

	// The page cache is an optimisation; losing it degrades but does not
	// take the site down.
	if err != nil {
		return Check{Status: statusDegraded, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Latency: latency.String()}
}

// checkDiskSpace checks available disk space in the uploads directory.
func (h *HealthHandler) checkDiskSpace() Check {
	if _, err := os.Stat(h.uploadsDir); os.IsNotExist(err) {
		return Check{Status: statusHealthy, Message: "Uploads directory does not exist yet"}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(h.uploadsDir, &stat); err != nil {
		return Check{Status: statusUnhealthy, Message: "Failed to check disk space: " + err.Error()}
	}

	available := stat.Bavail * uint64(stat.Bsize)
	const minSpace = 100 * 1024 * 1024
	if available < minSpace {
		return Check{Status: statusDegraded, Message: "Low disk space: " + formatBytes(available) + " available"}
	}
	return Check{Status: statusHealthy, Message: formatBytes(available) + " available"}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}
