// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nxtech/nxtech-site/internal/cache"
)

// StaticCache adds Cache-Control headers for static files and uploads.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
			next.ServeHTTP(w, r)
		})
	}
}

// HeaderCache reports whether a public page came from the page cache.
const HeaderCache = "X-Cache"

// PageCache serves public GET pages from pages and stores fresh 200
// responses. Entries live until their TTL or until revalidation drops them.
func PageCache(pages *cache.PageCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if page, ok := pages.Get(ctx, r.URL.Path, r.URL.RawQuery); ok {
				if page.ContentType != "" {
					w.Header().Set("Content-Type", page.ContentType)
				}
				w.Header().Set(HeaderCache, "HIT")
				w.WriteHeader(page.Status)
				_, _ = w.Write(page.Body)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set(HeaderCache, "MISS")
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			page := &cache.Page{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if err := pages.Set(ctx, r.URL.Path, r.URL.RawQuery, page); err != nil {
				slog.Warn("page cache store failed", "category", "cache", "path", r.URL.Path, "error", err)
			}
		})
	}
}

// recordingWriter tees the response body so it can be cached.
type recordingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
