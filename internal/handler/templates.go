// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/nxtech/nxtech-site/internal/dashboard"
	"github.com/nxtech/nxtech-site/web"
)

type tileData struct {
	Label  string
	Metric dashboard.Metric
}

// ParseTemplates loads the login and dashboard pages.
func ParseTemplates() (*template.Template, error) {
	return web.ParseTemplates(template.FuncMap{
		"tile": func(label string, m dashboard.Metric) tileData {
			return tileData{Label: label, Metric: m}
		},
	})
}

// renderPage executes name into a buffer first so a template error never
// leaves a half-written page behind.
func renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, name string, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logAndInternalError(w, "rendering template", "template", name, "path", r.URL.Path, "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
