// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the server-rendered admin pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var Templates embed.FS

// ParseTemplates parses every page template with funcs available.
func ParseTemplates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(Templates, "templates/*.html")
}
