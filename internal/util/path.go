// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename strips directory components from an uploaded filename.
func SanitizeFilename(filename string) (string, error) {
	safe := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, `\`, "/")))
	if safe == "." || safe == ".." || safe == "/" || safe == "" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return safe, nil
}

// SafeJoinPath joins components under base and fails if the result escapes it.
func SafeJoinPath(base string, components ...string) (string, error) {
	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	full, err := filepath.Abs(filepath.Join(append([]string{absBase}, components...)...))
	if err != nil {
		return "", fmt.Errorf("invalid target path: %w", err)
	}
	if full != absBase && !strings.HasPrefix(full, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: path escapes base directory")
	}
	return full, nil
}
