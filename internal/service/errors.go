// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned by Authenticate for any login failure.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a rejected request body. The store is never
// touched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError refuses a mutation because other rows still depend on the
// target.
type ConflictError struct {
	Resource string
	Count    int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d blog(s) still reference it; reassign them first", e.Resource, e.Count)
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// uniqueViolation maps a UNIQUE constraint failure from either sqlite
// driver to a validation error on field.
func uniqueViolation(err error, field string) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return invalid(field, "%s is already in use", field)
	}
	return err
}
