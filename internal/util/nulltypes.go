// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strconv"
)

// NullInt64FromPtr converts a pointer to int64 into sql.NullInt64.
func NullInt64FromPtr(ptr *int64) sql.NullInt64 {
	if ptr != nil {
		return sql.NullInt64{Int64: *ptr, Valid: true}
	}
	return sql.NullInt64{}
}

// PtrFromNullInt64 is the inverse of NullInt64FromPtr, used for JSON output.
func PtrFromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// ParseNullInt64Positive parses a query value, returning an invalid
// NullInt64 for empty, malformed or non-positive input.
func ParseNullInt64Positive(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil && val > 0 {
		return sql.NullInt64{Int64: val, Valid: true}
	}
	return sql.NullInt64{}
}

// PatchInt64 is a JSON field for PATCH bodies that tells apart an absent
// key, an explicit null and a value.
type PatchInt64 struct {
	Set   bool
	Value sql.NullInt64
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PatchInt64) UnmarshalJSON(data []byte) error {
	p.Set = true
	if bytes.Equal(data, []byte("null")) {
		p.Value = sql.NullInt64{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Value = sql.NullInt64{Int64: v, Valid: true}
	return nil
}

// Apply returns the patched value, or current when the key was absent.
func (p PatchInt64) Apply(current sql.NullInt64) sql.NullInt64 {
	if !p.Set {
		return current
	}
	return p.Value
}
