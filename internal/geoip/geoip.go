// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves visitor IPs to ISO country codes for lead records.
package geoip

import (
	"fmt"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// CountryLocal is reported for loopback and private addresses.
const CountryLocal = "LOCAL"

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	RegisteredCountry struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"registered_country"`
}

// Resolver looks up countries in a GeoLite2-Country database. A Resolver
// with no database path answers "" for public addresses.
type Resolver struct {
	mu      sync.RWMutex
	path    string
	reader  *maxminddb.Reader
	modTime time.Time
}

// Open loads the database at path. An empty path yields a disabled resolver.
func Open(path string) (*Resolver, error) {
	r := &Resolver{path: path}
	if path == "" {
		return r, nil
	}
	if _, err := r.Reload(); err != nil {
		return r, err
	}
	return r, nil
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reader != nil
}

// Reload reopens the database when the file's modification time changed.
// It reports whether a new database was loaded.
func (r *Resolver) Reload() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return false, nil
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return false, fmt.Errorf("stat GeoIP database: %w", err)
	}
	if r.reader != nil && info.ModTime().Equal(r.modTime) {
		return false, nil
	}

	reader, err := maxminddb.Open(r.path)
	if err != nil {
		return false, fmt.Errorf("opening GeoIP database: %w", err)
	}
	if r.reader != nil {
		_ = r.reader.Close()
	}
	r.reader = reader
	r.modTime = info.ModTime()
	return true, nil
}

// Country returns the ISO code for ip, CountryLocal for non-public
// addresses, or "" when unknown.
func (r *Resolver) Country(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ""
	}
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
		return CountryLocal
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.reader == nil {
		return ""
	}

	var rec countryRecord
	if err := r.reader.Lookup(addr.AsSlice(), &rec); err != nil {
		return ""
	}
	if rec.Country.ISOCode != "" {
		return rec.Country.ISOCode
	}
	return rec.RegisteredCountry.ISOCode
}

// Close releases the database.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reader == nil {
		return nil
	}
	err := r.reader.Close()
	r.reader = nil
	return err
}
