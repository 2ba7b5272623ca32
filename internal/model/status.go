// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// ApplicationStatus is the admin-controlled state of a job application.
type ApplicationStatus string

const (
	ApplicationNew         ApplicationStatus = "NEW"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

// Valid reports whether s is one of the fixed application statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationNew, ApplicationShortlisted, ApplicationRejected:
		return true
	}
	return false
}

// Quote request statuses.
const (
	QuoteStatusNew       = "new"
	QuoteStatusContacted = "contacted"
	QuoteStatusClosed    = "closed"
)

// IsValidQuoteStatus reports whether s is a known quote request status.
func IsValidQuoteStatus(s string) bool {
	return s == QuoteStatusNew || s == QuoteStatusContacted || s == QuoteStatusClosed
}
