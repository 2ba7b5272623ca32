// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Job applications

const jobApplicationColumns = `id, job_id, name, email, phone, resume_url, cover_letter, status, created_at, updated_at`

func scanJobApplication(row rowScanner) (JobApplication, error) {
	var a JobApplication
	err := row.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.Phone, &a.ResumeUrl, &a.CoverLetter, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

type CreateJobApplicationParams struct {
	JobID       int64
	Name        string
	Email       string
	Phone       string
	ResumeUrl   string
	CoverLetter string
	Status      string
	CreatedAt   time.Time
}

func (q *Queries) CreateJobApplication(ctx context.Context, arg CreateJobApplicationParams) (JobApplication, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO job_applications
(job_id, name, email, phone, resume_url, cover_letter, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+jobApplicationColumns,
		arg.JobID, arg.Name, arg.Email, arg.Phone, arg.ResumeUrl, arg.CoverLetter, arg.Status, arg.CreatedAt, arg.CreatedAt)
	return scanJobApplication(row)
}

type ListJobApplicationsParams struct {
	JobID  sql.NullInt64
	Status string // empty matches every status
}

func (q *Queries) ListJobApplications(ctx context.Context, arg ListJobApplicationsParams) ([]JobApplication, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+jobApplicationColumns+` FROM job_applications
WHERE (? IS NULL OR job_id = ?) AND (? = '' OR status = ?)
ORDER BY created_at DESC, id DESC`,
		arg.JobID, arg.JobID, arg.Status, arg.Status)
	return collect(rows, err, scanJobApplication)
}

func (q *Queries) GetJobApplication(ctx context.Context, id int64) (JobApplication, error) {
	return scanJobApplication(q.db.QueryRowContext(ctx, `SELECT `+jobApplicationColumns+` FROM job_applications WHERE id = ?`, id))
}

func (q *Queries) UpdateJobApplicationStatus(ctx context.Context, id int64, status string, now time.Time) (JobApplication, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE job_applications SET status = ?, updated_at = ?
WHERE id = ? RETURNING `+jobApplicationColumns, status, now, id)
	return scanJobApplication(row)
}

func (q *Queries) DeleteJobApplication(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
	return err
}

// Contact submissions

const contactSubmissionColumns = `id, name, email, phone, company, subject, message, user_agent, browser, os, country, is_read, created_at`

func scanContactSubmission(row rowScanner) (ContactSubmission, error) {
	var c ContactSubmission
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Subject, &c.Message, &c.UserAgent,
		&c.Browser, &c.Os, &c.Country, &c.IsRead, &c.CreatedAt)
	return c, err
}

type CreateContactSubmissionParams struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	UserAgent string
	Browser   string
	Os        string
	Country   string
	CreatedAt time.Time
}

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO contact_submissions
(name, email, phone, company, subject, message, user_agent, browser, os, country, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+contactSubmissionColumns,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Subject, arg.Message, arg.UserAgent,
		arg.Browser, arg.Os, arg.Country, arg.CreatedAt)
	return scanContactSubmission(row)
}

func (q *Queries) ListContactSubmissions(ctx context.Context) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+contactSubmissionColumns+` FROM contact_submissions ORDER BY created_at DESC, id DESC`)
	return collect(rows, err, scanContactSubmission)
}

func (q *Queries) ListContactSubmissionsSince(ctx context.Context, since time.Time, limit int64) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+contactSubmissionColumns+` FROM contact_submissions
WHERE created_at >= ? ORDER BY created_at DESC, id DESC LIMIT ?`, since, limit)
	return collect(rows, err, scanContactSubmission)
}

func (q *Queries) CountContactSubmissionsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions WHERE created_at >= ? AND created_at < ?`, from, to).Scan(&n)
	return n, err
}

func (q *Queries) GetContactSubmission(ctx context.Context, id int64) (ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx, `SELECT `+contactSubmissionColumns+` FROM contact_submissions WHERE id = ?`, id))
}

func (q *Queries) SetContactSubmissionRead(ctx context.Context, id int64, isRead bool) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE contact_submissions SET is_read = ? WHERE id = ? RETURNING `+contactSubmissionColumns, isRead, id)
	return scanContactSubmission(row)
}

func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id)
	return err
}

// Quote requests

const quoteRequestColumns = `id, name, email, phone, company, service, budget, timeline, details, country, status, created_at`

func scanQuoteRequest(row rowScanner) (QuoteRequest, error) {
	var r QuoteRequest
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Company, &r.Service, &r.Budget, &r.Timeline,
		&r.Details, &r.Country, &r.Status, &r.CreatedAt)
	return r, err
}

type CreateQuoteRequestParams struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Service   string
	Budget    string
	Timeline  string
	Details   string
	Country   string
	CreatedAt time.Time
}

func (q *Queries) CreateQuoteRequest(ctx context.Context, arg CreateQuoteRequestParams) (QuoteRequest, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO quote_requests
(name, email, phone, company, service, budget, timeline, details, country, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+quoteRequestColumns,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Service, arg.Budget, arg.Timeline,
		arg.Details, arg.Country, arg.CreatedAt)
	return scanQuoteRequest(row)
}

func (q *Queries) ListQuoteRequests(ctx context.Context) ([]QuoteRequest, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests ORDER BY created_at DESC, id DESC`)
	return collect(rows, err, scanQuoteRequest)
}

func (q *Queries) ListQuoteRequestsSince(ctx context.Context, since time.Time, limit int64) ([]QuoteRequest, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests
WHERE created_at >= ? ORDER BY created_at DESC, id DESC LIMIT ?`, since, limit)
	return collect(rows, err, scanQuoteRequest)
}

func (q *Queries) CountQuoteRequestsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote_requests WHERE created_at >= ? AND created_at < ?`, from, to).Scan(&n)
	return n, err
}

func (q *Queries) GetQuoteRequest(ctx context.Context, id int64) (QuoteRequest, error) {
	return scanQuoteRequest(q.db.QueryRowContext(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests WHERE id = ?`, id))
}

func (q *Queries) UpdateQuoteRequestStatus(ctx context.Context, id int64, status string) (QuoteRequest, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE quote_requests SET status = ? WHERE id = ? RETURNING `+quoteRequestColumns, status, id)
	return scanQuoteRequest(row)
}

func (q *Queries) DeleteQuoteRequest(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM quote_requests WHERE id = ?`, id)
	return err
}

// Chat leads

const chatLeadColumns = `id, name, email, phone, interest, message, session_token, created_at, updated_at`

func scanChatLead(row rowScanner) (ChatLead, error) {
	var l ChatLead
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Interest, &l.Message, &l.SessionToken,
		&l.CreatedAt, &l.UpdatedAt)
	return l, err
}

type ChatLeadParams struct {
	Name         string
	Email        string
	Phone        string
	Interest     string
	Message      string
	SessionToken string
}

func (q *Queries) CreateChatLead(ctx context.Context, arg ChatLeadParams, now time.Time) (ChatLead, error) {
	row := q.db.QueryRowContext(ctx, `INSERT INTO chat_leads
(name, email, phone, interest, message, session_token, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+chatLeadColumns,
		arg.Name, arg.Email, arg.Phone, arg.Interest, arg.Message, arg.SessionToken, now, now)
	return scanChatLead(row)
}

func (q *Queries) UpdateChatLead(ctx context.Context, id int64, arg ChatLeadParams, now time.Time) (ChatLead, error) {
	row := q.db.QueryRowContext(ctx, `UPDATE chat_leads SET
name = ?, email = ?, phone = ?, interest = ?, message = ?, session_token = ?, updated_at = ?
WHERE id = ? RETURNING `+chatLeadColumns,
		arg.Name, arg.Email, arg.Phone, arg.Interest, arg.Message, arg.SessionToken, now, id)
	return scanChatLead(row)
}

func (q *Queries) GetChatLead(ctx context.Context, id int64) (ChatLead, error) {
	return scanChatLead(q.db.QueryRowContext(ctx, `SELECT `+chatLeadColumns+` FROM chat_leads WHERE id = ?`, id))
}

func (q *Queries) ListChatLeads(ctx context.Context) ([]ChatLead, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+chatLeadColumns+` FROM chat_leads ORDER BY created_at DESC, id DESC`)
	return collect(rows, err, scanChatLead)
}

func (q *Queries) ListChatLeadsSince(ctx context.Context, since time.Time, limit int64) ([]ChatLead, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+chatLeadColumns+` FROM chat_leads
WHERE created_at >= ? ORDER BY created_at DESC, id DESC LIMIT ?`, since, limit)
	return collect(rows, err, scanChatLead)
}

func (q *Queries) CountChatLeadsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_leads WHERE created_at >= ? AND created_at < ?`, from, to).Scan(&n)
	return n, err
}

func (q *Queries) DeleteChatLead(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM chat_leads WHERE id = ?`, id)
	return err
}
