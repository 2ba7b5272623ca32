// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mileusna/useragent"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
)

// CountryResolver maps a client IP to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// ClientInfo describes the visitor behind a public submission.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// SubmissionService handles the public lead forms and their admin triage.
// None of these rows appear on public pages, so nothing is revalidated.
type SubmissionService struct {
	queries   *store.Queries
	countries CountryResolver
	logger    *slog.Logger
	now       func() time.Time
}

// NewSubmissionService creates a SubmissionService. countries may be nil.
func NewSubmissionService(db *sql.DB, countries CountryResolver, logger *slog.Logger) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionService{
		queries:   store.New(db),
		countries: countries,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *SubmissionService) country(ip string) string {
	if s.countries == nil || ip == "" {
		return ""
	}
	return s.countries.Country(ip)
}

// Job applications

type ApplicationInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

// Apply records an application to an active job. Inactive or missing jobs
// are ErrNotFound.
func (s *SubmissionService) Apply(ctx context.Context, jobID int64, in ApplicationInput) (store.JobApplication, error) {
	in.Name = pick(&in.Name, "")
	in.Email = pick(&in.Email, "")
	if err := firstErr(required("name", in.Name), validEmail("email", in.Email)); err != nil {
		return store.JobApplication{}, err
	}

	job, err := s.queries.GetJob(ctx, jobID)
	if err != nil {
		return store.JobApplication{}, notFound(err)
	}
	if !job.IsActive {
		return store.JobApplication{}, ErrNotFound
	}

	app, err := s.queries.CreateJobApplication(ctx, store.CreateJobApplicationParams{
		JobID:       job.ID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       pick(&in.Phone, ""),
		ResumeUrl:   pick(&in.ResumeURL, ""),
		CoverLetter: pick(&in.CoverLetter, ""),
		Status:      string(model.ApplicationNew),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return app, err
	}
	s.logger.Info("job application received", "category", model.EventCategoryLead, "job_id", job.ID, "application_id", app.ID)
	return app, nil
}

// ListApplications filters by job and status; zero values match everything.
func (s *SubmissionService) ListApplications(ctx context.Context, jobID sql.NullInt64, status string) ([]store.JobApplication, error) {
	if status != "" && !model.ApplicationStatus(status).Valid() {
		return nil, invalid("status", "status must be one of NEW, SHORTLISTED, REJECTED")
	}
	return s.queries.ListJobApplications(ctx, store.ListJobApplicationsParams{JobID: jobID, Status: status})
}

// SetApplicationStatus moves an application to status.
func (s *SubmissionService) SetApplicationStatus(ctx context.Context, id int64, status string) (store.JobApplication, error) {
	if !model.ApplicationStatus(status).Valid() {
		return store.JobApplication{}, invalid("status", "status must be one of NEW, SHORTLISTED, REJECTED")
	}
	app, err := s.queries.UpdateJobApplicationStatus(ctx, id, status, s.now())
	return app, notFound(err)
}

func (s *SubmissionService) DeleteApplication(ctx context.Context, id int64) error {
	if _, err := s.queries.GetJobApplication(ctx, id); err != nil {
		return notFound(err)
	}
	return s.queries.DeleteJobApplication(ctx, id)
}

// Contact submissions

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact stores a contact form, tagging it with the parsed browser,
// OS and country of the client.
func (s *SubmissionService) SubmitContact(ctx context.Context, in ContactInput, client ClientInfo) (store.ContactSubmission, error) {
	p := store.CreateContactSubmissionParams{
		Name:      pick(&in.Name, ""),
		Email:     pick(&in.Email, ""),
		Phone:     pick(&in.Phone, ""),
		Company:   pick(&in.Company, ""),
		Subject:   pick(&in.Subject, ""),
		Message:   pick(&in.Message, ""),
		UserAgent: client.UserAgent,
		Country:   s.country(client.IP),
		CreatedAt: s.now(),
	}
	if err := firstErr(required("name", p.Name), validEmail("email", p.Email), required("message", p.Message)); err != nil {
		return store.ContactSubmission{}, err
	}
	if client.UserAgent != "" {
		ua := useragent.Parse(client.UserAgent)
		p.Browser = ua.Name
		p.Os = ua.OS
	}

	sub, err := s.queries.CreateContactSubmission(ctx, p)
	if err != nil {
		return sub, err
	}
	s.logger.Info("contact submission received", "category", model.EventCategoryLead, "submission_id", sub.ID, "country", sub.Country)
	return sub, nil
}

func (s *SubmissionService) ListContacts(ctx context.Context) ([]store.ContactSubmission, error) {
	return s.queries.ListContactSubmissions(ctx)
}

func (s *SubmissionService) MarkContactRead(ctx context.Context, id int64, read bool) (store.ContactSubmission, error) {
	sub, err := s.queries.SetContactSubmissionRead(ctx, id, read)
	return sub, notFound(err)
}

func (s *SubmissionService) DeleteContact(ctx context.Context, id int64) error {
	if _, err := s.queries.GetContactSubmission(ctx, id); err != nil {
		return notFound(err)
	}
	return s.queries.DeleteContactSubmission(ctx, id)
}

// Quote requests

type QuoteInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Service  string `json:"service"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	Details  string `json:"details"`
}

func (s *SubmissionService) SubmitQuote(ctx context.Context, in QuoteInput, client ClientInfo) (store.QuoteRequest, error) {
	p := store.CreateQuoteRequestParams{
		Name:      pick(&in.Name, ""),
		Email:     pick(&in.Email, ""),
		Phone:     pick(&in.Phone, ""),
		Company:   pick(&in.Company, ""),
		Service:   pick(&in.Service, ""),
		Budget:    pick(&in.Budget, ""),
		Timeline:  pick(&in.Timeline, ""),
		Details:   pick(&in.Details, ""),
		Country:   s.country(client.IP),
		CreatedAt: s.now(),
	}
	if err := firstErr(required("name", p.Name), validEmail("email", p.Email), required("service", p.Service)); err != nil {
		return store.QuoteRequest{}, err
	}

	q, err := s.queries.CreateQuoteRequest(ctx, p)
	if err != nil {
		return q, err
	}
	s.logger.Info("quote request received", "category", model.EventCategoryLead, "quote_id", q.ID, "service", q.Service)
	return q, nil
}

func (s *SubmissionService) ListQuotes(ctx context.Context) ([]store.QuoteRequest, error) {
	return s.queries.ListQuoteRequests(ctx)
}

func (s *SubmissionService) SetQuoteStatus(ctx context.Context, id int64, status string) (store.QuoteRequest, error) {
	if !model.IsValidQuoteStatus(status) {
		return store.QuoteRequest{}, invalid("status", "status must be one of new, contacted, closed")
	}
	q, err := s.queries.UpdateQuoteRequestStatus(ctx, id, status)
	return q, notFound(err)
}

func (s *SubmissionService) DeleteQuote(ctx context.Context, id int64) error {
	if _, err := s.queries.GetQuoteRequest(ctx, id); err != nil {
		return notFound(err)
	}
	return s.queries.DeleteQuoteRequest(ctx, id)
}

// Chat leads

type ChatLeadInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
	Message  string `json:"message"`
}

// SubmitChatLead creates a lead, or updates the lead previously created in
// the same visitor session (existingID > 0). Blank fields on an update keep
// their stored values.
func (s *SubmissionService) SubmitChatLead(ctx context.Context, existingID int64, sessionToken string, in ChatLeadInput) (store.ChatLead, error) {
	p := store.ChatLeadParams{
		Name:         pick(&in.Name, ""),
		Email:        pick(&in.Email, ""),
		Phone:        pick(&in.Phone, ""),
		Interest:     pick(&in.Interest, ""),
		Message:      pick(&in.Message, ""),
		SessionToken: sessionToken,
	}

	if existingID > 0 {
		cur, err := s.queries.GetChatLead(ctx, existingID)
		switch {
		case err == nil:
			p = mergeChatLead(cur, p)
			if err := validateChatLead(p); err != nil {
				return store.ChatLead{}, err
			}
			return s.queries.UpdateChatLead(ctx, existingID, p, s.now())
		case !errors.Is(err, sql.ErrNoRows):
			return store.ChatLead{}, err
		}
	}

	if err := validateChatLead(p); err != nil {
		return store.ChatLead{}, err
	}
	lead, err := s.queries.CreateChatLead(ctx, p, s.now())
	if err != nil {
		return lead, err
	}
	s.logger.Info("chat lead captured", "category", model.EventCategoryLead, "lead_id", lead.ID)
	return lead, nil
}

func mergeChatLead(cur store.ChatLead, p store.ChatLeadParams) store.ChatLeadParams {
	keep := func(next, prev string) string {
		if next == "" {
			return prev
		}
		return next
	}
	p.Name = keep(p.Name, cur.Name)
	p.Email = keep(p.Email, cur.Email)
	p.Phone = keep(p.Phone, cur.Phone)
	p.Interest = keep(p.Interest, cur.Interest)
	p.Message = keep(p.Message, cur.Message)
	return p
}

func validateChatLead(p store.ChatLeadParams) error {
	if p.Email == "" && p.Phone == "" {
		return invalid("email", "email or phone is required")
	}
	if p.Email != "" {
		return validEmail("email", p.Email)
	}
	return nil
}

func (s *SubmissionService) ListChatLeads(ctx context.Context) ([]store.ChatLead, error) {
	return s.queries.ListChatLeads(ctx)
}

func (s *SubmissionService) DeleteChatLead(ctx context.Context, id int64) error {
	if _, err := s.queries.GetChatLead(ctx, id); err != nil {
		return notFound(err)
	}
	return s.queries.DeleteChatLead(ctx, id)
}
