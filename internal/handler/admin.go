// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/util"
)

// AdminHandler serves the gated JSON API behind the dashboard.
type AdminHandler struct {
	content     *service.ContentService
	blogs       *service.BlogService
	submissions *service.SubmissionService
	users       *service.UserService
	events      *service.EventService
	now         func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(content *service.ContentService, blogs *service.BlogService, submissions *service.SubmissionService,
	users *service.UserService, events *service.EventService) *AdminHandler {
	return &AdminHandler{
		content:     content,
		blogs:       blogs,
		submissions: submissions,
		users:       users,
		events:      events,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// audit records an admin mutation in the event log. Failures are logged
// and otherwise ignored.
func (h *AdminHandler) audit(r *http.Request, category, message string, meta map[string]any) {
	if h.events == nil {
		return
	}
	if err := h.events.LogInfo(r.Context(), category, message, middleware.UserID(r), meta); err != nil {
		slog.Error("failed to record admin event", "error", err, "message", message)
	}
}

func (h *AdminHandler) Services() Resource {
	c := h.content
	return crud[store.Service, service.ServiceInput, ServiceView]{
		list: c.ListServices, get: c.GetService, create: c.CreateService,
		update: c.UpdateService, del: c.DeleteService, view: serviceView,
	}.resource()
}

func (h *AdminHandler) Industries() Resource {
	c := h.content
	return crud[store.Industry, service.IndustryInput, IndustryView]{
		list: c.ListIndustries, get: c.GetIndustry, create: c.CreateIndustry,
		update: c.UpdateIndustry, del: c.DeleteIndustry, view: industryView,
	}.resource()
}

func (h *AdminHandler) Portfolios() Resource {
	c := h.content
	return crud[store.Portfolio, service.PortfolioInput, PortfolioView]{
		list: c.ListPortfolios, get: c.GetPortfolio, create: c.CreatePortfolio,
		update: c.UpdatePortfolio, del: c.DeletePortfolio, view: portfolioView,
	}.resource()
}

func (h *AdminHandler) Testimonials() Resource {
	c := h.content
	return crud[store.Testimonial, service.TestimonialInput, TestimonialView]{
		list: c.ListTestimonials, get: c.GetTestimonial, create: c.CreateTestimonial,
		update: c.UpdateTestimonial, del: c.DeleteTestimonial, view: testimonialView,
	}.resource()
}

func (h *AdminHandler) TeamMembers() Resource {
	c := h.content
	return crud[store.TeamMember, service.TeamMemberInput, TeamMemberView]{
		list: c.ListTeamMembers, get: c.GetTeamMember, create: c.CreateTeamMember,
		update: c.UpdateTeamMember, del: c.DeleteTeamMember, view: teamMemberView,
	}.resource()
}

func (h *AdminHandler) Jobs() Resource {
	c := h.content
	return crud[store.Job, service.JobInput, JobView]{
		list: c.ListJobs, get: c.GetJob, create: c.CreateJob,
		update: c.UpdateJob, del: c.DeleteJob, view: jobView,
	}.resource()
}

// Blogs includes the full markdown body and the derived publication status.
func (h *AdminHandler) Blogs() Resource {
	b := h.blogs
	return crud[store.Blog, service.BlogInput, BlogView]{
		list: b.ListBlogs, get: b.GetBlog, create: b.CreateBlog,
		update: b.UpdateBlog, del: b.DeleteBlog,
		view: func(blog store.Blog) BlogView { return blogView(blog, h.now()) },
	}.resource()
}

// BlogCategories refuses to delete a category that blogs still use.
func (h *AdminHandler) BlogCategories() Resource {
	b := h.blogs
	return crud[store.BlogCategory, service.CategoryInput, CategoryView]{
		list: b.ListCategories, create: b.CreateCategory,
		update: b.UpdateCategory, del: b.DeleteCategory, view: categoryView,
	}.resource()
}

// Lead inboxes

type statusInput struct {
	Status string `json:"status"`
}

type readInput struct {
	IsRead *bool `json:"isRead"`
}

// Applications supports ?job_id= and ?status= filters on the list.
func (h *AdminHandler) Applications() Resource {
	s := h.submissions
	res := crud[store.JobApplication, statusInput, ApplicationView]{
		update: func(ctx context.Context, id int64, in statusInput) (store.JobApplication, error) {
			return s.SetApplicationStatus(ctx, id, in.Status)
		},
		del:  s.DeleteApplication,
		view: applicationView,
	}.resource()

	res.List = func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		apps, err := s.ListApplications(r.Context(), util.ParseNullInt64Positive(q.Get("job_id")), q.Get("status"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newList(mapAll(apps, applicationView)))
	}
	return res
}

func (h *AdminHandler) Contacts() Resource {
	s := h.submissions
	return crud[store.ContactSubmission, readInput, ContactView]{
		list: s.ListContacts,
		update: func(ctx context.Context, id int64, in readInput) (store.ContactSubmission, error) {
			if in.IsRead == nil {
				return store.ContactSubmission{}, &service.ValidationError{Field: "isRead", Message: "isRead is required"}
			}
			return s.MarkContactRead(ctx, id, *in.IsRead)
		},
		del:  s.DeleteContact,
		view: contactView,
	}.resource()
}

func (h *AdminHandler) Quotes() Resource {
	s := h.submissions
	return crud[store.QuoteRequest, statusInput, QuoteView]{
		list: s.ListQuotes,
		update: func(ctx context.Context, id int64, in statusInput) (store.QuoteRequest, error) {
			return s.SetQuoteStatus(ctx, id, in.Status)
		},
		del:  s.DeleteQuote,
		view: quoteView,
	}.resource()
}

func (h *AdminHandler) ChatLeads() Resource {
	s := h.submissions
	return crud[store.ChatLead, struct{}, ChatLeadView]{
		list: s.ListChatLeads, del: s.DeleteChatLead, view: chatLeadView,
	}.resource()
}

// Users deletes on behalf of the signed-in admin, so nobody can remove
// their own account.
func (h *AdminHandler) Users() Resource {
	u := h.users
	res := crud[store.User, service.UserInput, UserView]{
		list: u.ListUsers, get: u.GetUser, create: u.CreateUser,
		update: u.UpdateUser, view: userView,
	}.resource()

	res.Delete = func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := u.DeleteUser(r.Context(), middleware.UserID(r), id); err != nil {
			writeError(w, r, err)
			return
		}
		h.audit(r, model.EventCategoryUser, "User deleted", map[string]any{"user_id": id})
		w.WriteHeader(http.StatusNoContent)
	}
	return res
}

// Events handles GET /api/admin/events?level=&limit=.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	switch level {
	case "", model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError:
	default:
		http.Error(w, "level must be info, warning or error", http.StatusBadRequest)
		return
	}

	events, err := h.events.ListEvents(r.Context(), level, int64(queryInt(r, "limit", 100)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapAll(events, eventView)))
}

// UploadHandler accepts image uploads from the admin editors.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// multipartOverhead leaves room for form boundaries and headers.
const multipartOverhead = 1 << 20

// Upload handles POST /api/admin/uploads with the image in the "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, service.ErrTooLarge)
			return
		}
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	up, err := h.uploads.Save(r.Context(), file, header.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, up)
}
