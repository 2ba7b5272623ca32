// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/nxtech/nxtech-site/internal/middleware"
	"github.com/nxtech/nxtech-site/internal/service"
	"github.com/nxtech/nxtech-site/internal/session"
)

// FormsHandler accepts the public lead forms: job applications, contact
// messages, quote requests and chat widget leads.
type FormsHandler struct {
	submissions *service.SubmissionService
	visitors    *session.Visitors
}

// NewFormsHandler creates a FormsHandler. The chat lead route must run
// behind visitors.Middleware.
func NewFormsHandler(submissions *service.SubmissionService, visitors *session.Visitors) *FormsHandler {
	return &FormsHandler{submissions: submissions, visitors: visitors}
}

func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// Apply handles POST /api/jobs/{id}/applications.
func (h *FormsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var in service.ApplicationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	app, err := h.submissions.Apply(r.Context(), jobID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, applicationView(app))
}

// Contact handles POST /api/contact-submissions.
func (h *FormsHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	c, err := h.submissions.SubmitContact(r.Context(), in, clientInfo(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactView(c))
}

// Quote handles POST /api/quote-requests.
func (h *FormsHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var in service.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}

	q, err := h.submissions.SubmitQuote(r.Context(), in, clientInfo(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, quoteView(q))
}

// ChatLead handles POST /api/chat-leads. A visitor that already left a lead
// in this session updates it instead of creating another.
func (h *FormsHandler) ChatLead(w http.ResponseWriter, r *http.Request) {
	var in service.ChatLeadInput
	if !decodeJSON(w, r, &in) {
		return
	}

	ctx := r.Context()
	existing := h.visitors.ChatLeadID(ctx)
	lead, err := h.submissions.SubmitChatLead(ctx, existing, h.visitors.VisitorID(ctx), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.visitors.SetChatLeadID(ctx, lead.ID)

	status := http.StatusCreated
	if existing == lead.ID {
		status = http.StatusOK
	}
	writeJSON(w, status, chatLeadView(lead))
}
