// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"time"

	"github.com/nxtech/nxtech-site/internal/model"
	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/util"
)

// JSON views of store rows. Field names match the admin request bodies.

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

type ServiceView struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Image            string    `json:"image"`
	DisplayOrder     *int64    `json:"displayOrder"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func serviceView(s store.Service) ServiceView {
	return ServiceView{
		ID:               s.ID,
		Title:            s.Title,
		Slug:             s.Slug,
		ShortDescription: s.ShortDescription,
		Description:      s.Description,
		Icon:             s.Icon,
		Image:            s.Image,
		DisplayOrder:     util.PtrFromNullInt64(s.DisplayOrder),
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

type IndustryView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	Image        string    `json:"image"`
	DisplayOrder *int64    `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func industryView(i store.Industry) IndustryView {
	return IndustryView{
		ID:           i.ID,
		Name:         i.Name,
		Slug:         i.Slug,
		Description:  i.Description,
		Icon:         i.Icon,
		Image:        i.Image,
		DisplayOrder: util.PtrFromNullInt64(i.DisplayOrder),
		IsActive:     i.IsActive,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

type PortfolioView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Client       string    `json:"client"`
	IndustryID   *int64    `json:"industryId"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Image        string    `json:"image"`
	ProjectURL   string    `json:"projectUrl"`
	DisplayOrder *int64    `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func portfolioView(p store.Portfolio) PortfolioView {
	return PortfolioView{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Client:       p.Client,
		IndustryID:   util.PtrFromNullInt64(p.IndustryID),
		Summary:      p.Summary,
		Content:      p.Content,
		Image:        p.Image,
		ProjectURL:   p.ProjectUrl,
		DisplayOrder: util.PtrFromNullInt64(p.DisplayOrder),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type TestimonialView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Company      string    `json:"company"`
	Quote        string    `json:"quote"`
	Avatar       string    `json:"avatar"`
	Rating       int64     `json:"rating"`
	DisplayOrder *int64    `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func testimonialView(t store.Testimonial) TestimonialView {
	return TestimonialView{
		ID:           t.ID,
		Name:         t.Name,
		Role:         t.Role,
		Company:      t.Company,
		Quote:        t.Quote,
		Avatar:       t.Avatar,
		Rating:       t.Rating,
		DisplayOrder: util.PtrFromNullInt64(t.DisplayOrder),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type TeamMemberView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Bio          string    `json:"bio"`
	Photo        string    `json:"photo"`
	LinkedinURL  string    `json:"linkedinUrl"`
	DisplayOrder *int64    `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func teamMemberView(m store.TeamMember) TeamMemberView {
	return TeamMemberView{
		ID:           m.ID,
		Name:         m.Name,
		Position:     m.Position,
		Bio:          m.Bio,
		Photo:        m.Photo,
		LinkedinURL:  m.LinkedinUrl,
		DisplayOrder: util.PtrFromNullInt64(m.DisplayOrder),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func categoryView(c store.BlogCategory) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

type BlogView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	ContentHTML string     `json:"contentHtml,omitempty"`
	CoverImage  string     `json:"coverImage"`
	Author      string     `json:"author"`
	CategoryID  int64      `json:"categoryId"`
	ReadTime    int64      `json:"readTime"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func blogView(b store.Blog, now time.Time) BlogView {
	return BlogView{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Content:     b.Content,
		CoverImage:  b.CoverImage,
		Author:      b.Author,
		CategoryID:  b.CategoryID,
		ReadTime:    b.ReadTime,
		Status:      model.PublicationFromColumns(b.PublishedAt, b.ScheduledAt, now).Stage.String(),
		PublishedAt: timePtr(b.PublishedAt),
		ScheduledAt: timePtr(b.ScheduledAt),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// blogSummary drops the body for listing payloads.
func blogSummary(b store.Blog, now time.Time) BlogView {
	v := blogView(b, now)
	v.Content = ""
	return v
}

type JobView struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements"`
	DisplayOrder   *int64    `json:"displayOrder"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func jobView(j store.Job) JobView {
	return JobView{
		ID:             j.ID,
		Title:          j.Title,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Description:    j.Description,
		Requirements:   j.Requirements,
		DisplayOrder:   util.PtrFromNullInt64(j.DisplayOrder),
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

type ApplicationView struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ResumeURL   string    `json:"resumeUrl"`
	CoverLetter string    `json:"coverLetter"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func applicationView(a store.JobApplication) ApplicationView {
	return ApplicationView{
		ID:          a.ID,
		JobID:       a.JobID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		ResumeURL:   a.ResumeUrl,
		CoverLetter: a.CoverLetter,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type ContactView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Country   string    `json:"country"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func contactView(c store.ContactSubmission) ContactView {
	return ContactView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Subject:   c.Subject,
		Message:   c.Message,
		Browser:   c.Browser,
		OS:        c.Os,
		Country:   c.Country,
		IsRead:    c.IsRead,
		CreatedAt: c.CreatedAt,
	}
}

type QuoteView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Budget    string    `json:"budget"`
	Timeline  string    `json:"timeline"`
	Details   string    `json:"details"`
	Country   string    `json:"country"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func quoteView(q store.QuoteRequest) QuoteView {
	return QuoteView{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Company:   q.Company,
		Service:   q.Service,
		Budget:    q.Budget,
		Timeline:  q.Timeline,
		Details:   q.Details,
		Country:   q.Country,
		Status:    q.Status,
		CreatedAt: q.CreatedAt,
	}
}

type ChatLeadView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Interest  string    `json:"interest"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func chatLeadView(c store.ChatLead) ChatLeadView {
	return ChatLeadView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Interest:  c.Interest,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type UserView struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func userView(u store.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		LastLoginAt: timePtr(u.LastLoginAt),
		CreatedAt:   u.CreatedAt,
	}
}

type EventView struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    *int64    `json:"userId"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

func eventView(e store.Event) EventView {
	return EventView{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		UserID:    util.PtrFromNullInt64(e.UserID),
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}
