// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/nxtech/nxtech-site/internal/revalidate"
	"github.com/nxtech/nxtech-site/internal/store"
	"github.com/nxtech/nxtech-site/internal/util"
)

// ContentService owns admin writes to the content kinds that feed the
// public pages, other than blogs.
type ContentService struct {
	queries *store.Queries
	now     func() time.Time

	services     *Revalidating[store.Service]
	industries   *Revalidating[store.Industry]
	portfolios   *Revalidating[store.Portfolio]
	testimonials *Revalidating[store.Testimonial]
	teamMembers  *Revalidating[store.TeamMember]
	jobs         *Revalidating[store.Job]
}

// NewContentService wires a revalidating repository per content kind.
func NewContentService(db *sql.DB, inv revalidate.Invalidator) *ContentService {
	q := store.New(db)
	return &ContentService{
		queries: q,
		now:     func() time.Time { return time.Now().UTC() },
		services: NewRevalidating(revalidate.MustTarget(revalidate.KindService), Entity[store.Service]{
			Load:    q.GetService,
			Remove:  q.DeleteService,
			Key:     func(s store.Service) string { return s.Slug },
			Visible: func(s store.Service, _ time.Time) bool { return s.IsActive },
		}, inv),
		industries: NewRevalidating(revalidate.MustTarget(revalidate.KindIndustry), Entity[store.Industry]{
			Load:    q.GetIndustry,
			Remove:  q.DeleteIndustry,
			Key:     func(i store.Industry) string { return i.Slug },
			Visible: func(i store.Industry, _ time.Time) bool { return i.IsActive },
		}, inv),
		portfolios: NewRevalidating(revalidate.MustTarget(revalidate.KindPortfolio), Entity[store.Portfolio]{
			Load:    q.GetPortfolio,
			Remove:  q.DeletePortfolio,
			Key:     func(p store.Portfolio) string { return p.Slug },
			Visible: func(p store.Portfolio, _ time.Time) bool { return p.IsActive },
			Related: industryPages(q),
		}, inv),
		testimonials: NewRevalidating(revalidate.MustTarget(revalidate.KindTestimonial), Entity[store.Testimonial]{
			Load:    q.GetTestimonial,
			Remove:  q.DeleteTestimonial,
			Key:     func(store.Testimonial) string { return "" },
			Visible: func(t store.Testimonial, _ time.Time) bool { return t.IsActive },
		}, inv),
		teamMembers: NewRevalidating(revalidate.MustTarget(revalidate.KindTeamMember), Entity[store.TeamMember]{
			Load:    q.GetTeamMember,
			Remove:  q.DeleteTeamMember,
			Key:     func(store.TeamMember) string { return "" },
			Visible: func(m store.TeamMember, _ time.Time) bool { return m.IsActive },
		}, inv),
		jobs: NewRevalidating(revalidate.MustTarget(revalidate.KindJob), Entity[store.Job]{
			Load:    q.GetJob,
			Remove:  q.DeleteJob,
			Key:     func(j store.Job) string { return strconv.FormatInt(j.ID, 10) },
			Visible: func(j store.Job, _ time.Time) bool { return j.IsActive },
		}, inv),
	}
}

// industryPages maps portfolios to the industry detail pages that list
// them. Rows without an industry have none.
func industryPages(q *store.Queries) func(context.Context, ...store.Portfolio) []string {
	industry := revalidate.MustTarget(revalidate.KindIndustry)
	return func(ctx context.Context, rows ...store.Portfolio) []string {
		var paths []string
		for _, p := range rows {
			if !p.IndustryID.Valid {
				continue
			}
			ind, err := q.GetIndustry(ctx, p.IndustryID.Int64)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Warn("resolving industry page for portfolio", "portfolio_id", p.ID, "error", err)
				}
				continue
			}
			paths = append(paths, industry.DetailPath(ind.Slug))
		}
		return paths
	}
}

// Services

type ServiceInput struct {
	Title            *string         `json:"title"`
	Slug             *string         `json:"slug"`
	ShortDescription *string         `json:"shortDescription"`
	Description      *string         `json:"description"`
	Icon             *string         `json:"icon"`
	Image            *string         `json:"image"`
	DisplayOrder     util.PatchInt64 `json:"displayOrder"`
	IsActive         *bool           `json:"isActive"`
}

func (s *ContentService) ListServices(ctx context.Context) ([]store.Service, error) {
	return s.queries.ListServices(ctx)
}

func (s *ContentService) GetService(ctx context.Context, id int64) (store.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *ContentService) CreateService(ctx context.Context, in ServiceInput) (store.Service, error) {
	return s.services.Create(ctx, func(ctx context.Context) (store.Service, error) {
		p, err := s.serviceParams(ctx, in, store.Service{IsActive: true})
		if err != nil {
			return store.Service{}, err
		}
		created, err := s.queries.CreateService(ctx, p, s.now())
		return created, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) UpdateService(ctx context.Context, id int64, in ServiceInput) (store.Service, error) {
	return s.services.Update(ctx, id, func(ctx context.Context, cur store.Service) (store.Service, error) {
		p, err := s.serviceParams(ctx, in, cur)
		if err != nil {
			return store.Service{}, err
		}
		updated, err := s.queries.UpdateService(ctx, id, p, s.now())
		return updated, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) DeleteService(ctx context.Context, id int64) error {
	_, err := s.services.Delete(ctx, id)
	return err
}

func (s *ContentService) serviceParams(ctx context.Context, in ServiceInput, cur store.Service) (store.ServiceParams, error) {
	p := store.ServiceParams{
		Title:            pick(in.Title, cur.Title),
		ShortDescription: pick(in.ShortDescription, cur.ShortDescription),
		Description:      pick(in.Description, cur.Description),
		Icon:             pick(in.Icon, cur.Icon),
		Image:            pick(in.Image, cur.Image),
		DisplayOrder:     in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:         pickBool(in.IsActive, cur.IsActive),
	}
	if err := firstErr(required("title", p.Title), required("shortDescription", p.ShortDescription)); err != nil {
		return p, err
	}
	slug, err := slugResolver{s.queries, store.SlugTableServices}.resolve(ctx, in.Slug, cur.Slug, p.Title, cur.ID)
	p.Slug = slug
	return p, err
}

// Industries

type IndustryInput struct {
	Name         *string         `json:"name"`
	Slug         *string         `json:"slug"`
	Description  *string         `json:"description"`
	Icon         *string         `json:"icon"`
	Image        *string         `json:"image"`
	DisplayOrder util.PatchInt64 `json:"displayOrder"`
	IsActive     *bool           `json:"isActive"`
}

func (s *ContentService) ListIndustries(ctx context.Context) ([]store.Industry, error) {
	return s.queries.ListIndustries(ctx)
}

func (s *ContentService) GetIndustry(ctx context.Context, id int64) (store.Industry, error) {
	return s.industries.Get(ctx, id)
}

func (s *ContentService) CreateIndustry(ctx context.Context, in IndustryInput) (store.Industry, error) {
	return s.industries.Create(ctx, func(ctx context.Context) (store.Industry, error) {
		p, err := s.industryParams(ctx, in, store.Industry{IsActive: true})
		if err != nil {
			return store.Industry{}, err
		}
		created, err := s.queries.CreateIndustry(ctx, p, s.now())
		return created, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) UpdateIndustry(ctx context.Context, id int64, in IndustryInput) (store.Industry, error) {
	return s.industries.Update(ctx, id, func(ctx context.Context, cur store.Industry) (store.Industry, error) {
		p, err := s.industryParams(ctx, in, cur)
		if err != nil {
			return store.Industry{}, err
		}
		updated, err := s.queries.UpdateIndustry(ctx, id, p, s.now())
		return updated, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) DeleteIndustry(ctx context.Context, id int64) error {
	_, err := s.industries.Delete(ctx, id)
	return err
}

func (s *ContentService) industryParams(ctx context.Context, in IndustryInput, cur store.Industry) (store.IndustryParams, error) {
	p := store.IndustryParams{
		Name:         pick(in.Name, cur.Name),
		Description:  pick(in.Description, cur.Description),
		Icon:         pick(in.Icon, cur.Icon),
		Image:        pick(in.Image, cur.Image),
		DisplayOrder: in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:     pickBool(in.IsActive, cur.IsActive),
	}
	if err := required("name", p.Name); err != nil {
		return p, err
	}
	slug, err := slugResolver{s.queries, store.SlugTableIndustries}.resolve(ctx, in.Slug, cur.Slug, p.Name, cur.ID)
	p.Slug = slug
	return p, err
}

// Portfolios

type PortfolioInput struct {
	Title        *string         `json:"title"`
	Slug         *string         `json:"slug"`
	Client       *string         `json:"client"`
	IndustryID   util.PatchInt64 `json:"industryId"`
	Summary      *string         `json:"summary"`
	Content      *string         `json:"content"`
	Image        *string         `json:"image"`
	ProjectURL   *string         `json:"projectUrl"`
	DisplayOrder util.PatchInt64 `json:"displayOrder"`
	IsActive     *bool           `json:"isActive"`
}

func (s *ContentService) ListPortfolios(ctx context.Context) ([]store.Portfolio, error) {
	return s.queries.ListPortfolios(ctx)
}

func (s *ContentService) GetPortfolio(ctx context.Context, id int64) (store.Portfolio, error) {
	return s.portfolios.Get(ctx, id)
}

func (s *ContentService) CreatePortfolio(ctx context.Context, in PortfolioInput) (store.Portfolio, error) {
	return s.portfolios.Create(ctx, func(ctx context.Context) (store.Portfolio, error) {
		p, err := s.portfolioParams(ctx, in, store.Portfolio{IsActive: true})
		if err != nil {
			return store.Portfolio{}, err
		}
		created, err := s.queries.CreatePortfolio(ctx, p, s.now())
		return created, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) UpdatePortfolio(ctx context.Context, id int64, in PortfolioInput) (store.Portfolio, error) {
	return s.portfolios.Update(ctx, id, func(ctx context.Context, cur store.Portfolio) (store.Portfolio, error) {
		p, err := s.portfolioParams(ctx, in, cur)
		if err != nil {
			return store.Portfolio{}, err
		}
		updated, err := s.queries.UpdatePortfolio(ctx, id, p, s.now())
		return updated, uniqueViolation(err, "slug")
	})
}

func (s *ContentService) DeletePortfolio(ctx context.Context, id int64) error {
	_, err := s.portfolios.Delete(ctx, id)
	return err
}

func (s *ContentService) portfolioParams(ctx context.Context, in PortfolioInput, cur store.Portfolio) (store.PortfolioParams, error) {
	p := store.PortfolioParams{
		Title:        pick(in.Title, cur.Title),
		Client:       pick(in.Client, cur.Client),
		IndustryID:   in.IndustryID.Apply(cur.IndustryID),
		Summary:      pick(in.Summary, cur.Summary),
		Content:      pick(in.Content, cur.Content),
		Image:        pick(in.Image, cur.Image),
		ProjectUrl:   pick(in.ProjectURL, cur.ProjectUrl),
		DisplayOrder: in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:     pickBool(in.IsActive, cur.IsActive),
	}
	if err := required("title", p.Title); err != nil {
		return p, err
	}
	if p.IndustryID.Valid {
		if _, err := s.queries.GetIndustry(ctx, p.IndustryID.Int64); errors.Is(err, sql.ErrNoRows) {
			return p, invalid("industryId", "industry %d does not exist", p.IndustryID.Int64)
		} else if err != nil {
			return p, err
		}
	}
	slug, err := slugResolver{s.queries, store.SlugTablePortfolios}.resolve(ctx, in.Slug, cur.Slug, p.Title, cur.ID)
	p.Slug = slug
	return p, err
}

// Testimonials

type TestimonialInput struct {
	Name         *string         `json:"name"`
	Role         *string         `json:"role"`
	Company      *string         `json:"company"`
	Quote        *string         `json:"quote"`
	Avatar       *string         `json:"avatar"`
	Rating       *int64          `json:"rating"`
	DisplayOrder util.PatchInt64 `json:"displayOrder"`
	IsActive     *bool           `json:"isActive"`
}

func (s *ContentService) ListTestimonials(ctx context.Context) ([]store.Testimonial, error) {
	return s.queries.ListTestimonials(ctx)
}

func (s *ContentService) GetTestimonial(ctx context.Context, id int64) (store.Testimonial, error) {
	return s.testimonials.Get(ctx, id)
}

func (s *ContentService) CreateTestimonial(ctx context.Context, in TestimonialInput) (store.Testimonial, error) {
	return s.testimonials.Create(ctx, func(ctx context.Context) (store.Testimonial, error) {
		p, err := testimonialParams(in, store.Testimonial{Rating: 5, IsActive: true})
		if err != nil {
			return store.Testimonial{}, err
		}
		return s.queries.CreateTestimonial(ctx, p, s.now())
	})
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (store.Testimonial, error) {
	return s.testimonials.Update(ctx, id, func(ctx context.Context, cur store.Testimonial) (store.Testimonial, error) {
		p, err := testimonialParams(in, cur)
		if err != nil {
			return store.Testimonial{}, err
		}
		return s.queries.UpdateTestimonial(ctx, id, p, s.now())
	})
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := s.testimonials.Delete(ctx, id)
	return err
}

func testimonialParams(in TestimonialInput, cur store.Testimonial) (store.TestimonialParams, error) {
	p := store.TestimonialParams{
		Name:         pick(in.Name, cur.Name),
		Role:         pick(in.Role, cur.Role),
		Company:      pick(in.Company, cur.Company),
		Quote:        pick(in.Quote, cur.Quote),
		Avatar:       pick(in.Avatar, cur.Avatar),
		Rating:       cur.Rating,
		DisplayOrder: in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:     pickBool(in.IsActive, cur.IsActive),
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if err := firstErr(required("name", p.Name), required("quote", p.Quote)); err != nil {
		return p, err
	}
	if p.Rating < 1 || p.Rating > 5 {
		return p, invalid("rating", "rating must be between 1 and 5")
	}
	return p, nil
}

// Team members

type TeamMemberInput struct {
	Name         *string         `json:"name"`
	Position     *string         `json:"position"`
	Bio          *string         `json:"bio"`
	Photo        *string         `json:"photo"`
	LinkedinURL  *string         `json:"linkedinUrl"`
	DisplayOrder util.PatchInt64 `json:"displayOrder"`
	IsActive     *bool           `json:"isActive"`
}

func (s *ContentService) ListTeamMembers(ctx context.Context) ([]store.TeamMember, error) {
	return s.queries.ListTeamMembers(ctx)
}

func (s *ContentService) GetTeamMember(ctx context.Context, id int64) (store.TeamMember, error) {
	return s.teamMembers.Get(ctx, id)
}

func (s *ContentService) CreateTeamMember(ctx context.Context, in TeamMemberInput) (store.TeamMember, error) {
	return s.teamMembers.Create(ctx, func(ctx context.Context) (store.TeamMember, error) {
		p, err := teamMemberParams(in, store.TeamMember{IsActive: true})
		if err != nil {
			return store.TeamMember{}, err
		}
		return s.queries.CreateTeamMember(ctx, p, s.now())
	})
}

func (s *ContentService) UpdateTeamMember(ctx context.Context, id int64, in TeamMemberInput) (store.TeamMember, error) {
	return s.teamMembers.Update(ctx, id, func(ctx context.Context, cur store.TeamMember) (store.TeamMember, error) {
		p, err := teamMemberParams(in, cur)
		if err != nil {
			return store.TeamMember{}, err
		}
		return s.queries.UpdateTeamMember(ctx, id, p, s.now())
	})
}

func (s *ContentService) DeleteTeamMember(ctx context.Context, id int64) error {
	_, err := s.teamMembers.Delete(ctx, id)
	return err
}

func teamMemberParams(in TeamMemberInput, cur store.TeamMember) (store.TeamMemberParams, error) {
	p := store.TeamMemberParams{
		Name:         pick(in.Name, cur.Name),
		Position:     pick(in.Position, cur.Position),
		Bio:          pick(in.Bio, cur.Bio),
		Photo:        pick(in.Photo, cur.Photo),
		LinkedinUrl:  pick(in.LinkedinURL, cur.LinkedinUrl),
		DisplayOrder: in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:     pickBool(in.IsActive, cur.IsActive),
	}
	return p, firstErr(required("name", p.Name), required("position", p.Position))
}

// Jobs

type JobInput struct {
	Title          *string         `json:"title"`
	Department     *string         `json:"department"`
	Location       *string         `json:"location"`
	EmploymentType *string         `json:"employmentType"`
	Description    *string         `json:"description"`
	Requirements   *string         `json:"requirements"`
	DisplayOrder   util.PatchInt64 `json:"displayOrder"`
	IsActive       *bool           `json:"isActive"`
}

func (s *ContentService) ListJobs(ctx context.Context) ([]store.Job, error) {
	return s.queries.ListJobs(ctx)
}

func (s *ContentService) ListActiveJobs(ctx context.Context) ([]store.Job, error) {
	return s.queries.ListActiveJobs(ctx)
}

func (s *ContentService) GetJob(ctx context.Context, id int64) (store.Job, error) {
	return s.jobs.Get(ctx, id)
}

func (s *ContentService) CreateJob(ctx context.Context, in JobInput) (store.Job, error) {
	return s.jobs.Create(ctx, func(ctx context.Context) (store.Job, error) {
		p, err := jobParams(in, store.Job{EmploymentType: "Full-time", IsActive: true})
		if err != nil {
			return store.Job{}, err
		}
		return s.queries.CreateJob(ctx, p, s.now())
	})
}

func (s *ContentService) UpdateJob(ctx context.Context, id int64, in JobInput) (store.Job, error) {
	return s.jobs.Update(ctx, id, func(ctx context.Context, cur store.Job) (store.Job, error) {
		p, err := jobParams(in, cur)
		if err != nil {
			return store.Job{}, err
		}
		return s.queries.UpdateJob(ctx, id, p, s.now())
	})
}

func (s *ContentService) DeleteJob(ctx context.Context, id int64) error {
	_, err := s.jobs.Delete(ctx, id)
	return err
}

func jobParams(in JobInput, cur store.Job) (store.JobParams, error) {
	p := store.JobParams{
		Title:          pick(in.Title, cur.Title),
		Department:     pick(in.Department, cur.Department),
		Location:       pick(in.Location, cur.Location),
		EmploymentType: pick(in.EmploymentType, cur.EmploymentType),
		Description:    pick(in.Description, cur.Description),
		Requirements:   pick(in.Requirements, cur.Requirements),
		DisplayOrder:   in.DisplayOrder.Apply(cur.DisplayOrder),
		IsActive:       pickBool(in.IsActive, cur.IsActive),
	}
	return p, firstErr(
		required("title", p.Title),
		required("location", p.Location),
		required("employmentType", p.EmploymentType),
		required("description", p.Description),
	)
}
