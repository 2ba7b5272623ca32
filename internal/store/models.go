// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

type Service struct {
	ID               int64
	Title            string
	Slug             string
	ShortDescription string
	Description      string
	Icon             string
	Image            string
	DisplayOrder     sql.NullInt64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Industry struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	Icon         string
	Image        string
	DisplayOrder sql.NullInt64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Portfolio struct {
	ID           int64
	Title        string
	Slug         string
	Client       string
	IndustryID   sql.NullInt64
	Summary      string
	Content      string
	Image        string
	ProjectUrl   string
	DisplayOrder sql.NullInt64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Testimonial struct {
	ID           int64
	Name         string
	Role         string
	Company      string
	Quote        string
	Avatar       string
	Rating       int64
	DisplayOrder sql.NullInt64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TeamMember struct {
	ID           int64
	Name         string
	Position     string
	Bio          string
	Photo        string
	LinkedinUrl  string
	DisplayOrder sql.NullInt64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BlogCategory struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Blog struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	CoverImage  string
	Author      string
	CategoryID  int64
	ReadTime    int64
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Job struct {
	ID             int64
	Title          string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Requirements   string
	DisplayOrder   sql.NullInt64
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type JobApplication struct {
	ID          int64
	JobID       int64
	Name        string
	Email       string
	Phone       string
	ResumeUrl   string
	CoverLetter string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ContactSubmission struct {
	ID        int64
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
	IsRead    bool
	CreatedAt time.Time
}

type QuoteRequest struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Company   string
	Service   string
	Budget    string
	Timeline  string
	Details   string
	Country   string
	Status    string
	CreatedAt time.Time
}

type ChatLead struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Interest     string
	Message      string
	SessionToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
