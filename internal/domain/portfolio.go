package domain

import "context"

// Profile is the hero section of the page
type Profile struct {
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	Role        string `json:"role"`
	Tagline     string `json:"tagline"`
	Headshot    string `json:"headshot"`
	ResumeURL   string `json:"resume_url"`
	ResumeName  string `json:"resume_name"`
	ContactNote string `json:"contact_note"`
}

type NavLink struct {
	Label  string `json:"label"`
	Anchor string `json:"anchor"`
}

type SocialLink struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

type Skill struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	Featured     bool     `json:"featured"`
}

type Experience struct {
	Year             string   `json:"year"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
	Side             string   `json:"side"`
}

type TimelineStep struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Portfolio is everything the page renders besides the contact form
type Portfolio struct {
	Profile     Profile        `json:"profile"`
	NavLinks    []NavLink      `json:"nav_links"`
	SocialLinks []SocialLink   `json:"social_links"`
	Skills      []Skill        `json:"skills"`
	Projects    []Project      `json:"projects"`
	Experiences []Experience   `json:"experiences"`
	Timeline    []TimelineStep `json:"timeline"`
}

type PortfolioUsecase interface {
	Portfolio(ctx context.Context) *Portfolio
	FeaturedProjects(ctx context.Context) []Project
}
