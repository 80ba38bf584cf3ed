package http

import (
	"time"

	"github.com/openlance/openlance/internal/application"
	"github.com/openlance/openlance/internal/domain"
)

// accountView is the sanitized account shape. The password hash never
// crosses this boundary.
type accountView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	UserType    string     `json:"userType"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type professionalProfileView struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Headline   string   `json:"headline,omitempty"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourlyRate,omitempty"`
}

type companyProfileView struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

type tokenPairView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type authResultView struct {
	User    accountView   `json:"user"`
	Profile any           `json:"profile,omitempty"`
	Tokens  tokenPairView `json:"tokens"`
}

type projectView struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"companyId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Skills        []string   `json:"skills"`
	BudgetMin     float64    `json:"budgetMin"`
	BudgetMax     float64    `json:"budgetMax"`
	DurationWeeks int        `json:"durationWeeks,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type projectPageView struct {
	Projects []projectView `json:"projects"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}

func toAccountView(a domain.Account) accountView {
	return accountView{
		ID:          a.ID.String(),
		Email:       a.Email,
		UserType:    string(a.UserType),
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}

func toProfileView(p domain.Profile) any {
	switch v := p.(type) {
	case domain.ProfessionalProfile:
		skills := v.Skills
		if skills == nil {
			skills = []string{}
		}
		return professionalProfileView{
			ID:         v.ID.String(),
			FirstName:  v.FirstName,
			LastName:   v.LastName,
			Headline:   v.Headline,
			Skills:     skills,
			HourlyRate: v.HourlyRate,
		}
	case domain.CompanyProfile:
		return companyProfileView{
			ID:          v.ID.String(),
			CompanyName: v.CompanyName,
			Description: v.Description,
			Location:    v.Location,
			LogoURL:     v.LogoURL,
		}
	default:
		return nil
	}
}

func toAuthResultView(res application.AuthResult) authResultView {
	return authResultView{
		User:    toAccountView(res.Account),
		Profile: toProfileView(res.Profile),
		Tokens: tokenPairView{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	}
}

func toProjectView(p domain.Project) projectView {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return projectView{
		ID:            p.ID.String(),
		CompanyID:     p.CompanyID.String(),
		Title:         p.Title,
		Description:   p.Description,
		Skills:        skills,
		BudgetMin:     p.BudgetMin,
		BudgetMax:     p.BudgetMax,
		DurationWeeks: p.DurationWeeks,
		Deadline:      p.Deadline,
		Status:        string(p.Status),
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProjectPageView(page application.ProjectPage) projectPageView {
	projects := make([]projectView, 0, len(page.Projects))
	for _, p := range page.Projects {
		projects = append(projects, toProjectView(p))
	}
	return projectPageView{
		Projects: projects,
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
	}
}
