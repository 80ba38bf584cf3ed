package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus tracks a listing through its lifecycle.
type ProjectStatus string

const (
	ProjectStatusDraft  ProjectStatus = "draft"
	ProjectStatusOpen   ProjectStatus = "open"
	ProjectStatusClosed ProjectStatus = "closed"
)

// ParseProjectStatus validates a wire value against the closed set.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case ProjectStatusDraft, ProjectStatusOpen, ProjectStatusClosed:
		return ProjectStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

// Project is a listing posted by a company account.
type Project struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	OwnerAccountID uuid.UUID
	Title          string
	Description    string
	Skills         []string
	BudgetMin      float64
	BudgetMax      float64
	DurationWeeks  int
	Deadline       *time.Time
	Status         ProjectStatus
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	projectTitleMin       = 10
	projectTitleMax       = 200
	projectDescriptionMin = 10
	projectDescriptionMax = 5000
	projectSkillsMax      = 20
)

// ValidateProjectContent checks the field constraints shared by create
// and update.
func ValidateProjectContent(title, description string, skills []string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if n := len(title); n < projectTitleMin || n > projectTitleMax {
		return fmt.Errorf("%w: title must be %d to %d characters", ErrInvalidInput, projectTitleMin, projectTitleMax)
	}
	if n := len(description); n < projectDescriptionMin || n > projectDescriptionMax {
		return fmt.Errorf("%w: description must be %d to %d characters", ErrInvalidInput, projectDescriptionMin, projectDescriptionMax)
	}
	if len(skills) == 0 || len(skills) > projectSkillsMax {
		return fmt.Errorf("%w: between 1 and %d skills are required", ErrInvalidInput, projectSkillsMax)
	}
	for _, s := range skills {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: skills must not be blank", ErrInvalidInput)
		}
	}
	return nil
}

// ValidateBudget checks the optional budget range.
func ValidateBudget(min, max float64) error {
	if min < 0 || max < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}
	if max > 0 && min > max {
		return fmt.Errorf("%w: budgetMin must not exceed budgetMax", ErrInvalidInput)
	}
	return nil
}

// ValidateDuration checks the optional duration estimate.
func ValidateDuration(weeks int) error {
	if weeks < 0 {
		return fmt.Errorf("%w: durationWeeks must not be negative", ErrInvalidInput)
	}
	return nil
}

// CanPublish reports whether the project may move to published.
func (p Project) CanPublish() error {
	if p.Status != ProjectStatusDraft {
		return fmt.Errorf("%w: only draft projects can be published", ErrInvalidStatus)
	}
	return nil
}

// ApplicationStatus tracks a professional's application to a project.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a professional's bid on a published project.
type Application struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	ProfessionalID uuid.UUID
	CoverLetter    string
	Status         ApplicationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
