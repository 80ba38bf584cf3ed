package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

// RegisterInput carries everything the registration transaction needs,
// including the client metadata recorded on consent rows.
type RegisterInput struct {
	Email       string
	Password    string
	UserType    string
	FirstName   string
	LastName    string
	CompanyName string
	Consents    map[string]bool
	IPAddress   string
	UserAgent   string
}

// TokenPair is the access/refresh pair returned by register, login and
// refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is the outcome of a successful authentication operation.
type AuthResult struct {
	Account domain.Account
	Profile domain.Profile
	Tokens  TokenPair
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// CreateProjectInput carries a new draft listing.
type CreateProjectInput struct {
	OwnerAccountID uuid.UUID
	Title          string
	Description    string
	Skills         []string
	BudgetMin      float64
	BudgetMax      float64
	DurationWeeks  int
	Deadline       *time.Time
}

// UpdateProjectInput patches an existing listing. Nil fields are left
// untouched.
type UpdateProjectInput struct {
	AccountID     uuid.UUID
	ProjectID     uuid.UUID
	Title         *string
	Description   *string
	Skills        []string
	BudgetMin     *float64
	BudgetMax     *float64
	DurationWeeks *int
	Deadline      *time.Time
}

// ListProjectsInput narrows and pages the public listing.
type ListProjectsInput struct {
	Status    string
	Skills    []string
	MinBudget *float64
	MaxBudget *float64
	Search    string
	Mine      bool
	Caller    *ports.TokenClaims
	Page      int
	Limit     int
}

// ProjectPage is one page of listings with the total match count.
type ProjectPage struct {
	Projects []domain.Project
	Total    int64
	Page     int
	Limit    int
}
