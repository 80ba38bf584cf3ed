// Package ports declares the interfaces the application core depends on.
// Adapters implement them; tests substitute in-memory fakes.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
)

// CreateAccountTxParams carries everything the provisioning transaction
// must persist atomically alongside the account row.
type CreateAccountTxParams struct {
	Account  domain.Account
	Profile  domain.Profile
	Consents []domain.ConsentRecord
	Event    domain.OutboxEvent
}

// AccountRepository persists identity records.
type AccountRepository interface {
	// CreateAccountTx writes the account, its profile variant, its consent
	// records and the registration outbox event in one transaction. A
	// duplicate email surfaces as domain.ErrEmailTaken.
	CreateAccountTx(ctx context.Context, params CreateAccountTxParams) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ProfileRepository reads the profile variant attached to an account.
type ProfileRepository interface {
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (domain.Profile, error)
	CompanyByAccountID(ctx context.Context, accountID uuid.UUID) (domain.CompanyProfile, error)
}

// ProjectFilter narrows project listings. Skills matches projects
// requiring every listed skill; MinBudget and MaxBudget bound the
// overlap of the project's budget range.
type ProjectFilter struct {
	Status    domain.ProjectStatus
	CompanyID uuid.UUID
	Skills    []string
	MinBudget *float64
	MaxBudget *float64
	Search    string
	Limit     int
	Offset    int
}

// ProjectRepository persists project listings.
type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, int64, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	// Publish persists the status change and its outbox event in one
	// transaction, mirroring the provisioning transaction.
	Publish(ctx context.Context, project domain.Project, event domain.OutboxEvent) (domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountApplications(ctx context.Context, projectID uuid.UUID) (int64, error)
}

// OutboxRepository drains pending integration events for the worker.
type OutboxRepository interface {
	FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
