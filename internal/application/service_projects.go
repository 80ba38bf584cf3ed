package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CreateProject opens a new draft listing for a company account.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (domain.Project, error) {
	if err := domain.ValidateProjectContent(in.Title, in.Description, in.Skills); err != nil {
		return domain.Project{}, err
	}
	if err := domain.ValidateBudget(in.BudgetMin, in.BudgetMax); err != nil {
		return domain.Project{}, err
	}
	if err := domain.ValidateDuration(in.DurationWeeks); err != nil {
		return domain.Project{}, err
	}
	company, err := s.profiles.CompanyByAccountID(ctx, in.OwnerAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Project{}, fmt.Errorf("%w: only company accounts can create projects", domain.ErrForbidden)
		}
		return domain.Project{}, err
	}

	now := s.nowFn().UTC()
	project := domain.Project{
		ID:             uuid.New(),
		CompanyID:      company.ID,
		OwnerAccountID: in.OwnerAccountID,
		Title:          in.Title,
		Description:    in.Description,
		Skills:         in.Skills,
		BudgetMin:      in.BudgetMin,
		BudgetMax:      in.BudgetMax,
		DurationWeeks:  in.DurationWeeks,
		Deadline:       in.Deadline,
		Status:         domain.ProjectStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return domain.Project{}, err
	}
	s.logger.InfoContext(ctx, "project created",
		slog.String("operation", "create_project"),
		slog.String("project_id", created.ID.String()),
	)
	return created, nil
}

// GetProject returns a single listing. Drafts are visible to their owner
// only.
func (s *Service) GetProject(ctx context.Context, id uuid.UUID, caller *ports.TokenClaims) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if project.Status != domain.ProjectStatusOpen {
		if caller == nil || caller.AccountID != project.OwnerAccountID {
			return domain.Project{}, domain.ErrNotFound
		}
	}
	return project, nil
}

// ListProjects pages open listings, or the caller's own when Mine is
// set. Drafts never appear in the public listing; asking for them
// scopes the query to the caller's own company.
func (s *Service) ListProjects(ctx context.Context, in ListProjectsInput) (ProjectPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := in.Page
	if page < 1 {
		page = 1
	}

	var status domain.ProjectStatus
	if in.Status != "" {
		parsed, err := domain.ParseProjectStatus(in.Status)
		if err != nil {
			return ProjectPage{}, err
		}
		status = parsed
	}

	mine := in.Mine || status == domain.ProjectStatusDraft
	if !mine && status == "" {
		status = domain.ProjectStatusOpen
	}

	filter := ports.ProjectFilter{
		Status:    status,
		Skills:    in.Skills,
		MinBudget: in.MinBudget,
		MaxBudget: in.MaxBudget,
		Search:    in.Search,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if mine {
		if in.Caller == nil {
			return ProjectPage{}, domain.ErrUnauthorized
		}
		company, err := s.profiles.CompanyByAccountID(ctx, in.Caller.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ProjectPage{}, fmt.Errorf("%w: only company accounts have projects", domain.ErrForbidden)
			}
			return ProjectPage{}, err
		}
		filter.CompanyID = company.ID
	}

	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return ProjectPage{}, err
	}
	return ProjectPage{Projects: projects, Total: total, Page: page, Limit: limit}, nil
}

// UpdateProject patches an owned listing. Published projects accept
// content edits; closed projects are immutable.
func (s *Service) UpdateProject(ctx context.Context, in UpdateProjectInput) (domain.Project, error) {
	project, err := s.ownedProject(ctx, in.ProjectID, in.AccountID)
	if err != nil {
		return domain.Project{}, err
	}
	if project.Status == domain.ProjectStatusClosed {
		return domain.Project{}, fmt.Errorf("%w: closed projects cannot be edited", domain.ErrInvalidStatus)
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Skills != nil {
		project.Skills = in.Skills
	}
	if in.BudgetMin != nil {
		project.BudgetMin = *in.BudgetMin
	}
	if in.BudgetMax != nil {
		project.BudgetMax = *in.BudgetMax
	}
	if in.DurationWeeks != nil {
		project.DurationWeeks = *in.DurationWeeks
	}
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}
	if err := domain.ValidateProjectContent(project.Title, project.Description, project.Skills); err != nil {
		return domain.Project{}, err
	}
	if err := domain.ValidateBudget(project.BudgetMin, project.BudgetMax); err != nil {
		return domain.Project{}, err
	}
	if err := domain.ValidateDuration(project.DurationWeeks); err != nil {
		return domain.Project{}, err
	}
	project.UpdatedAt = s.nowFn().UTC()
	return s.projects.Update(ctx, project)
}

// PublishProject moves an owned draft to open, stamps the time and
// enqueues the publication event alongside the status change.
func (s *Service) PublishProject(ctx context.Context, projectID, accountID uuid.UUID) (domain.Project, error) {
	project, err := s.ownedProject(ctx, projectID, accountID)
	if err != nil {
		return domain.Project{}, err
	}
	if err := project.CanPublish(); err != nil {
		return domain.Project{}, err
	}
	now := s.nowFn().UTC()
	project.Status = domain.ProjectStatusOpen
	project.PublishedAt = &now
	project.UpdatedAt = now

	payload, err := json.Marshal(map[string]string{
		"projectId": project.ID.String(),
		"companyId": project.CompanyID.String(),
		"title":     project.Title,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("encode event payload: %w", err)
	}
	published, err := s.projects.Publish(ctx, project, domain.OutboxEvent{
		ID:          uuid.New(),
		Topic:       domain.EventProjectPublished,
		AggregateID: project.ID,
		Payload:     payload,
		CreatedAt:   now,
	})
	if err != nil {
		return domain.Project{}, err
	}
	s.logger.InfoContext(ctx, "project published",
		slog.String("operation", "publish_project"),
		slog.String("project_id", published.ID.String()),
	)
	return published, nil
}

// DeleteProject removes an owned listing unless applications exist.
func (s *Service) DeleteProject(ctx context.Context, projectID, accountID uuid.UUID) error {
	project, err := s.ownedProject(ctx, projectID, accountID)
	if err != nil {
		return err
	}
	count, err := s.projects.CountApplications(ctx, project.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d applications exist", domain.ErrHasApplications, count)
	}
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "project deleted",
		slog.String("operation", "delete_project"),
		slog.String("project_id", project.ID.String()),
	)
	return nil
}

func (s *Service) ownedProject(ctx context.Context, projectID, accountID uuid.UUID) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if project.OwnerAccountID != accountID {
		return domain.Project{}, domain.ErrForbidden
	}
	return project, nil
}
