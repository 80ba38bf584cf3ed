package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	rec := toProjectModel(project)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Project{}, domain.ErrConflict
		}
		return domain.Project{}, err
	}
	return toDomainProject(rec), nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	var rec projectModel
	if err := r.db.WithContext(ctx).Where("project_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}
	return toDomainProject(rec), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectFilter) ([]domain.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&projectModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CompanyID != uuid.Nil {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if len(filter.Skills) > 0 {
		query = query.Where("skills @> ?", encodeSkills(filter.Skills))
	}
	if filter.MinBudget != nil {
		query = query.Where("budget_max >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		query = query.Where("budget_min <= ?", *filter.MaxBudget)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []projectModel
	err := query.
		Order("published_at DESC NULLS LAST, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}

	projects := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		projects = append(projects, toDomainProject(rec))
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	res := updateProject(r.db.WithContext(ctx), project)
	if res.Error != nil {
		return domain.Project{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Project{}, domain.ErrNotFound
	}
	return project, nil
}

// Publish writes the status change and its outbox event together, so
// the event exists exactly when the listing is open.
func (r *ProjectRepository) Publish(ctx context.Context, project domain.Project, event domain.OutboxEvent) (domain.Project, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := updateProject(tx, project)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		eventRec := toOutboxModel(event)
		return tx.Create(&eventRec).Error
	})
	if err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func updateProject(db *gorm.DB, project domain.Project) *gorm.DB {
	rec := toProjectModel(project)
	return db.
		Model(&projectModel{}).
		Where("project_id = ?", project.ID).
		Updates(map[string]any{
			"title":          rec.Title,
			"description":    rec.Description,
			"skills":         rec.Skills,
			"budget_min":     rec.BudgetMin,
			"budget_max":     rec.BudgetMax,
			"duration_weeks": rec.DurationWeeks,
			"deadline":       rec.Deadline,
			"status":         rec.Status,
			"published_at":   rec.PublishedAt,
			"updated_at":     rec.UpdatedAt,
		})
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("project_id = ?", id).Delete(&projectModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) CountApplications(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
