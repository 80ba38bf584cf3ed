package postgres

import (
	"encoding/json"

	"github.com/openlance/openlance/internal/domain"
)

func toDomainAccount(rec accountModel) domain.Account {
	return domain.Account{
		ID:           rec.AccountID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		UserType:     domain.UserType(rec.UserType),
		IsActive:     rec.IsActive,
		LastLoginAt:  rec.LastLoginAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toAccountModel(a domain.Account) accountModel {
	return accountModel{
		AccountID:    a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		UserType:     string(a.UserType),
		IsActive:     a.IsActive,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// encodeSkills stores skill lists as a JSON array. An empty list encodes
// as [] rather than null so jsonb queries stay simple.
func encodeSkills(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func toDomainProfessionalProfile(rec professionalProfileModel) domain.ProfessionalProfile {
	return domain.ProfessionalProfile{
		ID:         rec.ProfileID,
		Account:    rec.AccountID,
		FirstName:  rec.FirstName,
		LastName:   rec.LastName,
		Headline:   rec.Headline,
		Skills:     decodeSkills(rec.Skills),
		HourlyRate: rec.HourlyRate,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func toDomainCompanyProfile(rec companyProfileModel) domain.CompanyProfile {
	return domain.CompanyProfile{
		ID:          rec.ProfileID,
		Account:     rec.AccountID,
		CompanyName: rec.CompanyName,
		Description: rec.Description,
		Location:    rec.Location,
		LogoURL:     rec.LogoURL,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toDomainProject(rec projectModel) domain.Project {
	return domain.Project{
		ID:             rec.ProjectID,
		CompanyID:      rec.CompanyID,
		OwnerAccountID: rec.OwnerAccountID,
		Title:          rec.Title,
		Description:    rec.Description,
		Skills:         decodeSkills(rec.Skills),
		BudgetMin:      rec.BudgetMin,
		BudgetMax:      rec.BudgetMax,
		DurationWeeks:  rec.DurationWeeks,
		Deadline:       rec.Deadline,
		Status:         domain.ProjectStatus(rec.Status),
		PublishedAt:    rec.PublishedAt,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toProjectModel(p domain.Project) projectModel {
	return projectModel{
		ProjectID:      p.ID,
		CompanyID:      p.CompanyID,
		OwnerAccountID: p.OwnerAccountID,
		Title:          p.Title,
		Description:    p.Description,
		Skills:         encodeSkills(p.Skills),
		BudgetMin:      p.BudgetMin,
		BudgetMax:      p.BudgetMax,
		DurationWeeks:  p.DurationWeeks,
		Deadline:       p.Deadline,
		Status:         string(p.Status),
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toDomainOutboxEvent(rec outboxModel) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:          rec.OutboxID,
		Topic:       rec.Topic,
		AggregateID: rec.AggregateID,
		Payload:     []byte(rec.Payload),
		CreatedAt:   rec.CreatedAt,
		PublishedAt: rec.PublishedAt,
	}
}

func toOutboxModel(e domain.OutboxEvent) outboxModel {
	payload := string(e.Payload)
	if payload == "" {
		payload = "{}"
	}
	return outboxModel{
		OutboxID:    e.ID,
		Topic:       e.Topic,
		AggregateID: e.AggregateID,
		Payload:     payload,
		CreatedAt:   e.CreatedAt,
		PublishedAt: e.PublishedAt,
	}
}
