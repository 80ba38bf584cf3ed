package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlance/openlance/internal/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByAccountID resolves whichever profile variant the account carries.
func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (domain.Profile, error) {
	var pro professionalProfileModel
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Take(&pro).Error
	if err == nil {
		return toDomainProfessionalProfile(pro), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company, err := r.CompanyByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *ProfileRepository) CompanyByAccountID(ctx context.Context, accountID uuid.UUID) (domain.CompanyProfile, error) {
	var rec companyProfileModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CompanyProfile{}, domain.ErrNotFound
		}
		return domain.CompanyProfile{}, err
	}
	return toDomainCompanyProfile(rec), nil
}
