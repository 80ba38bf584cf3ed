package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccountTx provisions the account, its profile variant, the
// consent audit rows and the registration outbox event in a single
// transaction. The unique email index is the final arbiter; a violation
// at any point rolls everything back and surfaces as ErrEmailTaken.
func (r *AccountRepository) CreateAccountTx(ctx context.Context, params ports.CreateAccountTxParams) (domain.Account, error) {
	var result domain.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := toAccountModel(params.Account)
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailTaken
			}
			return err
		}

		switch p := params.Profile.(type) {
		case domain.ProfessionalProfile:
			profileRec := professionalProfileModel{
				ProfileID:  p.ID,
				AccountID:  p.Account,
				FirstName:  p.FirstName,
				LastName:   p.LastName,
				Headline:   p.Headline,
				Skills:     encodeSkills(p.Skills),
				HourlyRate: p.HourlyRate,
				CreatedAt:  p.CreatedAt,
				UpdatedAt:  p.UpdatedAt,
			}
			if err := tx.Create(&profileRec).Error; err != nil {
				return err
			}
		case domain.CompanyProfile:
			profileRec := companyProfileModel{
				ProfileID:   p.ID,
				AccountID:   p.Account,
				CompanyName: p.CompanyName,
				Description: p.Description,
				Location:    p.Location,
				LogoURL:     p.LogoURL,
				CreatedAt:   p.CreatedAt,
				UpdatedAt:   p.UpdatedAt,
			}
			if err := tx.Create(&profileRec).Error; err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported profile type %T", params.Profile)
		}

		for _, c := range params.Consents {
			consentRec := consentModel{
				ConsentID: c.ID,
				AccountID: c.Account,
				Kind:      string(c.Kind),
				Granted:   c.Granted,
				Statement: c.Statement,
				IPAddress: c.IPAddress,
				UserAgent: c.UserAgent,
				CreatedAt: c.CreatedAt,
			}
			if err := tx.Create(&consentRec).Error; err != nil {
				return err
			}
		}

		eventRec := toOutboxModel(params.Event)
		if err := tx.Create(&eventRec).Error; err != nil {
			return err
		}

		result = toDomainAccount(rec)
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	return result, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", id).
		Updates(map[string]any{
			"last_login_at": at,
			"updated_at":    at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
