package postgres

import (
	"time"

	"github.com/google/uuid"
)

type accountModel struct {
	AccountID    uuid.UUID  `gorm:"column:account_id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	UserType     string     `gorm:"column:user_type"`
	IsActive     bool       `gorm:"column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

type professionalProfileModel struct {
	ProfileID  uuid.UUID `gorm:"column:profile_id;type:uuid;primaryKey"`
	AccountID  uuid.UUID `gorm:"column:account_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	Headline   string    `gorm:"column:headline"`
	Skills     string    `gorm:"column:skills;type:jsonb"`
	HourlyRate float64   `gorm:"column:hourly_rate"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (professionalProfileModel) TableName() string { return "professional_profiles" }

type companyProfileModel struct {
	ProfileID   uuid.UUID `gorm:"column:profile_id;type:uuid;primaryKey"`
	AccountID   uuid.UUID `gorm:"column:account_id"`
	CompanyName string    `gorm:"column:company_name"`
	Description string    `gorm:"column:description"`
	Location    string    `gorm:"column:location"`
	LogoURL     string    `gorm:"column:logo_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (companyProfileModel) TableName() string { return "company_profiles" }

type consentModel struct {
	ConsentID uuid.UUID `gorm:"column:consent_id;type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"column:account_id"`
	Kind      string    `gorm:"column:kind"`
	Granted   bool      `gorm:"column:granted"`
	Statement string    `gorm:"column:statement"`
	IPAddress string    `gorm:"column:ip_address"`
	UserAgent string    `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (consentModel) TableName() string { return "consent_records" }

type projectModel struct {
	ProjectID      uuid.UUID  `gorm:"column:project_id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"column:company_id"`
	OwnerAccountID uuid.UUID  `gorm:"column:owner_account_id"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Skills         string     `gorm:"column:skills;type:jsonb"`
	BudgetMin      float64    `gorm:"column:budget_min"`
	BudgetMax      float64    `gorm:"column:budget_max"`
	DurationWeeks  int        `gorm:"column:duration_weeks"`
	Deadline       *time.Time `gorm:"column:deadline"`
	Status         string     `gorm:"column:status"`
	PublishedAt    *time.Time `gorm:"column:published_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (projectModel) TableName() string { return "projects" }

type applicationModel struct {
	ApplicationID  uuid.UUID `gorm:"column:application_id;type:uuid;primaryKey"`
	ProjectID      uuid.UUID `gorm:"column:project_id"`
	ProfessionalID uuid.UUID `gorm:"column:professional_id"`
	CoverLetter    string    `gorm:"column:cover_letter"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string { return "applications" }

type outboxModel struct {
	OutboxID    uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	Topic       string     `gorm:"column:topic"`
	AggregateID uuid.UUID  `gorm:"column:aggregate_id"`
	Payload     string     `gorm:"column:payload;type:jsonb"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "outbox_events" }
