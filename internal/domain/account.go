package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType distinguishes the two account flavours the marketplace serves.
type UserType string

const (
	UserTypeProfessional UserType = "professional"
	UserTypeCompany      UserType = "company"
)

// ParseUserType validates a wire value against the closed set.
func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeProfessional, UserTypeCompany:
		return UserType(s), nil
	default:
		return "", fmt.Errorf("%w: userType must be professional or company", ErrInvalidInput)
	}
}

// Account is the identity record. PasswordHash never leaves the domain;
// HTTP responses are built from sanitized views.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	UserType     UserType
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lowercases and trims an address so uniqueness is
// case-insensitive end to end.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail rejects addresses the mail package cannot parse.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	return nil
}

// Profile is a closed union: exactly ProfessionalProfile or CompanyProfile.
// The unexported method keeps outside packages from adding variants.
type Profile interface {
	AccountID() uuid.UUID
	profile()
}

// ProfessionalProfile holds the freelancer-facing identity fields.
type ProfessionalProfile struct {
	ID         uuid.UUID
	Account    uuid.UUID
	FirstName  string
	LastName   string
	Headline   string
	Skills     []string
	HourlyRate float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p ProfessionalProfile) AccountID() uuid.UUID { return p.Account }
func (ProfessionalProfile) profile()               {}

// CompanyProfile holds the hiring-side identity fields.
type CompanyProfile struct {
	ID          uuid.UUID
	Account     uuid.UUID
	CompanyName string
	Description string
	Location    string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p CompanyProfile) AccountID() uuid.UUID { return p.Account }
func (CompanyProfile) profile()               {}

// NewProfessionalProfile builds the professional variant. Name fields
// are optional at registration and default to empty strings.
func NewProfessionalProfile(accountID uuid.UUID, firstName, lastName string) ProfessionalProfile {
	now := time.Now().UTC()
	return ProfessionalProfile{
		ID:        uuid.New(),
		Account:   accountID,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCompanyProfile builds the company variant. The company name is
// optional at registration and defaults to an empty string.
func NewCompanyProfile(accountID uuid.UUID, companyName string) CompanyProfile {
	now := time.Now().UTC()
	return CompanyProfile{
		ID:          uuid.New(),
		Account:     accountID,
		CompanyName: strings.TrimSpace(companyName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ConsentKind is the closed set of consent records captured at registration.
type ConsentKind string

const (
	ConsentTerms     ConsentKind = "terms"
	ConsentPrivacy   ConsentKind = "privacy"
	ConsentMarketing ConsentKind = "marketing"
)

// ParseConsentKind validates a consent key against the closed set.
func ParseConsentKind(s string) (ConsentKind, error) {
	switch ConsentKind(s) {
	case ConsentTerms, ConsentPrivacy, ConsentMarketing:
		return ConsentKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown consent %q", ErrInvalidInput, s)
	}
}

// ConsentRecord is an audit row proving what the account holder agreed
// to at registration time, including the client address it came from.
type ConsentRecord struct {
	ID        uuid.UUID
	Account   uuid.UUID
	Kind      ConsentKind
	Granted   bool
	Statement string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
