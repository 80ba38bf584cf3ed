// Package application implements the use cases behind the HTTP surface.
// It depends only on domain types and ports.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

// Service wires the use cases to their adapters.
type Service struct {
	accounts ports.AccountRepository
	profiles ports.ProfileRepository
	projects ports.ProjectRepository
	revoked  ports.TokenRevocationStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	logger   *slog.Logger

	nowFn func() time.Time
}

// New builds the application service.
func New(
	accounts ports.AccountRepository,
	profiles ports.ProfileRepository,
	projects ports.ProjectRepository,
	revoked ports.TokenRevocationStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		profiles: profiles,
		projects: projects,
		revoked:  revoked,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With(slog.String("module", "application")),
		nowFn:    time.Now,
	}
}

func consentStatement(kind domain.ConsentKind, given bool) string {
	verb := "accepted"
	if !given {
		verb = "declined"
	}
	return fmt.Sprintf("User %s %s", verb, kind)
}

// Register provisions a new account atomically: account row, profile
// variant, consent audit rows and the registration outbox event commit
// together or not at all.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := domain.ValidateEmail(email); err != nil {
		return AuthResult{}, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return AuthResult{}, err
	}
	userType, err := domain.ParseUserType(in.UserType)
	if err != nil {
		return AuthResult{}, err
	}
	consents, err := s.buildConsents(in)
	if err != nil {
		return AuthResult{}, err
	}

	// Fast pre-check for a friendlier error. The unique index remains the
	// authority; a racing insert still fails inside the transaction.
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn().UTC()
	account := domain.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var profile domain.Profile
	switch userType {
	case domain.UserTypeProfessional:
		profile = domain.NewProfessionalProfile(account.ID, in.FirstName, in.LastName)
	case domain.UserTypeCompany:
		profile = domain.NewCompanyProfile(account.ID, in.CompanyName)
	}

	for i := range consents {
		consents[i].Account = account.ID
		consents[i].IPAddress = in.IPAddress
		consents[i].UserAgent = in.UserAgent
		consents[i].CreatedAt = now
	}

	payload, err := json.Marshal(map[string]string{
		"accountId": account.ID.String(),
		"email":     account.Email,
		"userType":  string(account.UserType),
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("encode event payload: %w", err)
	}

	created, err := s.accounts.CreateAccountTx(ctx, ports.CreateAccountTxParams{
		Account:  account,
		Profile:  profile,
		Consents: consents,
		Event: domain.OutboxEvent{
			ID:          uuid.New(),
			Topic:       domain.EventAccountRegistered,
			AggregateID: account.ID,
			Payload:     payload,
			CreatedAt:   now,
		},
	})
	if err != nil {
		return AuthResult{}, err
	}

	tokens, err := s.issueTokens(created)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "account registered",
		slog.String("operation", "register"),
		slog.String("account_id", created.ID.String()),
		slog.String("user_type", string(created.UserType)),
	)
	return AuthResult{Account: created, Profile: profile, Tokens: tokens}, nil
}

// buildConsents requires the terms and privacy answers to be present;
// a declined answer is recorded, not rejected.
func (s *Service) buildConsents(in RegisterInput) ([]domain.ConsentRecord, error) {
	for _, required := range []domain.ConsentKind{domain.ConsentTerms, domain.ConsentPrivacy} {
		if _, ok := in.Consents[string(required)]; !ok {
			return nil, fmt.Errorf("%w: %s consent must be answered", domain.ErrInvalidInput, required)
		}
	}
	keys := make([]string, 0, len(in.Consents))
	for k := range in.Consents {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]domain.ConsentRecord, 0, len(keys))
	for _, k := range keys {
		kind, err := domain.ParseConsentKind(k)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.ConsentRecord{
			ID:        uuid.New(),
			Kind:      kind,
			Granted:   in.Consents[k],
			Statement: consentStatement(kind, in.Consents[k]),
		})
	}
	return records, nil
}

// Login verifies credentials. Every failure mode collapses into
// domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, domain.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !account.IsActive {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(account.PasswordHash, in.Password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	now := s.nowFn().UTC()
	if err := s.accounts.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.WarnContext(ctx, "touch last login failed",
			slog.String("operation", "login"),
			slog.String("account_id", account.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	account.LastLoginAt = &now

	profile, err := s.profiles.GetByAccountID(ctx, account.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return AuthResult{}, err
	}

	tokens, err := s.issueTokens(account)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "login succeeded",
		slog.String("operation", "login"),
		slog.String("account_id", account.ID.String()),
	)
	return AuthResult{Account: account, Profile: profile, Tokens: tokens}, nil
}

// Logout revokes the presented token for the remainder of the longest
// token lifetime. The token is best effort: an absent one means there
// is nothing to revoke, and revoking twice is a no-op, so logout never
// fails for the client.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, token, s.tokens.RefreshTTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.InfoContext(ctx, "token revoked", slog.String("operation", "logout"))
	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := s.ValidateToken(ctx, refreshToken)
	if err != nil {
		return AuthResult{}, err
	}
	if claims.Kind != ports.TokenKindRefresh {
		return AuthResult{}, domain.ErrUnauthorized
	}
	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, domain.ErrUnauthorized
		}
		return AuthResult{}, err
	}
	if !account.IsActive {
		return AuthResult{}, domain.ErrUnauthorized
	}
	tokens, err := s.issueTokens(account)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: account, Tokens: tokens}, nil
}

// ValidateToken checks revocation before signature verification, so a
// logged-out token is rejected even while cryptographically valid.
func (s *Service) ValidateToken(ctx context.Context, token string) (ports.TokenClaims, error) {
	if token == "" {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return ports.TokenClaims{}, domain.ErrTokenRevoked
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// CurrentAccount resolves the authenticated account and its profile.
func (s *Service) CurrentAccount(ctx context.Context, accountID uuid.UUID) (domain.Account, domain.Profile, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, nil, err
	}
	profile, err := s.profiles.GetByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, nil, err
	}
	return account, profile, nil
}

func (s *Service) issueTokens(account domain.Account) (TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(account)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(account)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
