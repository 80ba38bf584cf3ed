package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

// fakeStore is an in-memory stand-in for the Postgres repositories.
type fakeStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]domain.Account
	profiles     map[uuid.UUID]domain.Profile
	consents     map[uuid.UUID][]domain.ConsentRecord
	projects     map[uuid.UUID]domain.Project
	applications map[uuid.UUID]int64
	events       []domain.OutboxEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[uuid.UUID]domain.Account),
		profiles:     make(map[uuid.UUID]domain.Profile),
		consents:     make(map[uuid.UUID][]domain.ConsentRecord),
		projects:     make(map[uuid.UUID]domain.Project),
		applications: make(map[uuid.UUID]int64),
	}
}

func (s *fakeStore) CreateAccountTx(_ context.Context, params ports.CreateAccountTxParams) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == params.Account.Email {
			return domain.Account{}, domain.ErrEmailTaken
		}
	}
	s.accounts[params.Account.ID] = params.Account
	s.profiles[params.Account.ID] = params.Profile
	s.consents[params.Account.ID] = params.Consents
	s.events = append(s.events, params.Event)
	return params.Account, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return a, nil
}

func (s *fakeStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.LastLoginAt = &at
	s.accounts[id] = a
	return nil
}

func (s *fakeStore) GetByAccountID(_ context.Context, accountID uuid.UUID) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) CompanyByAccountID(_ context.Context, accountID uuid.UUID) (domain.CompanyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[accountID]
	if !ok {
		return domain.CompanyProfile{}, domain.ErrNotFound
	}
	company, ok := p.(domain.CompanyProfile)
	if !ok {
		return domain.CompanyProfile{}, domain.ErrNotFound
	}
	return company, nil
}

func (s *fakeStore) Create(_ context.Context, project domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project
	return project, nil
}

func (s *fakeStore) GetByIDProject(_ context.Context, id uuid.UUID) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) List(_ context.Context, filter ports.ProjectFilter) ([]domain.Project, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Project
	for _, p := range s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CompanyID != uuid.Nil && p.CompanyID != filter.CompanyID {
			continue
		}
		if !hasAllSkills(p.Skills, filter.Skills) {
			continue
		}
		if filter.MinBudget != nil && p.BudgetMax < *filter.MinBudget {
			continue
		}
		if filter.MaxBudget != nil && p.BudgetMin > *filter.MaxBudget {
			continue
		}
		if filter.Search != "" {
			haystack := strings.ToLower(p.Title + " " + p.Description)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func hasAllSkills(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *fakeStore) Update(_ context.Context, project domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	s.projects[project.ID] = project
	return project, nil
}

func (s *fakeStore) PublishProject(_ context.Context, project domain.Project, event domain.OutboxEvent) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	s.projects[project.ID] = project
	s.events = append(s.events, event)
	return project, nil
}

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *fakeStore) CountApplications(_ context.Context, projectID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applications[projectID], nil
}

// projectRepo adapts fakeStore to ports.ProjectRepository; GetByID on the
// store is taken by the account lookup.
type projectRepo struct{ store *fakeStore }

func (r projectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	return r.store.Create(ctx, p)
}
func (r projectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return r.store.GetByIDProject(ctx, id)
}
func (r projectRepo) List(ctx context.Context, f ports.ProjectFilter) ([]domain.Project, int64, error) {
	return r.store.List(ctx, f)
}
func (r projectRepo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	return r.store.Update(ctx, p)
}
func (r projectRepo) Publish(ctx context.Context, p domain.Project, e domain.OutboxEvent) (domain.Project, error) {
	return r.store.PublishProject(ctx, p, e)
}
func (r projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
func (r projectRepo) CountApplications(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.store.CountApplications(ctx, id)
}

type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (s *fakeRevocationStore) Revoke(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *fakeRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token], nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeIssuer mints parseable tokens of the form kind|account|email|type.
type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(a domain.Account) (string, error) {
	return fmt.Sprintf("access|%s|%s|%s", a.ID, a.Email, a.UserType), nil
}

func (fakeIssuer) IssueRefreshToken(a domain.Account) (string, error) {
	return fmt.Sprintf("refresh|%s|%s|%s", a.ID, a.Email, a.UserType), nil
}

func (fakeIssuer) Verify(token string) (ports.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	return ports.TokenClaims{
		AccountID: id,
		Email:     parts[2],
		UserType:  domain.UserType(parts[3]),
		Kind:      ports.TokenKind(parts[0]),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (fakeIssuer) RefreshTTL() time.Duration { return 30 * 24 * time.Hour }

type fixture struct {
	service *Service
	store   *fakeStore
	revoked *fakeRevocationStore
}

func newFixture() *fixture {
	store := newFakeStore()
	revoked := newFakeRevocationStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(store, store, projectRepo{store: store}, revoked, fakeHasher{}, fakeIssuer{}, logger)
	return &fixture{service: svc, store: store, revoked: revoked}
}

func registerProfessional(f *fixture, email string) (AuthResult, error) {
	return f.service.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "SecurePass123!",
		UserType:  "professional",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Consents:  map[string]bool{"terms": true, "privacy": true},
		IPAddress: "127.0.0.1",
		UserAgent: "unit-test",
	})
}

func registerCompany(f *fixture, email string) (AuthResult, error) {
	return f.service.Register(context.Background(), RegisterInput{
		Email:       email,
		Password:    "SecurePass123!",
		UserType:    "company",
		CompanyName: "Acme Hiring",
		Consents:    map[string]bool{"terms": true, "privacy": true, "marketing": false},
		IPAddress:   "127.0.0.1",
		UserAgent:   "unit-test",
	})
}
