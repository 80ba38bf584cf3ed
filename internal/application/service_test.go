package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

func TestRegisterProvisionsAccount(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerProfessional(f, "ada@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Account.ID == uuid.Nil {
		t.Fatalf("expected account id")
	}
	if res.Account.PasswordHash == "SecurePass123!" {
		t.Fatalf("password stored in plaintext")
	}
	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", res.Tokens)
	}

	profile, ok := f.store.profiles[res.Account.ID].(domain.ProfessionalProfile)
	if !ok {
		t.Fatalf("expected professional profile, got %T", f.store.profiles[res.Account.ID])
	}
	if profile.FirstName != "Ada" || profile.LastName != "Lovelace" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	consents := f.store.consents[res.Account.ID]
	if len(consents) != 2 {
		t.Fatalf("expected 2 consent records, got %d", len(consents))
	}
	for _, c := range consents {
		if c.IPAddress != "127.0.0.1" || c.UserAgent != "unit-test" {
			t.Fatalf("consent missing client metadata: %+v", c)
		}
	}

	if len(f.store.events) != 1 || f.store.events[0].Topic != domain.EventAccountRegistered {
		t.Fatalf("expected registration outbox event, got %+v", f.store.events)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerProfessional(f, "  Ada@Example.COM ")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Account.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", res.Account.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := registerProfessional(f, "ada@example.com"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := registerProfessional(f, "ada@example.com"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{name: "weak password", mutate: func(in *RegisterInput) { in.Password = "abcdefgh" }, wantErr: domain.ErrWeakPassword},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }, wantErr: domain.ErrInvalidInput},
		{name: "unknown user type", mutate: func(in *RegisterInput) { in.UserType = "admin" }, wantErr: domain.ErrInvalidInput},
		{name: "missing terms consent", mutate: func(in *RegisterInput) { in.Consents = map[string]bool{"privacy": true} }, wantErr: domain.ErrInvalidInput},
		{name: "missing privacy consent", mutate: func(in *RegisterInput) { in.Consents = map[string]bool{"terms": true} }, wantErr: domain.ErrInvalidInput},
		{name: "unknown consent key", mutate: func(in *RegisterInput) {
			in.Consents = map[string]bool{"terms": true, "privacy": true, "cookies": true}
		}, wantErr: domain.ErrInvalidInput},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			in := RegisterInput{
				Email:     "ada@example.com",
				Password:  "SecurePass123!",
				UserType:  "professional",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Consents:  map[string]bool{"terms": true, "privacy": true},
			}
			tc.mutate(&in)
			if _, err := f.service.Register(context.Background(), in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// Profile name fields are optional at registration; they default to
// empty strings and get filled in later through profile edits.
func TestRegisterWithoutNameFields(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.service.Register(context.Background(), RegisterInput{
		Email:    "ada@example.com",
		Password: "SecurePass123!",
		UserType: "professional",
		Consents: map[string]bool{"terms": true, "privacy": true},
	})
	if err != nil {
		t.Fatalf("register without names failed: %v", err)
	}
	profile, ok := f.store.profiles[res.Account.ID].(domain.ProfessionalProfile)
	if !ok {
		t.Fatalf("expected professional profile, got %T", f.store.profiles[res.Account.ID])
	}
	if profile.FirstName != "" || profile.LastName != "" {
		t.Fatalf("expected empty name defaults, got %+v", profile)
	}

	company, err := f.service.Register(context.Background(), RegisterInput{
		Email:    "hr@example.com",
		Password: "SecurePass123!",
		UserType: "company",
		Consents: map[string]bool{"terms": true, "privacy": true},
	})
	if err != nil {
		t.Fatalf("register without company name failed: %v", err)
	}
	got, ok := f.store.profiles[company.Account.ID].(domain.CompanyProfile)
	if !ok || got.CompanyName != "" {
		t.Fatalf("expected empty company name default, got %+v", f.store.profiles[company.Account.ID])
	}
}

// Required consents must be answered, but a declined answer is recorded
// rather than rejected.
func TestRegisterRecordsDeclinedConsent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.service.Register(context.Background(), RegisterInput{
		Email:     "ada@example.com",
		Password:  "SecurePass123!",
		UserType:  "professional",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Consents:  map[string]bool{"terms": true, "privacy": false, "marketing": false},
	})
	if err != nil {
		t.Fatalf("register with declined consent failed: %v", err)
	}

	byKind := make(map[domain.ConsentKind]domain.ConsentRecord)
	for _, c := range f.store.consents[res.Account.ID] {
		byKind[c.Kind] = c
	}
	if len(byKind) != 3 {
		t.Fatalf("expected 3 consent records, got %d", len(byKind))
	}
	if !byKind[domain.ConsentTerms].Granted {
		t.Fatalf("terms consent should be recorded as granted")
	}
	if byKind[domain.ConsentPrivacy].Granted {
		t.Fatalf("privacy consent should be recorded as declined")
	}
	if got := byKind[domain.ConsentPrivacy].Statement; got != "User declined privacy" {
		t.Fatalf("unexpected declined statement: %q", got)
	}
	if got := byKind[domain.ConsentTerms].Statement; got != "User accepted terms" {
		t.Fatalf("unexpected accepted statement: %q", got)
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := registerProfessional(f, "ada@example.com"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := f.service.Login(context.Background(), LoginInput{Email: "Ada@Example.com", Password: "SecurePass123!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if res.Account.LastLoginAt == nil {
		t.Fatalf("expected last login timestamp")
	}
	stored := f.store.accounts[res.Account.ID]
	if stored.LastLoginAt == nil {
		t.Fatalf("expected persisted last login timestamp")
	}
}

func TestLoginFailureModesAreIndistinguishable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerProfessional(f, "ada@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := f.service.Login(context.Background(), LoginInput{Email: "unknown@example.com", Password: "SecurePass123!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "WrongPass123!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	account := f.store.accounts[res.Account.ID]
	account.IsActive = false
	f.store.accounts[res.Account.ID] = account
	if _, err := f.service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "SecurePass123!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("disabled account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerProfessional(f, "ada@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ctx := context.Background()

	if _, err := f.service.ValidateToken(ctx, res.Tokens.AccessToken); err != nil {
		t.Fatalf("token should validate before logout: %v", err)
	}
	if err := f.service.Logout(ctx, res.Tokens.AccessToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.service.ValidateToken(ctx, res.Tokens.AccessToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
	// Idempotent: a second logout of the same token still succeeds.
	if err := f.service.Logout(ctx, res.Tokens.AccessToken); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
}

// Logout with no token is a no-op: nothing gets revoked and nothing
// fails.
func TestLogoutWithoutToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if err := f.service.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without token failed: %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(context.Background(), ""); revoked {
		t.Fatalf("empty token must not be written to the revocation store")
	}
}

func TestValidateTokenChecksRevocationFirst(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// A garbage token never passes verification, but once revoked the
	// revocation answer must win regardless.
	if err := f.service.Logout(ctx, "garbage-token"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.service.ValidateToken(ctx, "garbage-token"); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
	if _, err := f.service.ValidateToken(ctx, "other-garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerProfessional(f, "ada@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ctx := context.Background()

	refreshed, err := f.service.Refresh(ctx, res.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Tokens.AccessToken == "" || refreshed.Tokens.RefreshToken == "" {
		t.Fatalf("expected fresh token pair")
	}

	// Access tokens are not accepted on the refresh path.
	if _, err := f.service.Refresh(ctx, res.Tokens.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for access token, got %v", err)
	}

	// A revoked refresh token stops working.
	if err := f.service.Logout(ctx, res.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.service.Refresh(ctx, res.Tokens.RefreshToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestCurrentAccount(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := registerCompany(f, "hr@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	account, profile, err := f.service.CurrentAccount(context.Background(), res.Account.ID)
	if err != nil {
		t.Fatalf("current account failed: %v", err)
	}
	if account.Email != "hr@example.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
	company, ok := profile.(domain.CompanyProfile)
	if !ok || company.CompanyName != "Acme Hiring" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

var _ ports.AccountRepository = (*fakeStore)(nil)
var _ ports.ProfileRepository = (*fakeStore)(nil)
var _ ports.ProjectRepository = projectRepo{}
var _ ports.TokenRevocationStore = (*fakeRevocationStore)(nil)
var _ ports.PasswordHasher = fakeHasher{}
var _ ports.TokenIssuer = fakeIssuer{}
