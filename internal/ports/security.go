package ports

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the verified identity carried by a token.
type TokenClaims struct {
	AccountID uuid.UUID
	Email     string
	UserType  domain.UserType
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies signed tokens. Verify returns
// domain.ErrUnauthorized for any failure without exposing the cause.
type TokenIssuer interface {
	IssueAccessToken(account domain.Account) (string, error)
	IssueRefreshToken(account domain.Account) (string, error)
	Verify(token string) (TokenClaims, error)
	RefreshTTL() time.Duration
}
