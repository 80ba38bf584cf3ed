// Package security implements the hashing and token ports.
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/domain"
	"github.com/openlance/openlance/internal/ports"
)

const verifyLeeway = 30 * time.Second

type tokenClaims struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// JWTIssuer mints and verifies HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration

	nowFn func() time.Time
}

// NewJWTIssuer builds the issuer. Secret must be non-empty; the caller
// validates configuration before reaching this point.
func NewJWTIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}
	return &JWTIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		nowFn:      time.Now,
	}, nil
}

func (j *JWTIssuer) IssueAccessToken(account domain.Account) (string, error) {
	return j.sign(account, ports.TokenKindAccess, j.accessTTL)
}

func (j *JWTIssuer) IssueRefreshToken(account domain.Account) (string, error) {
	return j.sign(account, ports.TokenKindRefresh, j.refreshTTL)
}

// RefreshTTL is the longest lifetime a token can have. Revocation entries
// use it so they outlive every token they block.
func (j *JWTIssuer) RefreshTTL() time.Duration { return j.refreshTTL }

func (j *JWTIssuer) sign(account domain.Account, kind ports.TokenKind, ttl time.Duration) (string, error) {
	now := j.nowFn().UTC()
	claims := tokenClaims{
		Email:    account.Email,
		UserType: string(account.UserType),
		Kind:     string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Every failure collapses into
// domain.ErrUnauthorized so callers cannot distinguish expiry from
// tampering.
func (j *JWTIssuer) Verify(token string) (ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{},
		func(t *jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithLeeway(verifyLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	userType, err := domain.ParseUserType(claims.UserType)
	if err != nil {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	kind := ports.TokenKind(claims.Kind)
	if kind != ports.TokenKindAccess && kind != ports.TokenKindRefresh {
		return ports.TokenClaims{}, domain.ErrUnauthorized
	}
	return ports.TokenClaims{
		AccountID: accountID,
		Email:     claims.Email,
		UserType:  userType,
		Kind:      kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
