package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// Issuer is written into the iss claim of every token.
const Issuer = "rentdesk"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims is the payload of an access token. Role flags are copied from the
// user at login time.
type Claims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsSuperuser  bool   `json:"is_superuser"`
	IsTenant     bool   `json:"is_tenant"`
	IsSupervisor bool   `json:"is_supervisor"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. Tokens expire ttl after issue.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new token for u.
func (m *TokenManager) Issue(u *models.User) (string, *Claims, error) {
	now := m.now().UTC()
	claims := &Claims{
		UserID:       u.ID,
		Username:     u.Username,
		IsSuperuser:  u.IsSuperuser,
		IsTenant:     u.IsTenant,
		IsSupervisor: u.IsSupervisor,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature, algorithm, issuer and expiry of raw.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	now := m.now()
	switch {
	case !claims.VerifyExpiresAt(now, true):
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	case !claims.VerifyNotBefore(now, false):
		return nil, fmt.Errorf("%w: token is not valid yet", ErrInvalidToken)
	case !claims.VerifyIssuer(Issuer, true):
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	case claims.ID == "" || claims.UserID == 0:
		return nil, fmt.Errorf("%w: missing token id or user", ErrInvalidToken)
	}
	return claims, nil
}
