package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusops/college-roster/internal/core/domain"
)

const defaultTokenTTL = 15 * time.Minute

// TokenConfig carries the signing material for the token service. It is built
// once at startup from the environment and passed in explicitly; there is no
// ambient process-wide secret.
type TokenConfig struct {
	// Secret is the symmetric signing key. Required.
	Secret string
	// Algorithm is the JWT signing algorithm name. Only HMAC-family
	// algorithms are accepted since the key is symmetric. Defaults to HS256.
	Algorithm string
	// DefaultTTL applies when Issue is called with a non-positive ttl.
	// Defaults to 15 minutes.
	DefaultTTL time.Duration
}

// TokenClaims is the principal identity recovered from a verified token.
type TokenClaims struct {
	Subject   string
	Roles     []domain.Role
	ExpiresAt time.Time
}

type rosterClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded bearer tokens.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
}

// NewTokenService validates the config and returns a ready token service.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: secret is required")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return nil, fmt.Errorf("token service: unknown algorithm %q", alg)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token service: algorithm %q is not HMAC-based", alg)
	}

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &TokenService{secret: []byte(cfg.Secret), method: method, defaultTTL: ttl}, nil
}

// Issue mints a signed token for the subject with an absolute expiry of
// now + ttl. A non-positive ttl falls back to the configured default.
func (t *TokenService) Issue(subject string, roles []domain.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = t.defaultTTL
	}

	now := time.Now().UTC()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	claims := rosterClaims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

// Verify checks the token's signature and expiry and recovers the subject.
// Failure kinds are distinguished for callers inside the process; the HTTP
// boundary collapses them all into one generic unauthorized response.
func (t *TokenService) Verify(token string) (*TokenClaims, error) {
	claims := &rosterClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != t.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrInvalidSignature
		default:
			return nil, domain.ErrMalformedToken
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrMalformedToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrMalformedToken
	}

	roles, err := domain.ParseRoles(claims.Roles)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return &TokenClaims{Subject: claims.Subject, Roles: roles, ExpiresAt: expires}, nil
}
