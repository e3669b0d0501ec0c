package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// DefaultTokenTTL is the lifetime used when neither the caller nor the
// configuration picks one.
const DefaultTokenTTL = 30 * time.Minute

// signingMethod is fixed process-wide; tokens presenting any other alg are rejected.
var signingMethod = jwt.SigningMethodHS256

var errEmptySecret = errors.New("token signing secret is empty")

// TokenOption customises a TokenIssuer or TokenValidator.
type TokenOption func(*tokenOptions)

type tokenOptions struct {
	issuer string
	now    func() time.Time
}

// WithIssuer sets the "iss" claim written on issue and required on validation.
func WithIssuer(iss string) TokenOption {
	return func(o *tokenOptions) { o.issuer = iss }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(o *tokenOptions) { o.now = now }
}

func buildTokenOptions(opts []TokenOption) tokenOptions {
	o := tokenOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TokenIssuer signs HS256 access tokens.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
	opts       tokenOptions
}

func NewTokenIssuer(secret []byte, defaultTTL time.Duration, opts ...TokenOption) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret:     append([]byte(nil), secret...),
		defaultTTL: defaultTTL,
		opts:       buildTokenOptions(opts),
	}, nil
}

// Issue signs a token for username valid for ttl, or the default TTL when ttl <= 0.
func (i *TokenIssuer) Issue(username string, ttl time.Duration) (ports.IssuedToken, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}

	now := i.opts.now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    i.opts.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.IssuedToken{AccessToken: signed, ExpiresAt: expiresAt, TTL: ttl}, nil
}
