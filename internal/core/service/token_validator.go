package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// TokenValidator verifies tokens minted by TokenIssuer and re-resolves their
// subject against the credential store.
type TokenValidator struct {
	secret []byte
	store  ports.CredentialStore
	parser *jwt.Parser
}

func NewTokenValidator(secret []byte, store ports.CredentialStore, opts ...TokenOption) (*TokenValidator, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	o := buildTokenOptions(opts)

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(o.now),
	}
	if o.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(o.issuer))
	}

	return &TokenValidator{
		secret: append([]byte(nil), secret...),
		store:  store,
		parser: jwt.NewParser(parserOpts...),
	}, nil
}

// Validate returns the principal named by raw. The enabled flag is not
// checked here; that is the access gate's job.
func (v *TokenValidator) Validate(ctx context.Context, raw string) (*domain.Principal, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthError(domain.ReasonExpired, err)
		}
		return nil, domain.NewAuthError(domain.ReasonBadSignature, err)
	}

	if claims.Subject == "" {
		return nil, domain.NewAuthError(domain.ReasonMissingSubject, nil)
	}

	rec, err := v.store.Lookup(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.NewAuthError(domain.ReasonUnknownPrincipal, err)
		}
		return nil, fmt.Errorf("validate token: %w", err)
	}

	p := rec.Principal
	return &p, nil
}
