package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// timingPadPassword is hashed once at construction. Unknown usernames are
// verified against its digest so both failure paths cost one hash compare.
const timingPadPassword = "timing-pad-not-a-credential"

// AuthService implements login.
type AuthService struct {
	store   ports.CredentialStore
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	padHash string
	logger  zerolog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*authOptions)

type authOptions struct {
	padHasher ports.PasswordHasher
}

// WithTimingPadHasher hashes the timing pad with h instead of the login
// hasher. Use the algorithm most stored digests use, so an unknown username
// costs the same as a typical wrong password. h must produce digests the
// login hasher can verify.
func WithTimingPadHasher(h ports.PasswordHasher) AuthOption {
	return func(o *authOptions) { o.padHasher = h }
}

func NewAuthService(store ports.CredentialStore, hasher ports.PasswordHasher, issuer ports.TokenIssuer, logger zerolog.Logger, opts ...AuthOption) (*AuthService, error) {
	o := authOptions{padHasher: hasher}
	for _, opt := range opts {
		opt(&o)
	}

	padHash, err := o.padHasher.Hash(timingPadPassword)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		store:   store,
		hasher:  hasher,
		issuer:  issuer,
		padHash: padHash,
		logger:  logger,
	}, nil
}

// Login checks username/password and issues a token with the default TTL.
// Unknown users and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (ports.IssuedToken, *domain.Principal, error) {
	if username == "" || password == "" {
		return ports.IssuedToken{}, nil, domain.ErrInvalidCredentials
	}

	rec, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			_ = s.hasher.Verify(password, s.padHash)
			s.logger.Debug().Str("username", username).Msg("login rejected: unknown principal")
			return ports.IssuedToken{}, nil, domain.ErrInvalidCredentials
		}
		return ports.IssuedToken{}, nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, rec.PasswordHash) {
		s.logger.Debug().Str("username", username).Msg("login rejected: password mismatch")
		return ports.IssuedToken{}, nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(rec.Username, 0)
	if err != nil {
		return ports.IssuedToken{}, nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().
		Str("username", rec.Username).
		Time("expires_at", tok.ExpiresAt).
		Msg("token issued")

	p := rec.Principal
	return tok, &p, nil
}
