// Package identity resolves bearer credentials into lifecycle actors.
//
// Tokens are HS256 JWTs whose subject is the actor id and whose "role" claim is
// one of donor, ngo or courier:
//
//	{"sub": "6f1c...", "role": "ngo", "exp": 1767225600}
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"connectfood/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredential = errors.New("credential is missing")
	ErrInvalidCredential = errors.New("credential is invalid")
)

// Provider resolves a bearer credential to the actor making the call.
type Provider interface {
	Resolve(ctx context.Context, credential string) (kernel.Actor, error)
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTProvider verifies and issues HS256 tokens signed with a shared secret.
type JWTProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type Option func(*JWTProvider)

// WithIssuer sets the iss claim written by Issue and required by Resolve.
func WithIssuer(issuer string) Option {
	return func(p *JWTProvider) {
		p.issuer = issuer
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *JWTProvider) {
		if now != nil {
			p.now = now
		}
	}
}

func NewJWTProvider(secret string, opts ...Option) (*JWTProvider, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	p := &JWTProvider{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Resolve implements Provider. Every failure wraps ErrMissingCredential or
// ErrInvalidCredential.
func (p *JWTProvider) Resolve(_ context.Context, credential string) (kernel.Actor, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return kernel.Actor{}, ErrMissingCredential
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	}
	if p.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(p.issuer))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(credential, &parsed, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	id, err := kernel.UUIDFromString(parsed.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: subject: %w", ErrInvalidCredential, err)
	}
	role, err := kernel.ParseRole(parsed.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return actor, nil
}

// Issue signs a token for actor that expires after ttl.
func (p *JWTProvider) Issue(actor kernel.Actor, ttl time.Duration) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: actor.Role().String(),
	})
	return token.SignedString(p.secret)
}
