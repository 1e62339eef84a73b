package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("auth")

// expirySkew keeps cached results from outliving the token they came from.
const expirySkew = 10 * time.Second

type AuthService struct {
	secret   []byte
	audience string
	ttl      time.Duration
	cache    *cache.Cache
}

func NewAuthService(secret, audience string, ttl time.Duration) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		audience: audience,
		ttl:      ttl,
		cache:    cache.New(ttl, 2*ttl),
	}
}

type AuthResult struct {
	UserID string
	Email  string
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (s *AuthService) AuthJwt(ctx context.Context, token string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthJwt")
	defer span.End()

	if cached, ok := s.cache.Get(token); ok {
		span.SetAttributes(attribute.Bool("cached", true))
		return cached.(*AuthResult), nil
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return nil, err
	}

	if claims.Subject == "" {
		err := fmt.Errorf("token has no subject")
		span.RecordError(err)
		return nil, err
	}

	result := &AuthResult{
		UserID: claims.Subject,
		Email:  claims.Email,
	}

	ttl := s.ttl
	if remaining := time.Until(claims.ExpiresAt.Time) - expirySkew; remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		s.cache.Set(token, result, ttl)
	}

	return result, nil
}

// IssueToken signs a token the way the auth provider does. Used by tests and
// local tooling.
func (s *AuthService) IssueToken(userID, email string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
