// Package httpauth verifies HS256 bearer tokens for the streamable HTTP
// transport.
package httpauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modelcontextprotocol/go-sdk/auth"

	"calcmcp/internal/domain"
)

// Claims are the token claims the verifier reads. Scope follows the OAuth
// convention of a space separated list.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg domain.HTTPAuthConfig) (*Verifier, error) {
	if len(cfg.Secret) == 0 {
		return nil, domain.E(domain.CodeInvalidArgument, "httpauth.NewVerifier", "signing secret is empty", nil)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &Verifier{secret: cfg.Secret, parser: jwt.NewParser(opts...)}, nil
}

// Verify implements auth.TokenVerifier. Every parse or claim failure
// unwraps to auth.ErrInvalidToken so the middleware answers 401.
func (v *Verifier) Verify(_ context.Context, token string, _ *http.Request) (*auth.TokenInfo, error) {
	var claims Claims
	if _, err := v.parser.ParseWithClaims(token, &claims, v.key); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: token missing expiration", auth.ErrInvalidToken)
	}
	return &auth.TokenInfo{
		Scopes:     strings.Fields(claims.Scope),
		Expiration: claims.ExpiresAt.Time,
		UserID:     claims.Subject,
	}, nil
}

func (v *Verifier) key(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return v.secret, nil
}

// Middleware returns the bearer token middleware for cfg, or nil when auth
// is disabled.
func Middleware(cfg domain.HTTPAuthConfig) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	verifier, err := NewVerifier(cfg)
	if err != nil {
		return nil, err
	}
	return auth.RequireBearerToken(verifier.Verify, &auth.RequireBearerTokenOptions{Scopes: cfg.Scopes}), nil
}

// Sign issues a token for cfg. It backs the CLI token command and tests.
func Sign(cfg domain.HTTPAuthConfig, subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}
