package httpauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcmcp/internal/domain"
)

func testConfig() domain.HTTPAuthConfig {
	return domain.HTTPAuthConfig{
		SecretEnv: "CALC_JWT_SECRET",
		Issuer:    "calcmcp-test",
		Audience:  "calc",
		Scopes:    []string{"calc"},
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
	}
}

func TestVerifyAcceptsSignedToken(t *testing.T) {
	cfg := testConfig()
	token, err := Sign(cfg, "alice", []string{"calc", "extra"}, time.Minute)
	require.NoError(t, err)

	v, err := NewVerifier(cfg)
	require.NoError(t, err)
	info, err := v.Verify(context.Background(), token, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.UserID)
	assert.Equal(t, []string{"calc", "extra"}, info.Scopes)
	assert.False(t, info.Expiration.IsZero())
}

func TestVerifyRejects(t *testing.T) {
	cfg := testConfig()
	v, err := NewVerifier(cfg)
	require.NoError(t, err)

	expired, err := Sign(cfg, "alice", nil, -time.Minute)
	require.NoError(t, err)

	other := cfg
	other.Secret = []byte("another-secret-another-secret-00")
	wrongKey, err := Sign(other, "alice", nil, time.Minute)
	require.NoError(t, err)

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	badIssuer, err := Sign(wrongIssuer, "alice", nil, time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": wrongKey,
		"issuer":    badIssuer,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, auth.ErrInvalidToken))
		})
	}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = nil
	_, err := NewVerifier(cfg)
	require.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig()
	mw, err := Middleware(cfg)
	require.NoError(t, err)
	require.NotNil(t, mw)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := auth.TokenInfoFromContext(r.Context())
		if info == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	good, err := Sign(cfg, "alice", []string{"calc"}, time.Minute)
	require.NoError(t, err)
	noScope, err := Sign(cfg, "alice", nil, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(good))
	assert.Equal(t, http.StatusUnauthorized, do(""))
	assert.Equal(t, http.StatusUnauthorized, do("garbage"))
	assert.Equal(t, http.StatusForbidden, do(noScope))
}

func TestMiddlewareDisabled(t *testing.T) {
	mw, err := Middleware(domain.HTTPAuthConfig{})
	require.NoError(t, err)
	assert.Nil(t, mw)
}
