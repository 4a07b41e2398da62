package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"axiapac.com/attendance/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signingSecret = "c2VjcmV0LXNlY3JldC1zZWNyZXQ="

func TestTransportRenewsToken(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		writeJSON(w, map[string]any{"status": true, "data": nil})
	}))
	defer srv.Close()

	now := time.Now()
	tokens, err := security.NewTokenSource(security.Identity{UniqueName: security.Issuer, Admin: true}, signingSecret, 10)
	require.NoError(t, err)
	tokens.Now = func() time.Time { return now }

	svc := NewService(NewAttendanceClientWithTokens(srv.URL, tokens))
	ctx := context.Background()

	_, err = svc.GetStatus(ctx, nil)
	require.NoError(t, err)
	now = now.Add(5 * time.Second)
	_, err = svc.GetStatus(ctx, nil)
	require.NoError(t, err)
	now = now.Add(4 * time.Second)
	_, err = svc.GetStatus(ctx, nil)
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, seen[0], seen[1])
	assert.NotEqual(t, seen[1], seen[2])

	key, err := security.DecodeSecret(signingSecret)
	require.NoError(t, err)
	claims, err := security.ParseIdentityToken(seen[2], key)
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Second).Unix(), claims.ExpiresAt.Unix())
}

type failingTokens struct{}

func (failingTokens) Token() (string, error) { return "", errors.New("no key") }

func TestTransportTokenFailure(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewService(NewAttendanceClientWithTokens(srv.URL, failingTokens{})).GetStatus(context.Background(), nil)
	assert.ErrorContains(t, err, "sign request token: no key")
	assert.False(t, called)
}
