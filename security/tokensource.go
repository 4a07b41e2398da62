package security

import (
	"sync"
	"time"
)

// renewAfter is the share of a token's lifetime after which it is re-signed.
const renewAfter = 0.8

// TokenSource hands out an identity token, signing a fresh one once the
// cached token is past most of its lifetime.
type TokenSource struct {
	Now func() time.Time

	identity Identity
	secret   []byte
	ttl      time.Duration

	mu      sync.Mutex
	token   string
	renewAt time.Time
}

func NewTokenSource(identity Identity, base64Secret string, expiresInSeconds int64) (*TokenSource, error) {
	secretBytes, err := DecodeSecret(base64Secret)
	if err != nil {
		return nil, err
	}
	return &TokenSource{
		identity: identity,
		secret:   secretBytes,
		ttl:      time.Duration(expiresInSeconds) * time.Second,
	}, nil
}

func (ts *TokenSource) Token() (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	if ts.Now != nil {
		now = ts.Now()
	}
	if ts.token != "" && now.Before(ts.renewAt) {
		return ts.token, nil
	}

	token, err := signIdentityToken(&ts.identity, ts.secret, now, int64(ts.ttl/time.Second))
	if err != nil {
		return "", err
	}
	ts.token = token
	ts.renewAt = now.Add(time.Duration(float64(ts.ttl) * renewAfter))
	return token, nil
}
