// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
)

// ErrTokenRequest indicates a failed token endpoint round trip.
var ErrTokenRequest = errors.New("failed to obtain access token")

// expirySkew is subtracted from the reported token lifetime so a token
// is refreshed before the provider rejects it.
const expirySkew = 30 * time.Second

// Token is a bearer token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be presented.
func (t Token) Valid() bool {
	return t.AccessToken != "" && time.Now().Before(t.ExpiresAt)
}

// ClientCredentials performs an OAuth 2.0 client-credentials grant
// against tokenURL.
func ClientCredentials(ctx context.Context, client *http.Client, tokenURL, clientID, clientSecret string, scopes []string) (Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	if len(scopes) > 0 {
		form.Set("scope", strings.Join(scopes, " "))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, errors.Wrap(ErrTokenRequest, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return Token{}, errors.Wrap(ErrTokenRequest, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Token{}, errors.Wrap(ErrTokenRequest, errors.New(resp.Status))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Token{}, errors.Wrap(ErrTokenRequest, err)
	}
	if body.AccessToken == "" {
		return Token{}, errors.Wrap(ErrTokenRequest, errors.New("empty access_token"))
	}

	tok := Token{AccessToken: body.AccessToken}
	if body.ExpiresIn > 0 {
		tok.ExpiresAt = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - expirySkew)
	} else {
		tok.ExpiresAt = time.Now().Add(time.Hour - expirySkew)
	}

	return tok, nil
}

// TokenSource caches a token and refreshes it through fetch when it
// expires. Safe for concurrent use.
type TokenSource struct {
	mu    sync.Mutex
	token Token
	fetch func(ctx context.Context) (Token, error)
}

// NewTokenSource returns a caching source over fetch.
func NewTokenSource(fetch func(ctx context.Context) (Token, error)) *TokenSource {
	return &TokenSource{fetch: fetch}
}

// Bearer returns a valid access token, refreshing if needed.
func (s *TokenSource) Bearer(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token.Valid() {
		return s.token.AccessToken, nil
	}
	tok, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.token = tok

	return tok.AccessToken, nil
}

// Invalidate drops the cached token so the next Bearer call refreshes.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = Token{}
}
