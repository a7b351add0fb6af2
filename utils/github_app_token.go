// utils/github_app_token.go
//
// Package utils provides authentication helpers for APIs the fetch client
// talks to.
//
// This file implements an oauth2.TokenSource that mints the short-lived
// RS256-signed JWT a GitHub App presents when calling api.github.com (to
// list installations or exchange for an installation token). GitHub rejects
// app JWTs valid for more than ten minutes, so the source issues nine-minute
// tokens by default and backdates iat slightly to absorb clock skew.
package utils

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

const (
	defaultAppTokenTTL = 9 * time.Minute
	issuedAtBackdate   = 30 * time.Second
)

// GitHubAppTokenSource mints GitHub App JWTs on demand. It implements
// oauth2.TokenSource, so it plugs directly into adapters.HTTPOptions.
type GitHubAppTokenSource struct {
	appID string
	key   *rsa.PrivateKey
	ttl   time.Duration
}

var _ oauth2.TokenSource = (*GitHubAppTokenSource)(nil)

// NewGitHubAppTokenSource parses a PEM-encoded RSA private key (the key file
// GitHub generates for the app) and returns a token source issuing JWTs for
// the given app ID.
func NewGitHubAppTokenSource(appID string, privateKeyPEM []byte) (*GitHubAppTokenSource, error) {
	if appID == "" {
		return nil, fmt.Errorf("app ID is required for a GitHub App token source")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse GitHub App private key: %w", err)
	}
	return &GitHubAppTokenSource{appID: appID, key: key, ttl: defaultAppTokenTTL}, nil
}

// Token signs and returns a fresh app JWT. oauth2's caching layer
// (oauth2.ReuseTokenSource) can wrap this if callers want fewer signatures.
func (s *GitHubAppTokenSource) Token() (*oauth2.Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-issuedAtBackdate)),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("sign GitHub App JWT: %w", err)
	}
	return &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      now.Add(s.ttl),
	}, nil
}
