// Copyright 2026 SpotHero
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// Config contains configuration for the session package
type Config struct {
	SecretKey  string // HMAC secret shared with the service that issues session tokens
	CookieName string // Name of the cookie carrying the session token
	Issuer     string // Expected issuer (iss) of session tokens, ignored when empty
}

// NewDefaultConfig returns a Config reading the "token" cookie. The secret key must still be set.
func NewDefaultConfig() Config {
	return Config{CookieName: "token"}
}

// ErrNoSecretKey is returned when a Verifier is created without a secret key.
var ErrNoSecretKey = errors.New("session: no secret key configured")

// Claims holds the session claims placed on the request context.
type Claims struct {
	UserID string `json:"userId"`
}

type claimsCtxKey struct{}

// NewContext registers claims on a given context and returns that new context
func (c Claims) NewContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, &c)
}

// FromContext returns the session claims on the context, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*Claims)
	return claims, ok
}

// Verifier validates HS256 signed session tokens.
type Verifier struct {
	key        []byte
	issuer     string
	cookieName string
	now        func() time.Time
}

// NewVerifier creates and returns a Verifier for use.
func (c Config) NewVerifier() (Verifier, error) {
	if len(c.SecretKey) == 0 {
		return Verifier{}, ErrNoSecretKey
	}
	cookieName := c.CookieName
	if cookieName == "" {
		cookieName = "token"
	}
	return Verifier{
		key:        []byte(c.SecretKey),
		issuer:     c.Issuer,
		cookieName: cookieName,
		now:        time.Now,
	}, nil
}

// Verify parses and validates a compact serialized token and returns its claims. Tokens must be
// signed with HS256 and carry a user id. Expiry and not-before are enforced when present.
func (v Verifier) Verify(token string) (Claims, error) {
	tok, err := jwt.ParseSigned(token)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return Claims{}, fmt.Errorf("session token is not signed with %s", jose.HS256)
	}

	publicClaims := jwt.Claims{}
	claims := Claims{}
	if err := tok.Claims(v.key, &publicClaims, &claims); err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from session token: %w", err)
	}
	if err := publicClaims.Validate(jwt.Expected{Issuer: v.issuer, Time: v.now()}); err != nil {
		return Claims{}, fmt.Errorf("session token is not valid: %w", err)
	}
	if claims.UserID == "" {
		return Claims{}, errors.New("session token has no user id")
	}
	return claims, nil
}

// Issue signs a session token for the given user that expires after ttl. The user resource calls
// it on login and hands the token back in the configured cookie.
func (v Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: v.key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create session token signer: %w", err)
	}
	now := v.now()
	publicClaims := jwt.Claims{
		Issuer:   v.issuer,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.Signed(signer).Claims(publicClaims).Claims(Claims{UserID: userID}).CompactSerialize()
}
