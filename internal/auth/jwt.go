// Package auth provides password hashing, JWT issuance/verification, and the
// bearer-token middleware for the jobtracker API.
//
// AUTHENTICATION FLOW:
//  1. POST /register or /login → server issues a signed JWT
//  2. Client sends "Authorization: Bearer <token>" on every /jobs request
//  3. RequireAuth validates the token and puts the Identity in the context
//  4. Handlers read the identity from the context — never from the body
//
// The token is stateless: all the server needs to trust it is the signing
// secret. There is no session table and no revocation list — a leaked token
// stays valid until its natural expiry. That trade-off is deliberate.
//
// TOKEN STRUCTURE (three base64 segments separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: {"alg":"HS256","typ":"JWT"}
//	- Payload: {"userId":1,"name":"Alice Smith","exp":...,"iat":...,"jti":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// tokenLifetime is how long an issued token stays valid.
const tokenLifetime = 30 * 24 * time.Hour

const issuer = "jobtracker"

// Identity is the verified caller extracted from a token. It is the only
// representation of "the current user" the rest of the codebase sees.
type Identity struct {
	UserID int64
	Name   string
}

// TokenService signs and verifies JWTs.
//
// It holds the HMAC secret, which is process-wide configuration: loaded once
// at startup, never mutated, safe for concurrent reads.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// A missing or short secret is a construction error — main treats it as
// fatal, so a misconfigured process never starts serving.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the user's id and display name, plus the
// registered fields (exp, iat, jti, iss).
type claims struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Issue creates and signs a token for the given user, valid for 30 days.
//
// Each token gets a unique jti (xid) so two tokens issued in the same second
// for the same user are still distinct strings.
func (s *TokenService) Issue(userID int64, name string) (string, error) {
	return s.issueWithLifetime(userID, name, tokenLifetime)
}

// issueWithLifetime is the shared implementation; tests use it to mint
// already-expired tokens.
func (s *TokenService) issueWithLifetime(userID int64, name string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a JWT string and returns the Identity it binds.
//
// Checks performed: signature integrity, HS256 algorithm (rejects algorithm
// confusion), expiry, and issuer. All failure modes return an error with no
// distinguishing detail for the client — the middleware collapses every one
// of them into the same 401, so a caller can't learn whether a token was
// expired, tampered, or simply garbage.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}

	if c.UserID == 0 {
		return Identity{}, fmt.Errorf("auth: token has no user id")
	}

	return Identity{UserID: c.UserID, Name: c.Name}, nil
}
