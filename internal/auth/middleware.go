package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var errMissingToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write the
// identity value — no other package can shadow or spoof it.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is the middleware that enforces authentication on protected
// routes. It reads the JWT from the "Authorization: Bearer <token>" header,
// verifies it, and stores the Identity in the request context. A missing,
// malformed, expired, or tampered token gets the same 401 response — the
// handler is never invoked, and the client learns nothing about which check
// failed.
//
// This is the sole path by which "the current user" becomes known to any job
// operation. Handlers must read the identity via IdentityFromContext and
// never accept a user id from the request body or query string.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := extractIdentity(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Authentication invalid"}`))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated caller from the request
// context. Returns (Identity{}, false) if the request never passed through
// RequireAuth — handlers on protected routes treat that as 401, not a panic.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok && ident.UserID != 0
}

// extractIdentity pulls the bearer token out of the Authorization header and
// verifies it.
func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	header := r.Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return Identity{}, errMissingToken
	}

	return tokens.Verify(tokenStr)
}
