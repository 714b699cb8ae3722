package auth

import (
	"testing"
	"time"
)

// newTestTokenService creates a TokenService with a fixed secret so tests
// are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// CONSTRUCTION TESTS
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	// An unset JWT_SECRET reaches this constructor as "" and must fail —
	// this is what makes a missing secret a startup error, not a run-time 500.
	_, err := NewTokenService("")
	if err == nil {
		t.Fatal("NewTokenService() should reject an empty secret")
	}
}

// =========================================================================
// Issue TESTS
// =========================================================================

func TestIssue_ReturnsCompactJWT(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue(1, "Alice Smith")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Error("Issue() returned empty token")
	}

	// Compact JWT = three dot-separated segments.
	dots := 0
	for _, c := range token {
		if c == '.' {
			dots++
		}
	}
	if dots != 2 {
		t.Errorf("Issue() token doesn't look like a JWT (expected 2 dots, got %d)", dots)
	}
}

func TestIssue_DifferentUsersGetDifferentTokens(t *testing.T) {
	ts := newTestTokenService(t)

	token1, _ := ts.Issue(1, "Alice Smith")
	token2, _ := ts.Issue(2, "Bob Jones")

	if token1 == token2 {
		t.Error("Issue() returned identical tokens for different users")
	}
}

func TestIssue_SameUserGetsDistinctTokens(t *testing.T) {
	ts := newTestTokenService(t)

	// The jti claim makes every issued token unique, even for the same user
	// in the same second.
	token1, _ := ts.Issue(1, "Alice Smith")
	token2, _ := ts.Issue(1, "Alice Smith")

	if token1 == token2 {
		t.Error("Issue() returned identical tokens for consecutive calls")
	}
}

// =========================================================================
// Verify TESTS
// =========================================================================

func TestVerify_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue(42, "Alice Smith")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	ident, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ident.UserID != 42 {
		t.Errorf("Verify() UserID = %d, want 42", ident.UserID)
	}
	if ident.Name != "Alice Smith" {
		t.Errorf("Verify() Name = %q, want %q", ident.Name, "Alice Smith")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.issueWithLifetime(1, "Alice Smith", -1*time.Second)
	if err != nil {
		t.Fatalf("issueWithLifetime() error = %v", err)
	}

	if _, err := ts.Verify(token); err == nil {
		t.Fatal("Verify() should return an error for an expired token")
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.Issue(1, "Alice Smith")

	// Mangle the signature segment.
	tampered := token[:len(token)-3] + "xxx"

	if _, err := ts.Verify(tampered); err == nil {
		t.Fatal("Verify() should return an error for a tampered token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	ts1, _ := NewTokenService("correct-secret-32-chars-long!!!!")
	ts2, _ := NewTokenService("wrong-secret-32-chars-long!!!!!!")

	token, _ := ts1.Issue(1, "Alice Smith")

	if _, err := ts2.Verify(token); err == nil {
		t.Fatal("Verify() should fail when using a different secret")
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Verify(""); err == nil {
		t.Fatal("Verify() should return an error for an empty string")
	}
}

func TestVerify_GarbageString(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Verify("not.a.jwt"); err == nil {
		t.Fatal("Verify() should return an error for a garbage string")
	}
}

func TestVerify_LongLivedToken(t *testing.T) {
	ts := newTestTokenService(t)

	// The standard lifetime is 30 days; a freshly issued token must verify.
	token, err := ts.issueWithLifetime(7, "Bob Jones", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("issueWithLifetime() error = %v", err)
	}

	ident, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ident.UserID != 7 {
		t.Errorf("UserID = %d, want 7", ident.UserID)
	}
}
