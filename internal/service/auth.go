// Package service contains the business logic layer: validation and
// orchestration, with no knowledge of HTTP on one side or SQL on the other.
//
//	Handler (HTTP)  →  Service (rules)  →  Repository (storage)
//	                ↘  auth.TokenService / auth.PasswordService
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/jobtracker/internal/apperror"
	"github.com/sakif/jobtracker/internal/auth"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
)

// Field-shape constraints, mirrored by the CHECK constraints in the schema.
// The service rejects bad input first with a friendlier message; the
// database remains the backstop if this layer is ever bypassed.
const (
	MinNameLength     = 3
	MaxNameLength     = 50
	MinPasswordLength = 6
)

// invalidCredentials is the single error for every login failure. Unknown
// email and wrong password must be indistinguishable to the caller, so both
// branches return this exact value.
var invalidCredentials = apperror.Unauthenticated("Invalid credentials")

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user and the issued token so the handler can build
// the response in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account and issues a token for it.
//
// The raw password is hashed before it goes anywhere near the repository and
// is never logged. Email uniqueness is NOT pre-checked here — the INSERT's
// UNIQUE constraint is the authoritative (and race-free) check, and the
// repository surfaces a violation as apperror.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// Character count, not byte count — the schema's length() checks count
	// characters and a multibyte name must not be rejected early.
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("name must be between %d and %d characters", MinNameLength, MaxNameLength))
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, apperror.ValidationFailed("email", "email must be a valid address")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Duplicate/validation errors are already proper apperrors from the
		// repository; pass them through untouched so the field attribution
		// survives to the response.
		if errors.Is(err, apperror.ErrDuplicate) || errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("name", user.Name),
	)

	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %d: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
//
// Both failure branches — no such email, wrong password — return the
// identical invalidCredentials error, so the response never reveals which
// field was wrong. The bcrypt compare only runs when a user was found; the
// lookup-miss branch is cheaper, but the externally visible error is the
// same either way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, invalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}
