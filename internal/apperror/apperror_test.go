package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("job", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("role", "role is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Duplicate wraps ErrDuplicate",
			err:       Duplicate("email"),
			target:    ErrDuplicate,
			wantMatch: true,
		},
		{
			name:      "Unauthenticated wraps ErrUnauthenticated",
			err:       Unauthenticated("Invalid credentials"),
			target:    ErrUnauthenticated,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("job", 42),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Duplicate does NOT match ErrUnauthenticated",
			err:       Duplicate("email"),
			target:    ErrUnauthenticated,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("job", 42),
			wantMessage: "No job with id 42 was found",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("role", "role is required"),
			wantMessage: "role is required",
		},
		{
			name:        "Duplicate message names the field",
			err:         Duplicate("email"),
			wantMessage: "Duplicate value for field: email",
		},
		{
			name:        "Unauthenticated carries its message",
			err:         Unauthenticated("Invalid credentials"),
			wantMessage: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestFieldAttribution(t *testing.T) {
	// ValidationFailed and Duplicate carry the offending field so the
	// response layer can tell the client which input to fix.
	if err := ValidationFailed("status", "bad status"); err.Field != "status" {
		t.Errorf("Field = %q, want %q", err.Field, "status")
	}
	if err := Duplicate("email"); err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("job", 7)
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}
