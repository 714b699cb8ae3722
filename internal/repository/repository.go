// Package repository defines the storage interfaces the service layer
// programs against. The concrete SQLite implementation lives in the sqlite
// subpackage; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/jobtracker/internal/model"
)

type UserRepository interface {
	// CreateUser inserts the user and fills in the store-assigned ID.
	// Fails with apperror.ErrDuplicate if the email is already registered,
	// apperror.ErrValidation if a check constraint rejects a field.
	CreateUser(ctx context.Context, user *model.User) error

	// GetByEmail does an exact-match lookup. Absence is reported as
	// apperror.ErrNotFound; the login flow translates that into the same
	// error a wrong password produces.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// JobPatch is a partial update. Nil fields are left untouched; only role,
// company, and status are mutable at all.
type JobPatch struct {
	Role    *string
	Company *string
	Status  *string
}

// JobRepository is the ownership-scoped job store. Every operation takes the
// verified owner id and folds it into the WHERE clause of a single statement,
// so a job owned by someone else behaves exactly like a job that does not
// exist — there is no separate "forbidden" outcome to leak existence.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Job, error)
	GetByID(ctx context.Context, id, ownerID int64) (*model.Job, error)
	Update(ctx context.Context, id, ownerID int64, patch JobPatch) (*model.Job, error)
	// Delete returns the number of rows removed (0 or 1); 0 is not an error.
	Delete(ctx context.Context, id, ownerID int64) (int64, error)
}
