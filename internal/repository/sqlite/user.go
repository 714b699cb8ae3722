package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/jobtracker/internal/apperror"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user and fills in the database-assigned id.
//
// The interesting part is the error path: the UNIQUE constraint on email and
// the CHECK constraints on every column fire here, atomically, inside the
// INSERT. translateConstraint turns those into apperror values so the caller
// gets "Duplicate value for field: email" rather than a driver message.
// There is deliberately no SELECT-before-INSERT existence check — that would
// be a race, and the constraint already is the check.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password) VALUES (?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		if appErr := translateConstraint(err); appErr != nil {
			return appErr
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail looks up a user by exact email match.
// Returns apperror.ErrNotFound when no such user exists — the login flow
// folds that into the same "invalid credentials" outcome as a wrong
// password, so the repository does not need to be coy here.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM users WHERE email = ?`,
		email,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "no user with that email",
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}
