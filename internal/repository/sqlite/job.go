package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/jobtracker/internal/apperror"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
)

// compile-time check that *DB implements repository.JobRepository
var _ repository.JobRepository = (*DB)(nil)

// Create inserts a new job owned by job.CreatedBy.
//
// CreatedBy is already the verified caller's id by the time it reaches this
// layer — the service sets it from the request context, never from client
// input. Timestamps are assigned here so the struct the caller holds matches
// what was stored.
func (db *DB) Create(ctx context.Context, job *model.Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO jobs (role, company, status, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		job.Role,
		job.Company,
		job.Status,
		job.CreatedBy,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		if appErr := translateConstraint(err); appErr != nil {
			return appErr
		}
		return fmt.Errorf("sqlite: creating job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new job id: %w", err)
	}
	job.ID = id

	return nil
}

// ListByOwner returns every job created by ownerID, oldest first. The JOIN
// pulls the owner's display name into CreatorName for the response payload.
func (db *DB) ListByOwner(ctx context.Context, ownerID int64) ([]model.Job, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT jobs.id, jobs.role, jobs.company, jobs.status, jobs.created_by,
		        jobs.created_at, jobs.updated_at, users.name AS creator_name
		 FROM jobs
		 INNER JOIN users ON jobs.created_by = users.id
		 WHERE jobs.created_by = ?
		 ORDER BY jobs.id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing jobs for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0, 8)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.ID, &j.Role, &j.Company, &j.Status, &j.CreatedBy,
			&j.CreatedAt, &j.UpdatedAt, &j.CreatorName,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating jobs: %w", err)
	}

	return jobs, nil
}

// GetByID fetches a single job, filtered by (id AND created_by) in one
// statement. A job that exists but belongs to another user takes the exact
// same path as a job that doesn't exist: sql.ErrNoRows → NotFound. Nothing
// in the response distinguishes the two cases.
func (db *DB) GetByID(ctx context.Context, id, ownerID int64) (*model.Job, error) {
	var j model.Job

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, role, company, status, created_by, created_at, updated_at
		 FROM jobs
		 WHERE id = ? AND created_by = ?`,
		id, ownerID,
	).Scan(
		&j.ID, &j.Role, &j.Company, &j.Status, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("job", id)
		}
		return nil, fmt.Errorf("sqlite: getting job %d: %w", id, err)
	}

	return &j, nil
}

// Update applies a partial update to a job the caller owns.
//
// The SET clause is built from the non-nil patch fields, but the statement
// shape is fixed: one conditional UPDATE with the ownership filter in the
// WHERE clause. Filter and mutation are a single atomic operation — there is
// no read-then-write window. updated_at is always refreshed when the row
// matches; when it doesn't (absent or not owned), zero rows are touched and
// no timestamp changes.
//
// Column names in the SET clause come from a fixed allowlist here, never
// from client input, so the string building is injection-safe.
func (db *DB) Update(ctx context.Context, id, ownerID int64, patch repository.JobPatch) (*model.Job, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Role != nil {
		set = append(set, "role = ?")
		args = append(args, *patch.Role)
	}
	if patch.Company != nil {
		set = append(set, "company = ?")
		args = append(args, *patch.Company)
	}
	if patch.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *patch.Status)
	}

	args = append(args, id, ownerID)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE jobs SET `+strings.Join(set, ", ")+` WHERE id = ? AND created_by = ?`,
		args...,
	)
	if err != nil {
		if appErr := translateConstraint(err); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("sqlite: updating job %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperror.NotFound("job", id)
	}

	// The UPDATE above was the atomic filter-and-mutate; this read only
	// shapes the response.
	return db.GetByID(ctx, id, ownerID)
}

// Delete removes a job the caller owns and reports how many rows went away
// (0 or 1). Zero is a valid outcome, not an error — the service layer maps
// it to NotFound. Same single-statement ownership filter as Update.
func (db *DB) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = ? AND created_by = ?`,
		id, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting job %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return affected, nil
}
