package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/jobtracker/internal/apperror"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
)

const (
	MaxRoleLength    = 100
	MaxCompanyLength = 50
)

// JobService handles the ownership-scoped job operations. Every method takes
// the owner id that the auth middleware verified — it is plumbed down from
// the request context by the handler, and nothing in this layer will accept
// an identity from anywhere else.
type JobService struct {
	jobs   repository.JobRepository
	logger *slog.Logger
}

func NewJobService(jobs repository.JobRepository, logger *slog.Logger) *JobService {
	return &JobService{
		jobs:   jobs,
		logger: logger,
	}
}

// Create validates and stores a new job owned by ownerID.
// An empty status defaults to "pending"; anything outside the allowed set is
// rejected here before it reaches storage (the CHECK constraint would catch
// it anyway, with a blunter message).
func (s *JobService) Create(ctx context.Context, ownerID int64, role, company, status string) (*model.Job, error) {
	role = strings.TrimSpace(role)
	company = strings.TrimSpace(company)

	if role == "" {
		return nil, apperror.ValidationFailed("role", "role is required")
	}
	// Counted in characters, not bytes, to match the schema's length()
	// semantics for multibyte input.
	if utf8.RuneCountInString(role) > MaxRoleLength {
		return nil, apperror.ValidationFailed("role",
			fmt.Sprintf("role must be %d characters or less", MaxRoleLength))
	}
	if company == "" {
		return nil, apperror.ValidationFailed("company", "company is required")
	}
	if utf8.RuneCountInString(company) > MaxCompanyLength {
		return nil, apperror.ValidationFailed("company",
			fmt.Sprintf("company must be %d characters or less", MaxCompanyLength))
	}

	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be one of: %s, %s, %s",
				model.StatusInterview, model.StatusPending, model.StatusDeclined))
	}

	job := &model.Job{
		Role:      role,
		Company:   company,
		Status:    status,
		CreatedBy: ownerID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("service/job: creating job: %w", err)
	}

	s.logger.Info("job created",
		slog.Int64("jobID", job.ID),
		slog.Int64("userID", ownerID),
	)

	return job, nil
}

// List returns all jobs owned by ownerID.
func (s *JobService) List(ctx context.Context, ownerID int64) ([]model.Job, error) {
	jobs, err := s.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service/job: listing jobs: %w", err)
	}
	return jobs, nil
}

// Get returns one job, or NotFound — whether the job is absent or owned by
// someone else, the caller sees the same thing.
func (s *JobService) Get(ctx context.Context, jobID, ownerID int64) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID, ownerID)
	if err != nil {
		return nil, err // already a proper apperror or wrapped db error
	}
	return job, nil
}

// Update applies a partial update. Only role, company, and status are
// mutable; the handler already dropped everything else, and this layer
// validates whatever was supplied. An empty patch is still a valid update —
// it refreshes updated_at and nothing else.
func (s *JobService) Update(ctx context.Context, jobID, ownerID int64, patch repository.JobPatch) (*model.Job, error) {
	if patch.Role != nil {
		role := strings.TrimSpace(*patch.Role)
		if role == "" {
			return nil, apperror.ValidationFailed("role", "role cannot be empty")
		}
		if utf8.RuneCountInString(role) > MaxRoleLength {
			return nil, apperror.ValidationFailed("role",
				fmt.Sprintf("role must be %d characters or less", MaxRoleLength))
		}
		patch.Role = &role
	}
	if patch.Company != nil {
		company := strings.TrimSpace(*patch.Company)
		if company == "" {
			return nil, apperror.ValidationFailed("company", "company cannot be empty")
		}
		if utf8.RuneCountInString(company) > MaxCompanyLength {
			return nil, apperror.ValidationFailed("company",
				fmt.Sprintf("company must be %d characters or less", MaxCompanyLength))
		}
		patch.Company = &company
	}
	if patch.Status != nil && !model.ValidStatus(*patch.Status) {
		return nil, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be one of: %s, %s, %s",
				model.StatusInterview, model.StatusPending, model.StatusDeclined))
	}

	job, err := s.jobs.Update(ctx, jobID, ownerID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job updated",
		slog.Int64("jobID", jobID),
		slog.Int64("userID", ownerID),
	)

	return job, nil
}

// Delete removes a job. The repository reports a row count; zero means the
// job was absent or not the caller's, and both map to NotFound here.
func (s *JobService) Delete(ctx context.Context, jobID, ownerID int64) error {
	count, err := s.jobs.Delete(ctx, jobID, ownerID)
	if err != nil {
		return fmt.Errorf("service/job: deleting job %d: %w", jobID, err)
	}
	if count == 0 {
		return apperror.NotFound("job", jobID)
	}

	s.logger.Info("job deleted",
		slog.Int64("jobID", jobID),
		slog.Int64("userID", ownerID),
	)

	return nil
}
