package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/jobtracker/internal/apperror"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// fakeJobRepo is an in-memory JobRepository that reproduces the ownership
// contract: every lookup filters by (id AND owner), so a job belonging to
// another owner behaves exactly like a missing one.
type fakeJobRepo struct {
	jobs   map[int64]*model.Job
	nextID int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:   make(map[int64]*model.Job),
		nextID: 1,
	}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *model.Job) error {
	job.ID = f.nextID
	f.nextID++
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Job, error) {
	out := make([]model.Job, 0, len(f.jobs))
	for id := int64(1); id < f.nextID; id++ {
		if j, ok := f.jobs[id]; ok && j.CreatedBy == ownerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id, ownerID int64) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok || j.CreatedBy != ownerID {
		return nil, apperror.NotFound("job", id)
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, id, ownerID int64, patch repository.JobPatch) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok || j.CreatedBy != ownerID {
		return nil, apperror.NotFound("job", id)
	}
	if patch.Role != nil {
		j.Role = *patch.Role
	}
	if patch.Company != nil {
		j.Company = *patch.Company
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	j.UpdatedAt = time.Now()
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	j, ok := f.jobs[id]
	if !ok || j.CreatedBy != ownerID {
		return 0, nil
	}
	delete(f.jobs, j.ID)
	return 1, nil
}

func newTestJobService(repo *fakeJobRepo) *JobService {
	return NewJobService(repo, testLogger())
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestJobCreate_DefaultsToPending(t *testing.T) {
	s := newTestJobService(newFakeJobRepo())

	job, err := s.Create(context.Background(), 1, "Engineer", "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.Status != model.StatusPending {
		t.Errorf("Status = %q, want %q", job.Status, model.StatusPending)
	}
	if job.CreatedBy != 1 {
		t.Errorf("CreatedBy = %d, want the caller's id", job.CreatedBy)
	}
}

func TestJobCreate_ExplicitStatus(t *testing.T) {
	s := newTestJobService(newFakeJobRepo())

	job, err := s.Create(context.Background(), 1, "Engineer", "Acme", model.StatusInterview)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.Status != model.StatusInterview {
		t.Errorf("Status = %q, want %q", job.Status, model.StatusInterview)
	}
}

func TestJobCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		company   string
		status    string
		wantField string
	}{
		{"empty role", "", "Acme", "", "role"},
		{"role over 100 chars", strings.Repeat("r", 101), "Acme", "", "role"},
		{"role over 100 multibyte chars", strings.Repeat("é", 101), "Acme", "", "role"},
		{"empty company", "Engineer", "", "", "company"},
		{"company over 50 chars", "Engineer", strings.Repeat("c", 51), "", "company"},
		{"company over 50 multibyte chars", "Engineer", strings.Repeat("株", 51), "", "company"},
		{"unknown status", "Engineer", "Acme", "ghosted", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestJobService(newFakeJobRepo())

			_, err := s.Create(context.Background(), 1, tt.role, tt.company, tt.status)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatal("error is not an *AppError")
			}
			if appErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.wantField)
			}
		})
	}
}

func TestJobCreate_RoleBoundary(t *testing.T) {
	s := newTestJobService(newFakeJobRepo())

	// Exactly 100 characters is within the limit.
	if _, err := s.Create(context.Background(), 1, strings.Repeat("r", 100), "Acme", ""); err != nil {
		t.Errorf("Create() with 100-char role error = %v", err)
	}

	// The limit counts characters, not bytes: 100 two-byte runes are still
	// within it.
	if _, err := s.Create(context.Background(), 1, strings.Repeat("é", 100), "Acme", ""); err != nil {
		t.Errorf("Create() with 100 multibyte-char role error = %v", err)
	}
}

// =========================================================================
// OWNERSHIP TESTS
// =========================================================================

func TestJobOperations_ScopedToOwner(t *testing.T) {
	repo := newFakeJobRepo()
	s := newTestJobService(repo)

	const alice, bob = int64(1), int64(2)

	job, err := s.Create(context.Background(), alice, "Engineer", "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Get, Update, and Delete with Bob's identity against Alice's job must
	// all behave as if the job does not exist.
	if _, err := s.Get(context.Background(), job.ID, bob); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() as non-owner error = %v, want ErrNotFound", err)
	}

	role := "Hijacked"
	if _, err := s.Update(context.Background(), job.ID, bob, repository.JobPatch{Role: &role}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() as non-owner error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(context.Background(), job.ID, bob); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() as non-owner error = %v, want ErrNotFound", err)
	}

	// Alice still sees her job untouched.
	got, err := s.Get(context.Background(), job.ID, alice)
	if err != nil {
		t.Fatalf("Get() as owner error = %v", err)
	}
	if got.Role != "Engineer" {
		t.Errorf("Role = %q, cross-owner operations modified the job", got.Role)
	}
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestJobUpdate_ValidatesPatch(t *testing.T) {
	repo := newFakeJobRepo()
	s := newTestJobService(repo)

	job, _ := s.Create(context.Background(), 1, "Engineer", "Acme", "")

	bad := "ghosted"
	_, err := s.Update(context.Background(), job.ID, 1, repository.JobPatch{Status: &bad})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update() with bad status error = %v, want ErrValidation", err)
	}
}

func TestJobDelete_MapsZeroCountToNotFound(t *testing.T) {
	s := newTestJobService(newFakeJobRepo())

	err := s.Delete(context.Background(), 12345, 1)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() of absent job error = %v, want ErrNotFound", err)
	}
}

func TestJobList_OnlyOwnJobs(t *testing.T) {
	repo := newFakeJobRepo()
	s := newTestJobService(repo)

	s.Create(context.Background(), 1, "Engineer", "Acme", "")
	s.Create(context.Background(), 2, "Manager", "Globex", "")
	s.Create(context.Background(), 1, "Designer", "Initech", "")

	jobs, err := s.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("List() returned %d jobs, want 2", len(jobs))
	}
	for _, j := range jobs {
		if j.CreatedBy != 1 {
			t.Errorf("job owned by %d leaked into user 1's list", j.CreatedBy)
		}
	}
}
