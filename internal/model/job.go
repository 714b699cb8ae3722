package model

import "time"

// Job status values. These mirror the CHECK constraint on jobs.status — the
// database rejects anything outside this set even if validation is bypassed.
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusDeclined  = "declined"
)

// ValidStatus reports whether s is one of the allowed job statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined:
		return true
	}
	return false
}

// Job represents one tracked job application.
//
// CreatedBy is set exactly once at creation, from the authenticated caller's
// identity — it is never accepted as client input. Every query that touches a
// job filters on (id AND created_by), so a job owned by someone else is
// indistinguishable from a job that doesn't exist.
//
// CreatorName is populated only by list queries (a JOIN against users); it is
// omitted from JSON when empty.
type Job struct {
	ID          int64     `json:"id"`
	Role        string    `json:"role"`
	Company     string    `json:"company"`
	Status      string    `json:"status"`
	CreatedBy   int64     `json:"createdBy"`
	CreatorName string    `json:"creatorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
