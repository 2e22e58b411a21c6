package domain

import "time"

// Job is a posting on the board. Created and mutated only through the
// admin console; read by every listing view.
type Job struct {
	ID           int64
	Title        string
	CompanyName  string
	Category     string
	Location     string
	Description  string
	Requirements string
	Active       bool
	CreatedAt    time.Time
}

// ApplicationStatus enumerates the lifecycle of a job application.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusPending   ApplicationStatus = "pending"
	StatusInterview ApplicationStatus = "interview"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// IsPending reports whether the status counts toward the pending-applications
// aggregate. Freshly applied entries count as pending until triaged.
func (s ApplicationStatus) IsPending() bool {
	return s == StatusPending || s == StatusApplied
}

// Application records a user applying to a job. JobTitle, CompanyName and
// UserName are denormalized during admin aggregation for display.
type Application struct {
	ID          int64
	JobID       int64
	UserID      int64
	UserName    string
	JobTitle    string
	CompanyName string
	Status      ApplicationStatus
	AppliedAt   time.Time
}

// Review is a user's rating of a job posting. Created outside the admin
// console; only deletion is in scope here.
type Review struct {
	ID        int64
	JobID     int64
	JobTitle  string
	UserID    int64
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
