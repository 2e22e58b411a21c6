package domain

import "time"

// AggregateStats is the derived, non-authoritative projection of the admin
// collections. After any sequence of local mutations without a refetch,
// each counter must equal the count of the corresponding collection
// filtered by its predicate.
type AggregateStats struct {
	TotalUsers          int
	TotalJobs           int
	ActiveJobs          int
	TotalApplications   int
	PendingApplications int
	NewUsersThisMonth   int
	TotalReviews        int
}

// ComputeStats derives the counters from full collections. The incremental
// reducer must stay consistent with this function.
func ComputeStats(users []User, jobs []Job, apps []Application, reviews []Review, now time.Time) AggregateStats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	s := AggregateStats{
		TotalUsers:        len(users),
		TotalJobs:         len(jobs),
		TotalApplications: len(apps),
		TotalReviews:      len(reviews),
	}
	for _, j := range jobs {
		if j.Active {
			s.ActiveJobs++
		}
	}
	for _, a := range apps {
		if a.Status.IsPending() {
			s.PendingApplications++
		}
	}
	for _, u := range users {
		if u.JoinedSince(monthStart) {
			s.NewUsersThisMonth++
		}
	}
	return s
}
