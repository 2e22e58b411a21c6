// Package admin implements the admin console's aggregation and its
// incremental state maintenance. Mutations go through a pure reducer so
// the counter invariant is mechanically checkable instead of being spread
// across hand-written increment sites.
package admin

import (
	"time"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

// State is the admin console's in-memory world: the entity collections
// plus the derived counters. MonthStart anchors the new-users-this-month
// predicate to the moment of aggregation.
type State struct {
	Users        []domain.User
	Jobs         []domain.Job
	Applications []domain.Application
	Reviews      []domain.Review
	Stats        domain.AggregateStats
	MonthStart   time.Time
}

// Mutation is one local change applied after the corresponding API call
// succeeded. None of them trigger a refetch.
type Mutation interface {
	isMutation()
}

type CreateJob struct{ Job domain.Job }

type UpdateJob struct{ Job domain.Job }

// DeleteJob cascades: every application and review with a matching JobID
// is removed, and the totals drop by exactly the counts removed.
type DeleteJob struct{ JobID int64 }

type SetApplicationStatus struct {
	AppID  int64
	Status domain.ApplicationStatus
}

type DeleteReview struct{ ReviewID int64 }

type DeleteUser struct{ UserID int64 }

// ReplaceJobApplications swaps in freshly fetched applications for one job.
type ReplaceJobApplications struct {
	JobID        int64
	Applications []domain.Application
}

// ReplaceJobReviews swaps in freshly fetched reviews for one job.
type ReplaceJobReviews struct {
	JobID   int64
	Reviews []domain.Review
}

func (CreateJob) isMutation()              {}
func (UpdateJob) isMutation()              {}
func (DeleteJob) isMutation()              {}
func (SetApplicationStatus) isMutation()   {}
func (DeleteReview) isMutation()           {}
func (DeleteUser) isMutation()             {}
func (ReplaceJobApplications) isMutation() {}
func (ReplaceJobReviews) isMutation()      {}

// Apply returns the state after one mutation. Counters are adjusted by
// exact deltas computed from the pre-mutation collections, never
// recomputed from scratch, and never read from the server.
func Apply(s State, m Mutation) State {
	switch mut := m.(type) {
	case CreateJob:
		s.Jobs = append(cloneJobs(s.Jobs), mut.Job)
		s.Stats.TotalJobs++
		if mut.Job.Active {
			s.Stats.ActiveJobs++
		}

	case UpdateJob:
		jobs := cloneJobs(s.Jobs)
		for i, j := range jobs {
			if j.ID != mut.Job.ID {
				continue
			}
			if j.Active && !mut.Job.Active {
				s.Stats.ActiveJobs--
			} else if !j.Active && mut.Job.Active {
				s.Stats.ActiveJobs++
			}
			jobs[i] = mut.Job
			break
		}
		s.Jobs = jobs

	case DeleteJob:
		var removedApps, removedPending, removedReviews int
		for _, a := range s.Applications {
			if a.JobID == mut.JobID {
				removedApps++
				if a.Status.IsPending() {
					removedPending++
				}
			}
		}
		for _, r := range s.Reviews {
			if r.JobID == mut.JobID {
				removedReviews++
			}
		}
		for _, j := range s.Jobs {
			if j.ID == mut.JobID {
				s.Stats.TotalJobs--
				if j.Active {
					s.Stats.ActiveJobs--
				}
				break
			}
		}
		s.Jobs = filterJobs(s.Jobs, func(j domain.Job) bool { return j.ID != mut.JobID })
		s.Applications = filterApps(s.Applications, func(a domain.Application) bool { return a.JobID != mut.JobID })
		s.Reviews = filterReviews(s.Reviews, func(r domain.Review) bool { return r.JobID != mut.JobID })
		s.Stats.TotalApplications -= removedApps
		s.Stats.PendingApplications -= removedPending
		s.Stats.TotalReviews -= removedReviews

	case SetApplicationStatus:
		apps := cloneApps(s.Applications)
		for i, a := range apps {
			if a.ID != mut.AppID {
				continue
			}
			wasPending := a.Status.IsPending()
			isPending := mut.Status.IsPending()
			if wasPending && !isPending {
				s.Stats.PendingApplications--
			} else if !wasPending && isPending {
				s.Stats.PendingApplications++
			}
			apps[i].Status = mut.Status
			break
		}
		s.Applications = apps

	case DeleteReview:
		before := len(s.Reviews)
		s.Reviews = filterReviews(s.Reviews, func(r domain.Review) bool { return r.ID != mut.ReviewID })
		s.Stats.TotalReviews -= before - len(s.Reviews)

	case DeleteUser:
		for _, u := range s.Users {
			if u.ID == mut.UserID {
				s.Stats.TotalUsers--
				if u.JoinedSince(s.MonthStart) {
					s.Stats.NewUsersThisMonth--
				}
				break
			}
		}
		s.Users = filterUsers(s.Users, func(u domain.User) bool { return u.ID != mut.UserID })

	case ReplaceJobApplications:
		var oldCount, oldPending int
		for _, a := range s.Applications {
			if a.JobID == mut.JobID {
				oldCount++
				if a.Status.IsPending() {
					oldPending++
				}
			}
		}
		var newPending int
		for _, a := range mut.Applications {
			if a.Status.IsPending() {
				newPending++
			}
		}
		kept := filterApps(s.Applications, func(a domain.Application) bool { return a.JobID != mut.JobID })
		s.Applications = append(kept, mut.Applications...)
		s.Stats.TotalApplications += len(mut.Applications) - oldCount
		s.Stats.PendingApplications += newPending - oldPending

	case ReplaceJobReviews:
		var oldCount int
		for _, r := range s.Reviews {
			if r.JobID == mut.JobID {
				oldCount++
			}
		}
		kept := filterReviews(s.Reviews, func(r domain.Review) bool { return r.JobID != mut.JobID })
		s.Reviews = append(kept, mut.Reviews...)
		s.Stats.TotalReviews += len(mut.Reviews) - oldCount
	}
	return s
}

func cloneJobs(in []domain.Job) []domain.Job {
	out := make([]domain.Job, len(in))
	copy(out, in)
	return out
}

func cloneApps(in []domain.Application) []domain.Application {
	out := make([]domain.Application, len(in))
	copy(out, in)
	return out
}

func filterJobs(in []domain.Job, keep func(domain.Job) bool) []domain.Job {
	out := make([]domain.Job, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterApps(in []domain.Application, keep func(domain.Application) bool) []domain.Application {
	out := make([]domain.Application, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterReviews(in []domain.Review, keep func(domain.Review) bool) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterUsers(in []domain.User, keep func(domain.User) bool) []domain.User {
	out := make([]domain.User, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
