package admin

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// AggregateAPI is the API surface the aggregator needs.
type AggregateAPI interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	ListJobs(ctx context.Context, category string) ([]domain.Job, error)
	AppliedCandidates(ctx context.Context, token string, jobID int64) ([]domain.Application, error)
	ListReviews(ctx context.Context, token string, jobID int64) ([]domain.Review, error)
}

// Aggregator builds the admin console's consolidated state. The per-job
// sub-fetches are issued sequentially in job-list order, so peak in-flight
// requests stay at one at the cost of latency proportional to job count.
type Aggregator struct {
	api    AggregateAPI
	logger *infra.Logger
	// Progress, when set, is called after each job's sub-fetches finish.
	Progress func(done, total int)
}

func NewAggregator(aggregateAPI AggregateAPI, logger *infra.Logger) *Aggregator {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Aggregator{api: aggregateAPI, logger: logger}
}

// RefreshAll fetches users and jobs, then per job its applicants and
// reviews. A failing sub-fetch is logged and that job's contribution is
// simply absent from the aggregate; there is no retry. Stats are computed
// once from whatever was collected.
func (a *Aggregator) RefreshAll(ctx context.Context, sess *session.Session) (State, error) {
	if !sess.Valid() {
		return State{}, domain.ErrAuthRequired
	}
	token := sess.Token()

	users, err := a.api.ListUsers(ctx, token)
	if err != nil {
		return State{}, err
	}
	jobs, err := a.api.ListJobs(ctx, "")
	if err != nil {
		return State{}, err
	}

	var (
		applications []domain.Application
		reviews      []domain.Review
		failedJobs   int
	)
	for i, job := range jobs {
		apps, reviewList, err := a.fetchJobDetails(ctx, token, job)
		if err != nil {
			// Partial data is acceptable; the admin view shows what loaded.
			failedJobs++
			a.logger.Error().Err(err).Int64("job_id", job.ID).Msg("admin: job sub-fetch failed")
		} else {
			applications = append(applications, apps...)
			reviews = append(reviews, reviewList...)
		}
		if a.Progress != nil {
			a.Progress(i+1, len(jobs))
		}
	}
	if failedJobs > 0 {
		a.logger.Warn().Int("failed_jobs", failedJobs).Msg("admin: aggregate is partial")
	}

	now := time.Now()
	return State{
		Users:        users,
		Jobs:         jobs,
		Applications: applications,
		Reviews:      reviews,
		Stats:        domain.ComputeStats(users, jobs, applications, reviews, now),
		MonthStart:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}, nil
}

// fetchJobDetails loads one job's applicants and reviews and annotates
// them with the job's title and company for display.
func (a *Aggregator) fetchJobDetails(ctx context.Context, token string, job domain.Job) ([]domain.Application, []domain.Review, error) {
	apps, err := a.api.AppliedCandidates(ctx, token, job.ID)
	if err != nil {
		return nil, nil, err
	}
	for i := range apps {
		apps[i].JobTitle = job.Title
		apps[i].CompanyName = job.CompanyName
	}
	reviewList, err := a.api.ListReviews(ctx, token, job.ID)
	if err != nil {
		return nil, nil, err
	}
	for i := range reviewList {
		reviewList[i].JobTitle = job.Title
	}
	return apps, reviewList, nil
}
