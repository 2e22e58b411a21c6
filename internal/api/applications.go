package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type applicantUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type applicationRecord struct {
	ID        int64          `json:"id"`
	Status    string         `json:"status"`
	AppliedAt string         `json:"applied_at"`
	CreatedAt string         `json:"created_at"`
	User      *applicantUser `json:"user"`
}

func (r applicationRecord) toDomain(jobID int64) domain.Application {
	app := domain.Application{
		ID:        r.ID,
		JobID:     jobID,
		Status:    domain.ApplicationStatus(r.Status),
		AppliedAt: parseTime(coalesce(r.AppliedAt, r.CreatedAt)),
	}
	if r.User != nil {
		app.UserID = r.User.ID
		app.UserName = r.User.Name
		if app.UserName == "" {
			app.UserName = fmt.Sprintf("User #%d", r.User.ID)
		}
	} else {
		app.UserName = "Unknown"
	}
	return app
}

type reviewRecord struct {
	ID        int64          `json:"id"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt string         `json:"created_at"`
	User      *applicantUser `json:"user"`
}

func (r reviewRecord) toDomain(jobID int64) domain.Review {
	review := domain.Review{
		ID:        r.ID,
		JobID:     jobID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: parseTime(r.CreatedAt),
	}
	if r.User != nil {
		review.UserID = r.User.ID
		review.UserName = r.User.Name
	}
	return review
}

// AppliedCandidates fetches the applications attached to one job.
func (c *Client) AppliedCandidates(ctx context.Context, token string, jobID int64) ([]domain.Application, error) {
	endpoint := c.url(fmt.Sprintf("/jobs/%d/appliedCandidates/", jobID))
	var records []applicationRecord
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &records); err != nil {
		return nil, &domain.FetchError{Resource: fmt.Sprintf("job %d applicants", jobID), Err: err}
	}
	apps := make([]domain.Application, 0, len(records))
	for _, r := range records {
		apps = append(apps, r.toDomain(jobID))
	}
	return apps, nil
}

// UpdateApplicationStatus moves one application to a new status.
func (c *Client) UpdateApplicationStatus(ctx context.Context, token string, jobID, appID int64, status domain.ApplicationStatus) error {
	endpoint := c.url(fmt.Sprintf("/jobs/%d/appliedCandidates/%d/", jobID, appID))
	return c.do(ctx, http.MethodPut, endpoint, token, map[string]string{"status": string(status)}, nil)
}

// ListReviews fetches the reviews attached to one job.
func (c *Client) ListReviews(ctx context.Context, token string, jobID int64) ([]domain.Review, error) {
	endpoint := c.url(fmt.Sprintf("/jobs/%d/reviews/", jobID))
	var records []reviewRecord
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &records); err != nil {
		return nil, &domain.FetchError{Resource: fmt.Sprintf("job %d reviews", jobID), Err: err}
	}
	reviews := make([]domain.Review, 0, len(records))
	for _, r := range records {
		reviews = append(reviews, r.toDomain(jobID))
	}
	return reviews, nil
}

// DeleteReview removes one review from a job.
func (c *Client) DeleteReview(ctx context.Context, token string, jobID, reviewID int64) error {
	endpoint := c.url(fmt.Sprintf("/jobs/%d/reviews/%d/", jobID, reviewID))
	return c.do(ctx, http.MethodDelete, endpoint, token, nil, nil)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
