package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type jobRecord struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	IsActive     *bool  `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

func (r jobRecord) toDomain() domain.Job {
	return domain.Job{
		ID:           r.ID,
		Title:        r.Title,
		CompanyName:  r.CompanyName,
		Category:     r.Category,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		// A job is active unless the server explicitly says otherwise.
		Active:    r.IsActive == nil || *r.IsActive,
		CreatedAt: parseTime(r.CreatedAt),
	}
}

// JobForm carries the fields of the admin create/edit job modal.
type JobForm struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// ListJobs fetches job postings, optionally filtered by category.
func (c *Client) ListJobs(ctx context.Context, category string) ([]domain.Job, error) {
	endpoint := c.url("/jobs/")
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}
	var records []jobRecord
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &records); err != nil {
		return nil, &domain.FetchError{Resource: "jobs", Err: err}
	}
	jobs := make([]domain.Job, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, r.toDomain())
	}
	return jobs, nil
}

// CreateJob posts a new job and returns the created record.
func (c *Client) CreateJob(ctx context.Context, token string, form JobForm) (domain.Job, error) {
	var record jobRecord
	if err := c.do(ctx, http.MethodPost, c.url("/jobs/"), token, form, &record); err != nil {
		return domain.Job{}, err
	}
	return record.toDomain(), nil
}

// UpdateJob replaces an existing job's fields and returns the updated record.
func (c *Client) UpdateJob(ctx context.Context, token string, jobID int64, form JobForm) (domain.Job, error) {
	var record jobRecord
	endpoint := c.url(fmt.Sprintf("/jobs/%d/", jobID))
	if err := c.do(ctx, http.MethodPut, endpoint, token, form, &record); err != nil {
		return domain.Job{}, err
	}
	return record.toDomain(), nil
}

// DeleteJob removes a job posting. Cascading its applications and reviews
// out of local state is the admin controller's job.
func (c *Client) DeleteJob(ctx context.Context, token string, jobID int64) error {
	return c.do(ctx, http.MethodDelete, c.url(fmt.Sprintf("/jobs/%d/", jobID)), token, nil, nil)
}

// ApplyToJob submits an application for the authenticated user. The server
// answers 200 or 201 on success and gives no structured code to tell a
// duplicate application apart from any other rejection.
func (c *Client) ApplyToJob(ctx context.Context, token string, jobID int64) error {
	endpoint := c.url(fmt.Sprintf("/jobs/%d/applys/", jobID))
	return c.do(ctx, http.MethodPost, endpoint, token, map[string]any{}, nil)
}
