// Package apply implements the job application submission flow with
// per-job state, mirroring one job card per posting.
package apply

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// loginMessage is attached to the specific job's error slot so other jobs
// stay interactable.
const loginMessage = "Please login to apply for this job."

// failedMessage covers every rejection: the API gives no structured code
// to tell a duplicate application apart from any other failure.
const failedMessage = "Failed to apply. You might have already applied."

// Submitter is the one API call the controller needs.
type Submitter interface {
	ApplyToJob(ctx context.Context, token string, jobID int64) error
}

// Controller tracks per-job applying flags, the append-only applied set,
// and per-job error messages for the lifetime of a page view.
type Controller struct {
	submitter Submitter
	logger    *infra.Logger

	mu       sync.Mutex
	applying map[int64]bool
	applied  map[int64]bool
	errs     map[int64]string
}

func NewController(submitter Submitter, logger *infra.Logger) *Controller {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Controller{
		submitter: submitter,
		logger:    logger,
		applying:  make(map[int64]bool),
		applied:   make(map[int64]bool),
		errs:      make(map[int64]string),
	}
}

// Apply submits an application for one job. Applies to different jobs are
// independent; a job already applied to or mid-flight is a no-op.
func (c *Controller) Apply(ctx context.Context, sess *session.Session, jobID int64) error {
	c.mu.Lock()
	if c.applied[jobID] || c.applying[jobID] {
		c.mu.Unlock()
		return nil
	}
	if !sess.Valid() {
		c.errs[jobID] = loginMessage
		c.mu.Unlock()
		return domain.ErrAuthRequired
	}
	c.applying[jobID] = true
	delete(c.errs, jobID)
	c.mu.Unlock()

	err := c.submitter.ApplyToJob(ctx, sess.Token(), jobID)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.applying, jobID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("job_id", jobID).Msg("apply: submission failed")
		msg := failedMessage
		var status *api.StatusError
		if errors.As(err, &status) && status.Message != "" {
			msg = status.Message
		}
		c.errs[jobID] = msg
		return &domain.SubmitError{Scope: "apply", Message: msg}
	}
	c.applied[jobID] = true
	return nil
}

// Applied reports whether the job is in the applied set. The set only
// grows; there is no un-apply for the duration of the view.
func (c *Controller) Applied(jobID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied[jobID]
}

// Applying reports whether a submission for the job is in flight.
func (c *Controller) Applying(jobID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applying[jobID]
}

// Error returns the job's error slot, or "" when it has none.
func (c *Controller) Error(jobID int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[jobID]
}
