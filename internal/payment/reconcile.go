package payment

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// State is the reconciler's position in the verification flow. All states
// other than Idle and Verifying are terminal for a page load; only a
// manual retry re-enters Verifying from VerificationFailed.
type State int

const (
	StateIdle State = iota
	StateVerifying
	StateConfirmed
	StateAuthRequired
	StateVerificationFailed
	StateNoTransactionFound
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateVerifying:
		return "verifying"
	case StateConfirmed:
		return "confirmed"
	case StateAuthRequired:
		return "auth_required"
	case StateVerificationFailed:
		return "verification_failed"
	case StateNoTransactionFound:
		return "no_transaction_found"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further automatic transition occurs.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateAuthRequired, StateVerificationFailed, StateNoTransactionFound:
		return true
	}
	return false
}

const (
	msgNoTransaction = "We couldn't find a transaction ID in the URL. If you just completed a payment, please refresh or contact support."
	msgAuthRequired  = "Please log in so we can link this payment to your account."
	msgConfirmed     = "Verification Complete! Your account is now active."
)

// slowThreshold is how long the reconciler sits in Verifying before the
// non-blocking slow notice fires. The notice never alters the state.
const slowThreshold = 5 * time.Second

// ConfirmAPI is the API surface the reconciler needs.
type ConfirmAPI interface {
	PaymentConfirm(ctx context.Context, token string, req api.ConfirmRequest) (domain.PaymentSummary, error)
}

// ReconcilerOptions configures a Reconciler.
type ReconcilerOptions struct {
	API    ConfirmAPI
	Logger *infra.Logger
	// SlowAfter overrides the slow-notice threshold. Zero keeps the default.
	SlowAfter time.Duration
	// OnSlow fires once when verification exceeds the threshold.
	OnSlow func(elapsed time.Duration)
}

// Reconciler turns an ambiguous gateway callback into a terminal state:
// it extracts the transaction id, checks the session, confirms the
// transaction with the API and records the outcome. The client performs
// no amount or plan validation itself; the server re-validates against
// its own authoritative transaction record.
type Reconciler struct {
	api       ConfirmAPI
	logger    *infra.Logger
	slowAfter time.Duration
	onSlow    func(elapsed time.Duration)

	mu      sync.Mutex
	state   State
	message string
	summary *domain.PaymentSummary
	attempt *domain.PaymentAttempt
	elapsed int
	slow    bool
}

func NewReconciler(opts ReconcilerOptions) *Reconciler {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	slowAfter := opts.SlowAfter
	if slowAfter <= 0 {
		slowAfter = slowThreshold
	}
	return &Reconciler{
		api:       opts.API,
		logger:    logger,
		slowAfter: slowAfter,
		onSlow:    opts.OnSlow,
		state:     StateIdle,
	}
}

// Run consumes one gateway callback and drives the machine to a terminal
// state. The attempt is consumed exactly once; after Confirmed it is
// discarded.
func (r *Reconciler) Run(ctx context.Context, sess *session.Session, params url.Values) State {
	transactionID := TransactionID(params)
	if transactionID == "" {
		r.logger.Warn().Err(domain.ErrNoTransactionFound).Msg("payment: callback without transaction id")
		r.terminate(StateNoTransactionFound, msgNoTransaction)
		return StateNoTransactionFound
	}

	attempt := &domain.PaymentAttempt{
		TransactionID: transactionID,
		PlanID:        PlanID(params),
		Amount:        Amount(params),
		RawParams:     Flatten(params),
	}

	if !sess.Valid() {
		// A gateway-confirmed payment under an expired local session does
		// not self-heal; the server may reconcile out-of-band.
		r.logger.Error().Str("transaction_id", transactionID).Msg("payment: no session during confirmation")
		r.mu.Lock()
		r.attempt = attempt
		r.mu.Unlock()
		r.terminate(StateAuthRequired, msgAuthRequired)
		return StateAuthRequired
	}

	r.mu.Lock()
	r.attempt = attempt
	r.mu.Unlock()
	return r.verify(ctx, sess.Token(), attempt)
}

// Retry re-enters Verifying from VerificationFailed using the retained
// attempt. Any other state is a no-op.
func (r *Reconciler) Retry(ctx context.Context, sess *session.Session) State {
	r.mu.Lock()
	if r.state != StateVerificationFailed || r.attempt == nil {
		state := r.state
		r.mu.Unlock()
		return state
	}
	attempt := r.attempt
	r.mu.Unlock()

	if !sess.Valid() {
		r.terminate(StateAuthRequired, msgAuthRequired)
		return StateAuthRequired
	}
	return r.verify(ctx, sess.Token(), attempt)
}

func (r *Reconciler) verify(ctx context.Context, token string, attempt *domain.PaymentAttempt) State {
	r.mu.Lock()
	r.state = StateVerifying
	r.message = fmt.Sprintf("Found Transaction: %s. Verifying with server...", attempt.TransactionID)
	r.summary = nil
	r.elapsed = 0
	r.slow = false
	r.mu.Unlock()

	done := make(chan struct{})
	go r.tick(done)
	defer close(done)

	summary, err := r.api.PaymentConfirm(ctx, token, api.ConfirmRequest{
		TransactionID: attempt.TransactionID,
		PlanID:        attempt.PlanID,
		Amount:        attempt.Amount,
		RawParams:     attempt.RawParams,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", attempt.TransactionID).Msg("payment: confirmation failed")
		r.terminate(StateVerificationFailed, "Verification failed: "+api.ErrorMessage(err))
		return StateVerificationFailed
	}

	r.mu.Lock()
	r.state = StateConfirmed
	r.message = msgConfirmed
	r.summary = &summary
	r.attempt = nil
	r.mu.Unlock()
	r.logger.Info().
		Str("transaction_id", summary.TransactionID).
		Str("plan", summary.PlanName).
		Msg("payment: confirmed")
	return StateConfirmed
}

// tick counts elapsed seconds while in Verifying and raises the slow
// notice once past the threshold.
func (r *Reconciler) tick(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			r.mu.Lock()
			r.elapsed++
			elapsed := time.Duration(r.elapsed) * time.Second
			fire := !r.slow && elapsed > r.slowAfter
			if fire {
				r.slow = true
			}
			r.mu.Unlock()
			if fire && r.onSlow != nil {
				r.onSlow(elapsed)
			}
		}
	}
}

func (r *Reconciler) terminate(state State, message string) {
	r.mu.Lock()
	r.state = state
	r.message = message
	r.mu.Unlock()
}

// State returns the machine's current state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Message returns the user-visible status line for the current state.
func (r *Reconciler) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Summary returns the confirmed transaction detail, or nil before
// Confirmed is reached.
func (r *Reconciler) Summary() *domain.PaymentSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// Slow reports whether verification has exceeded the slow threshold.
func (r *Reconciler) Slow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slow
}
