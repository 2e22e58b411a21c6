package payment

import (
	"context"
	"io"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// declinedFallback is shown when the gateway gave no reason of its own.
const declinedFallback = "The transaction was declined by the payment gateway or bank."

// NotifyAPI is the API surface the notifier needs.
type NotifyAPI interface {
	PaymentCancel(ctx context.Context, token, transactionID string) error
	PaymentFail(ctx context.Context, token string, report api.FailReport) error
}

// Notifier reports cancel/fail landings to the server. These are
// best-effort side effects: the monetary outcome is already fixed by the
// gateway, so a notification failure is logged and deliberately
// discarded, never surfaced to the user.
type Notifier struct {
	api    NotifyAPI
	logger *infra.Logger
}

func NewNotifier(notifyAPI NotifyAPI, logger *infra.Logger) *Notifier {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Notifier{api: notifyAPI, logger: logger}
}

// NotifyCancelled reports a cancelled checkout. Without a session there is
// nothing to attribute the cancellation to and the call is skipped.
func (n *Notifier) NotifyCancelled(ctx context.Context, sess *session.Session, params url.Values) {
	transactionID := firstParam(params, "transaction_id", "tran_id")
	if !sess.Valid() {
		n.logger.Debug().Str("transaction_id", transactionID).Msg("payment: cancel landing without session, not reported")
		return
	}
	if err := n.api.PaymentCancel(ctx, sess.Token(), transactionID); err != nil {
		n.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("payment: cancel notification discarded")
	}
}

// FailureDetails is what the fail landing page displays.
type FailureDetails struct {
	TransactionID string
	Reason        string
}

// NotifyFailed reports a declined transaction and returns the details the
// landing page shows. The report itself is best-effort.
func (n *Notifier) NotifyFailed(ctx context.Context, sess *session.Session, params url.Values) FailureDetails {
	transactionID := firstParam(params, "transaction_id", "tran_id", "tranID")
	details := FailureDetails{
		TransactionID: transactionID,
		Reason:        FailureMessage(params),
	}
	if details.Reason == "" {
		details.Reason = firstParam(params, "error")
	}
	if details.Reason == "" {
		details.Reason = declinedFallback
	}

	if !sess.Valid() {
		n.logger.Debug().Str("transaction_id", transactionID).Msg("payment: fail landing without session, not reported")
		return details
	}
	report := api.FailReport{
		TransactionID: transactionID,
		ErrorCode:     FailureCode(params),
		ErrorMessage:  FailureMessage(params),
		RawParams:     Flatten(params),
	}
	if err := n.api.PaymentFail(ctx, sess.Token(), report); err != nil {
		n.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("payment: fail notification discarded")
	}
	return details
}
