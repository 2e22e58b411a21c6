package callback

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/payment"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// Handlers holds the landing-page dependencies. The session is read-shared
// and effectively immutable for the lifetime of the flow.
type Handlers struct {
	Reconciler *payment.Reconciler
	Notifier   *payment.Notifier
	Session    *session.Session
	Logger     *infra.Logger

	// OnTerminal, when set, fires after a landing page reaches a terminal
	// outcome so the upgrade flow can stop the server.
	OnTerminal func(state payment.State)
}

func NewHandlers(reconciler *payment.Reconciler, notifier *payment.Notifier, sess *session.Session, logger *infra.Logger) *Handlers {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Handlers{
		Reconciler: reconciler,
		Notifier:   notifier,
		Session:    sess,
		Logger:     logger,
	}
}

// Success runs the reconciler against the callback query and renders the
// terminal state.
func (h *Handlers) Success(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	state := h.Reconciler.Run(r.Context(), h.Session, params)
	h.renderVerification(w, state, params)
}

// Retry re-enters verification with the attempt retained from a failed
// landing, so the browser does not need to revisit the original callback
// query. Anything other than a failed verification is a no-op.
func (h *Handlers) Retry(w http.ResponseWriter, r *http.Request) {
	state := h.Reconciler.Retry(r.Context(), h.Session)
	h.renderVerification(w, state, r.URL.Query())
}

func (h *Handlers) renderVerification(w http.ResponseWriter, state payment.State, params url.Values) {
	var b strings.Builder
	switch state {
	case payment.StateConfirmed:
		writeHeading(&b, "Payment Confirmed", h.Reconciler.Message())
		if summary := h.Reconciler.Summary(); summary != nil {
			b.WriteString("<h2>Transaction Summary</h2><dl>")
			writeRow(&b, "Ref ID", summary.TransactionID)
			writeRow(&b, "Subscription", summary.PlanName)
			writeRow(&b, "Amount Paid", summary.Amount)
			b.WriteString("</dl>")
		}
	case payment.StateAuthRequired:
		writeHeading(&b, "Authentication Required", h.Reconciler.Message())
	case payment.StateVerificationFailed:
		writeHeading(&b, "Verification Failed", h.Reconciler.Message())
		b.WriteString(`<p><a href="/payment/retry">Retry Verification</a></p>`)
		writeDebugParams(&b, params)
	case payment.StateNoTransactionFound:
		writeHeading(&b, "Confirming Payment", h.Reconciler.Message())
		writeDebugParams(&b, params)
	default:
		writeHeading(&b, "No Payment in Progress", "There is no failed verification to retry.")
	}
	renderPage(w, http.StatusOK, b.String())

	if state.Terminal() && h.OnTerminal != nil {
		h.OnTerminal(state)
	}
}

// Cancel fires the best-effort cancellation notice and renders static
// guidance. There is nothing to verify; the outcome is known from the URL.
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	h.Notifier.NotifyCancelled(r.Context(), h.Session, r.URL.Query())

	var b strings.Builder
	writeHeading(&b, "Payment Cancelled",
		"No worries! Your payment was cancelled and no charges were made to your account. You can try again whenever you're ready.")
	renderPage(w, http.StatusOK, b.String())

	if h.OnTerminal != nil {
		h.OnTerminal(payment.StateIdle)
	}
}

// Fail fires the best-effort failure report and renders the decline
// reason with recovery suggestions.
func (h *Handlers) Fail(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	details := h.Notifier.NotifyFailed(r.Context(), h.Session, params)

	var b strings.Builder
	writeHeading(&b, "Payment Failed", "We couldn't process your transaction.")
	fmt.Fprintf(&b, "<p><em>%s</em></p>", html.EscapeString(details.Reason))
	b.WriteString("<ul><li>Check if your card has sufficient funds.</li><li>Contact your bank for potential blocks.</li></ul>")
	if details.TransactionID != "" {
		fmt.Fprintf(&b, "<p>Transaction ID: <code>%s</code></p>", html.EscapeString(details.TransactionID))
	}
	writeDebugParams(&b, params)
	renderPage(w, http.StatusOK, b.String())

	if h.OnTerminal != nil {
		h.OnTerminal(payment.StateIdle)
	}
}

func writeHeading(b *strings.Builder, title, message string) {
	fmt.Fprintf(b, "<h1>%s</h1><p>%s</p>", html.EscapeString(title), html.EscapeString(message))
}

func writeRow(b *strings.Builder, label, value string) {
	if value == "" {
		value = "N/A"
	}
	fmt.Fprintf(b, "<dt>%s</dt><dd>%s</dd>", html.EscapeString(label), html.EscapeString(value))
}

func writeDebugParams(b *strings.Builder, params url.Values) {
	b.WriteString("<h2>Diagnostics</h2><pre>")
	for key, values := range params {
		for _, v := range values {
			fmt.Fprintf(b, "%s=%s\n", html.EscapeString(key), html.EscapeString(v))
		}
	}
	b.WriteString("</pre>")
}

func renderPage(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, "<!doctype html><html><head><title>Job Board</title></head><body>%s</body></html>", body)
}
