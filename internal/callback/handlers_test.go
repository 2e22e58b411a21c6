package callback

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/payment"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

type fakePaymentAPI struct {
	summary     domain.PaymentSummary
	confirmErr  error
	confirms    int
	cancels     int
	fails       int
	lastCancel  string
	lastFailure api.FailReport
}

func (f *fakePaymentAPI) PaymentConfirm(context.Context, string, api.ConfirmRequest) (domain.PaymentSummary, error) {
	f.confirms++
	return f.summary, f.confirmErr
}

func (f *fakePaymentAPI) PaymentCancel(_ context.Context, _ string, transactionID string) error {
	f.cancels++
	f.lastCancel = transactionID
	return nil
}

func (f *fakePaymentAPI) PaymentFail(_ context.Context, _ string, report api.FailReport) error {
	f.fails++
	f.lastFailure = report
	return nil
}

func newTestRouter(fake *fakePaymentAPI, sess *session.Session) (http.Handler, *Handlers) {
	h := NewHandlers(
		payment.NewReconciler(payment.ReconcilerOptions{API: fake}),
		payment.NewNotifier(fake, nil),
		sess,
		nil,
	)
	return NewRouter(h, zerolog.New(io.Discard)), h
}

func get(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return rec, string(body)
}

func TestSuccessConfirmed(t *testing.T) {
	fake := &fakePaymentAPI{summary: domain.PaymentSummary{
		TransactionID: "TXN-1",
		PlanName:      "Premium",
		Amount:        "499",
	}}
	router, h := newTestRouter(fake, &session.Session{Access: "tok"})

	var terminal payment.State
	h.OnTerminal = func(s payment.State) { terminal = s }

	rec, body := get(t, router, "/payment/success?tran_id=TXN-1&amount=499")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(body, "Payment Confirmed") {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(body, "TXN-1") || !strings.Contains(body, "Premium") {
		t.Fatalf("summary missing from page: %s", body)
	}
	if terminal != payment.StateConfirmed {
		t.Fatalf("terminal state = %v", terminal)
	}
	if fake.confirms != 1 {
		t.Fatalf("confirms = %d", fake.confirms)
	}
}

func TestSuccessWithoutTransactionID(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	_, body := get(t, router, "/payment/success?foo=bar")

	if !strings.Contains(body, "couldn&#39;t find a transaction ID") {
		t.Fatalf("body = %s", body)
	}
	if fake.confirms != 0 {
		t.Fatal("confirm called without a transaction id")
	}
	// Raw params are echoed for diagnostics.
	if !strings.Contains(body, "foo=bar") {
		t.Fatalf("diagnostics missing: %s", body)
	}
}

func TestSuccessWithoutSession(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, nil)

	_, body := get(t, router, "/payment/success?transaction_id=TXN-2")

	if !strings.Contains(body, "Authentication Required") {
		t.Fatalf("body = %s", body)
	}
	if fake.confirms != 0 {
		t.Fatal("confirm called without a session")
	}
}

func TestSuccessVerificationFailedOffersRetry(t *testing.T) {
	fake := &fakePaymentAPI{confirmErr: &api.StatusError{StatusCode: 404, Message: "transaction not found"}}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	_, body := get(t, router, "/payment/success?tran_id=TXN-3")

	if !strings.Contains(body, "Verification Failed") {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(body, "transaction not found") {
		t.Fatalf("server message missing: %s", body)
	}
	if !strings.Contains(body, `<a href="/payment/retry">Retry Verification</a>`) {
		t.Fatalf("retry link missing: %s", body)
	}

	// The retry route reuses the retained attempt; the original callback
	// query is not needed again.
	fake.confirmErr = nil
	fake.summary = domain.PaymentSummary{TransactionID: "TXN-3"}
	_, body = get(t, router, "/payment/retry")
	if !strings.Contains(body, "Payment Confirmed") {
		t.Fatalf("retry body = %s", body)
	}
	if fake.confirms != 2 {
		t.Fatalf("confirms = %d", fake.confirms)
	}
}

func TestRetryWithoutFailedVerification(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	_, body := get(t, router, "/payment/retry")

	if !strings.Contains(body, "No Payment in Progress") {
		t.Fatalf("body = %s", body)
	}
	if fake.confirms != 0 {
		t.Fatal("retry confirmed without a retained attempt")
	}
}

func TestRetryAfterConfirmationIsNoOp(t *testing.T) {
	fake := &fakePaymentAPI{summary: domain.PaymentSummary{TransactionID: "TXN-9"}}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	if _, body := get(t, router, "/payment/success?tran_id=TXN-9"); !strings.Contains(body, "Payment Confirmed") {
		t.Fatalf("body = %s", body)
	}
	_, body := get(t, router, "/payment/retry")
	if !strings.Contains(body, "Payment Confirmed") {
		t.Fatalf("retry body = %s", body)
	}
	if fake.confirms != 1 {
		t.Fatalf("confirms = %d, want 1", fake.confirms)
	}
}

func TestCancelNotifiesAndRenders(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, h := newTestRouter(fake, &session.Session{Access: "tok"})

	fired := false
	h.OnTerminal = func(payment.State) { fired = true }

	_, body := get(t, router, "/payment/cancel?tran_id=TXN-4")

	if !strings.Contains(body, "Payment Cancelled") {
		t.Fatalf("body = %s", body)
	}
	if fake.cancels != 1 || fake.lastCancel != "TXN-4" {
		t.Fatalf("cancel notification: calls=%d txn=%q", fake.cancels, fake.lastCancel)
	}
	if !fired {
		t.Fatal("terminal hook not fired")
	}
}

func TestFailRendersReason(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	_, body := get(t, router, "/payment/fail?tran_id=TXN-5&error_message=card+declined")

	if !strings.Contains(body, "Payment Failed") {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(body, "card declined") {
		t.Fatalf("reason missing: %s", body)
	}
	if !strings.Contains(body, "TXN-5") {
		t.Fatalf("transaction id missing: %s", body)
	}
	if fake.fails != 1 || fake.lastFailure.ErrorMessage != "card declined" {
		t.Fatalf("fail report: calls=%d report=%+v", fake.fails, fake.lastFailure)
	}
}

func TestFailWithoutReasonUsesFallback(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	_, body := get(t, router, "/payment/fail?tran_id=TXN-6")

	if !strings.Contains(body, "declined by the payment gateway or bank") {
		t.Fatalf("fallback reason missing: %s", body)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	fake := &fakePaymentAPI{}
	router, _ := newTestRouter(fake, &session.Session{Access: "tok"})

	rec, _ := get(t, router, "/payment/other")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
