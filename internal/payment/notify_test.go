package payment

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/Nihal1l/jobboard-client/internal/api"
)

type fakeNotifyAPI struct {
	cancelCalls int
	cancelTxn   string
	failCalls   int
	lastReport  api.FailReport
	err         error
}

func (f *fakeNotifyAPI) PaymentCancel(_ context.Context, _ string, transactionID string) error {
	f.cancelCalls++
	f.cancelTxn = transactionID
	return f.err
}

func (f *fakeNotifyAPI) PaymentFail(_ context.Context, _ string, report api.FailReport) error {
	f.failCalls++
	f.lastReport = report
	return f.err
}

func TestNotifyCancelledSkipsWithoutSession(t *testing.T) {
	notifyAPI := &fakeNotifyAPI{}
	n := NewNotifier(notifyAPI, nil)

	n.NotifyCancelled(context.Background(), nil, url.Values{"tran_id": {"TXN-1"}})

	if notifyAPI.cancelCalls != 0 {
		t.Fatalf("cancel called %d times, want 0", notifyAPI.cancelCalls)
	}
}

func TestNotifyCancelledReportsAndSwallowsFailure(t *testing.T) {
	notifyAPI := &fakeNotifyAPI{err: errors.New("boom")}
	n := NewNotifier(notifyAPI, nil)

	// The notification is best-effort; a failure must not escape.
	n.NotifyCancelled(context.Background(), validSession(), url.Values{"tran_id": {"TXN-1"}})

	if notifyAPI.cancelCalls != 1 {
		t.Fatalf("cancel called %d times, want 1", notifyAPI.cancelCalls)
	}
	if notifyAPI.cancelTxn != "TXN-1" {
		t.Fatalf("cancel transaction = %q", notifyAPI.cancelTxn)
	}
}

func TestNotifyFailedBuildsReport(t *testing.T) {
	notifyAPI := &fakeNotifyAPI{}
	n := NewNotifier(notifyAPI, nil)

	params := url.Values{
		"tranID":        {"TXN-7"},
		"error_code":    {"51"},
		"error_message": {"insufficient funds"},
	}
	details := n.NotifyFailed(context.Background(), validSession(), params)

	if details.TransactionID != "TXN-7" {
		t.Fatalf("transaction = %q", details.TransactionID)
	}
	if details.Reason != "insufficient funds" {
		t.Fatalf("reason = %q", details.Reason)
	}
	if notifyAPI.failCalls != 1 {
		t.Fatalf("fail called %d times, want 1", notifyAPI.failCalls)
	}
	report := notifyAPI.lastReport
	if report.ErrorCode != "51" || report.ErrorMessage != "insufficient funds" {
		t.Fatalf("report = %+v", report)
	}
	if report.RawParams["tranID"] != "TXN-7" {
		t.Fatalf("raw params not relayed: %+v", report.RawParams)
	}
}

func TestNotifyFailedFallbackReason(t *testing.T) {
	notifyAPI := &fakeNotifyAPI{}
	n := NewNotifier(notifyAPI, nil)

	details := n.NotifyFailed(context.Background(), nil, url.Values{"tran_id": {"TXN-8"}})

	if details.Reason != declinedFallback {
		t.Fatalf("reason = %q, want fallback", details.Reason)
	}
	if notifyAPI.failCalls != 0 {
		t.Fatalf("fail called without a session")
	}
}
