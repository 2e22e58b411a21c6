package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type captureTransport struct {
	lastReq  *http.Request
	lastBody []byte
	status   int
	body     []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastReq = req
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	body := c.body
	if body == nil {
		body = []byte(`{}`)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

func newTestClient(t *testing.T, transport *captureTransport) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:     "http://portal.test/api",
		AuthBaseURL: "http://portal.test",
		HTTPClient:  &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestDoSendsJWTHeader(t *testing.T) {
	transport := &captureTransport{body: []byte(`[]`)}
	client := newTestClient(t, transport)

	if _, err := client.AppliedCandidates(context.Background(), "tok-123", 7); err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := transport.lastReq.Header.Get("Authorization"); got != "JWT tok-123" {
		t.Fatalf("authorization = %q", got)
	}
	if transport.lastReq.Header.Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	transport := &captureTransport{body: []byte(`[]`)}
	client := newTestClient(t, transport)

	if _, err := client.ListPremiumFeatures(context.Background()); err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := transport.lastReq.Header.Get("Authorization"); got != "" {
		t.Fatalf("authorization = %q, want empty", got)
	}
}

func TestErrorMessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"message":"plan expired","error":"bad request","detail":"x"}`, "plan expired"},
		{"error next", `{"error":"bad request","detail":"x"}`, "bad request"},
		{"detail last", `{"detail":"not found"}`, "not found"},
		{"empty body falls back to status", `{}`, "server returned status 400"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &captureTransport{status: http.StatusBadRequest, body: []byte(tc.body)}
			client := newTestClient(t, transport)

			err := client.PaymentCancel(context.Background(), "tok", "TXN")
			if err == nil {
				t.Fatal("want error")
			}
			if got := ErrorMessage(err); got != tc.want {
				t.Fatalf("message = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPaymentInitiateURLPrecedence(t *testing.T) {
	transport := &captureTransport{body: []byte(`{"payment_url":"https://gw/pay","checkout_url":"https://gw/alt"}`)}
	client := newTestClient(t, transport)

	url, err := client.PaymentInitiate(context.Background(), "tok", InitiateRequest{PlanID: 1, Amount: 499})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if url != "https://gw/pay" {
		t.Fatalf("url = %q", url)
	}
}

func TestPaymentInitiateCheckoutFallback(t *testing.T) {
	transport := &captureTransport{body: []byte(`{"checkout_url":"https://gw/alt"}`)}
	client := newTestClient(t, transport)

	url, err := client.PaymentInitiate(context.Background(), "tok", InitiateRequest{})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if url != "https://gw/alt" {
		t.Fatalf("url = %q", url)
	}
}

func TestPaymentInitiateWithoutURL(t *testing.T) {
	t.Run("server message", func(t *testing.T) {
		transport := &captureTransport{body: []byte(`{"message":"gateway unavailable"}`)}
		client := newTestClient(t, transport)

		_, err := client.PaymentInitiate(context.Background(), "tok", InitiateRequest{})
		if got := ErrorMessage(err); got != "gateway unavailable" {
			t.Fatalf("message = %q", got)
		}
	})
	t.Run("empty body", func(t *testing.T) {
		transport := &captureTransport{body: []byte(`{}`)}
		client := newTestClient(t, transport)

		_, err := client.PaymentInitiate(context.Background(), "tok", InitiateRequest{})
		if !errors.Is(err, domain.ErrNoPaymentURL) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestPaymentConfirmTolerantDecoding(t *testing.T) {
	// Amounts arrive as numbers or strings depending on the server path.
	transport := &captureTransport{body: []byte(`{"transaction_id":12345,"plan_name":"Premium","amount":499.5}`)}
	client := newTestClient(t, transport)

	summary, err := client.PaymentConfirm(context.Background(), "tok", ConfirmRequest{
		TransactionID: "12345",
		RawParams:     map[string]string{"tran_id": "12345"},
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if summary.TransactionID != "12345" || summary.Amount != "499.5" {
		t.Fatalf("summary = %+v", summary)
	}

	var sent ConfirmRequest
	if err := json.Unmarshal(transport.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent.Status != "completed" {
		t.Fatalf("status = %q", sent.Status)
	}
	if sent.RawParams["tran_id"] != "12345" {
		t.Fatalf("raw params not relayed: %+v", sent.RawParams)
	}
}

func TestPaymentCancelBody(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, transport)

	if err := client.PaymentCancel(context.Background(), "tok", "TXN-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	var sent map[string]string
	if err := json.Unmarshal(transport.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["transaction_id"] != "TXN-1" || sent["status"] != "cancelled" {
		t.Fatalf("body = %+v", sent)
	}
}

func TestPaymentFailSetsStatus(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, transport)

	err := client.PaymentFail(context.Background(), "tok", FailReport{TransactionID: "TXN-2", ErrorCode: "51"})
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	var sent FailReport
	if err := json.Unmarshal(transport.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent.Status != "failed" || sent.ErrorCode != "51" {
		t.Fatalf("report = %+v", sent)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2024-03-15T12:30:00Z").IsZero() {
		t.Fatal("rfc3339 not parsed")
	}
	if parseTime("2024-03-15").IsZero() {
		t.Fatal("date-only not parsed")
	}
	if !parseTime("garbage").IsZero() {
		t.Fatal("malformed timestamp should yield zero time")
	}
}
