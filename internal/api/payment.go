package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

// InitiateRequest is the body of POST /payment/initiate/.
type InitiateRequest struct {
	PlanID       int64   `json:"plan_id"`
	PlanName     string  `json:"plan_name"`
	Amount       float64 `json:"amount"`
	BillingCycle string  `json:"billing_cycle"`
	Currency     string  `json:"currency"`
}

type initiateResponse struct {
	PaymentURL  string `json:"payment_url"`
	CheckoutURL string `json:"checkout_url"`
	Message     string `json:"message"`
	Error       string `json:"error"`
}

// PaymentInitiate asks the server for a gateway redirect URL. The server
// may answer with either payment_url or checkout_url; payment_url wins.
func (c *Client) PaymentInitiate(ctx context.Context, token string, req InitiateRequest) (string, error) {
	var resp initiateResponse
	if err := c.do(ctx, http.MethodPost, c.url("/payment/initiate/"), token, req, &resp); err != nil {
		return "", err
	}
	switch {
	case resp.PaymentURL != "":
		return resp.PaymentURL, nil
	case resp.CheckoutURL != "":
		return resp.CheckoutURL, nil
	case resp.Message != "":
		return "", &StatusError{StatusCode: http.StatusOK, Message: resp.Message}
	case resp.Error != "":
		return "", &StatusError{StatusCode: http.StatusOK, Message: resp.Error}
	default:
		return "", domain.ErrNoPaymentURL
	}
}

// ConfirmRequest is the body of POST /payment/success/. The complete
// callback query map rides along so the server can re-validate against
// its own transaction record; the client is a relay, not an authority.
type ConfirmRequest struct {
	TransactionID string            `json:"transaction_id"`
	PlanID        string            `json:"plan_id,omitempty"`
	Amount        string            `json:"amount,omitempty"`
	Status        string            `json:"status"`
	RawParams     map[string]string `json:"raw_params"`
}

// flexString decodes a field the server sends either as a JSON string or
// a bare number.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		*f = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	if v, err := n.Float64(); err == nil {
		*f = flexString(strconv.FormatFloat(v, 'f', -1, 64))
	} else {
		*f = flexString(n.String())
	}
	return nil
}

type confirmResponse struct {
	TransactionID flexString `json:"transaction_id"`
	PlanName      string     `json:"plan_name"`
	Amount        flexString `json:"amount"`
}

// PaymentConfirm reports a completed gateway transaction and returns the
// server's confirmed summary.
func (c *Client) PaymentConfirm(ctx context.Context, token string, req ConfirmRequest) (domain.PaymentSummary, error) {
	req.Status = "completed"
	var resp confirmResponse
	if err := c.do(ctx, http.MethodPost, c.url("/payment/success/"), token, req, &resp); err != nil {
		return domain.PaymentSummary{}, err
	}
	return domain.PaymentSummary{
		TransactionID: string(resp.TransactionID),
		PlanName:      resp.PlanName,
		Amount:        string(resp.Amount),
	}, nil
}

// PaymentCancel tells the server the user backed out at the gateway.
func (c *Client) PaymentCancel(ctx context.Context, token, transactionID string) error {
	body := map[string]string{
		"transaction_id": transactionID,
		"status":         "cancelled",
	}
	return c.do(ctx, http.MethodPost, c.url("/payment/cancel/"), token, body, nil)
}

// FailReport is the body of POST /payment/fail/.
type FailReport struct {
	TransactionID string            `json:"transaction_id"`
	ErrorCode     string            `json:"error_code,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	Status        string            `json:"status"`
	RawParams     map[string]string `json:"raw_params"`
}

// PaymentFail logs a declined transaction with the server.
func (c *Client) PaymentFail(ctx context.Context, token string, report FailReport) error {
	report.Status = "failed"
	return c.do(ctx, http.MethodPost, c.url("/payment/fail/"), token, report, nil)
}
