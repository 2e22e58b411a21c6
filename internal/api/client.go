package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/infra"
)

// Options configures the portal API client.
type Options struct {
	BaseURL        string
	AuthBaseURL    string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the job-board REST API. The API is an
// external black box; every response is decoded into an explicit record
// type at this boundary.
type Client struct {
	baseURL     string
	authBaseURL string
	httpClient  *http.Client
	logger      *infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("api: base url is required")
	}
	authBaseURL := strings.TrimRight(opts.AuthBaseURL, "/")
	if authBaseURL == "" {
		authBaseURL = baseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		baseURL:     baseURL,
		authBaseURL: authBaseURL,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// errorEnvelope covers every error body shape the API emits. Precedence
// when surfacing a message: message, error, detail, then transport text.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

func (e errorEnvelope) best() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return e.Detail
	}
}

// StatusError is a non-2xx response with its best extracted message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// do issues one request and decodes the response into out when non-nil.
// A non-empty token is sent using the portal's JWT header convention.
func (c *Client) do(ctx context.Context, method, url, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api: request")

	if resp.StatusCode >= 300 {
		var envelope errorEnvelope
		_ = json.Unmarshal(raw, &envelope)
		return &StatusError{StatusCode: resp.StatusCode, Message: envelope.best()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) authURL(path string) string {
	return c.authBaseURL + path
}

// ErrorMessage extracts the user-facing message from an API error using
// the same precedence as the web client: server message, server error,
// then the transport error text.
func ErrorMessage(err error) string {
	var status *StatusError
	if errors.As(err, &status) && status.Message != "" {
		return status.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// parseTime decodes the API's timestamps, tolerating missing or malformed
// values with a zero time rather than failing the whole record.
func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
