package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"leadquiz/internal/model"
)

// Transport selects how the payload travels to the sink
type Transport string

const (
	TransportQuery Transport = "query" // GET with query-string-encoded payload
	TransportJSON  Transport = "json"  // POST with structured JSON body
)

// DefaultTimeout bounds a single delivery attempt
const DefaultTimeout = 10 * time.Second

// FailureReason classifies why a delivery attempt failed
type FailureReason string

const (
	ReasonTimeout FailureReason = "timeout"
	ReasonNetwork FailureReason = "network"
	ReasonServer  FailureReason = "server"
)

// DeliveryError is the typed failure returned instead of raising: the state
// machine turns it into a Failed transition, never a crash
type DeliveryError struct {
	Reason FailureReason
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed (%s): %v", e.Reason, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// WebhookClient delivers submission payloads to the external sink
type WebhookClient struct {
	url        string
	transport  Transport
	timeout    time.Duration
	httpClient *http.Client
}

// NewWebhookClient creates a sink client for the given endpoint. A zero
// timeout falls back to DefaultTimeout.
func NewWebhookClient(url string, transport Transport, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &WebhookClient{
		url:        url,
		transport:  transport,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Deliver sends one payload. The attempt is cancelled after the configured
// timeout; any non-2xx response, network error or timeout comes back as a
// *DeliveryError.
func (c *WebhookClient) Deliver(ctx context.Context, p *model.SubmissionPayload) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, p)
	if err != nil {
		return &DeliveryError{Reason: ReasonNetwork, Err: err}
	}

	log.Printf("[Webhook] %s %s (submission %s)", req.Method, c.url, p.SubmissionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			log.Printf("[Webhook] TIMEOUT after %v (submission %s)", c.timeout, p.SubmissionID)
			return &DeliveryError{Reason: ReasonTimeout, Err: err}
		}
		log.Printf("[Webhook] ERROR: %v (submission %s)", err, p.SubmissionID)
		return &DeliveryError{Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Webhook] ERROR: sink returned %d (submission %s)", resp.StatusCode, p.SubmissionID)
		return &DeliveryError{
			Reason: ReasonServer,
			Err:    fmt.Errorf("sink returned %d", resp.StatusCode),
		}
	}

	log.Printf("[Webhook] SUCCESS: submission %s delivered", p.SubmissionID)
	return nil
}

func (c *WebhookClient) buildRequest(ctx context.Context, p *model.SubmissionPayload) (*http.Request, error) {
	switch c.transport {
	case TransportJSON:
		body, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil

	default: // TransportQuery
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = Flatten(p).Encode()
		return req, nil
	}
}
