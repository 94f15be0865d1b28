package yoco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://online.yoco.com"

// Client wraps the Yoco checkout API using the REST API directly (no SDK dependency)
type Client struct {
	secretKey  string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Yoco API client
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}
}

// CheckoutRequest is the payload for creating a hosted checkout session.
// Amount is in minor currency units (cents).
type CheckoutRequest struct {
	Amount     int            `json:"amount"`
	Currency   string         `json:"currency"`
	ExternalID string         `json:"externalId"`
	SuccessURL string         `json:"successUrl"`
	CancelURL  string         `json:"cancelUrl"`
	FailureURL string         `json:"failureUrl"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Checkout is the subset of the checkout session response the backend uses.
type Checkout struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
}

// APIError is a non-success response from the Yoco API. Message holds the
// provider's reported error text and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("yoco API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("yoco API error (%d): %s", e.StatusCode, e.Message)
}

// CreateCheckout creates a Yoco checkout session and returns its id and the
// redirect URL the customer should be sent to.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("yoco request failed: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("read yoco response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		// Best effort: a non-JSON error body still yields an APIError.
		_ = json.Unmarshal(buf.Bytes(), &errBody)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	var checkout Checkout
	if err := json.Unmarshal(buf.Bytes(), &checkout); err != nil {
		return nil, fmt.Errorf("parse yoco response: %w", err)
	}
	if checkout.ID == "" {
		return nil, fmt.Errorf("create checkout: missing session ID in response")
	}

	return &checkout, nil
}
