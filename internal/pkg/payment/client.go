package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

// Gateway failure taxonomy. Unavailable covers transport-level problems and
// malformed responses; Rejected means the provider answered with a
// well-formed non-success envelope, which is definitive and not retried.
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected request")
)

// Envelope is the provider response wrapper. Every API answers with a
// Success flag and a Model object carrying transaction details.
type Envelope struct {
	Success bool           `json:"Success"`
	Message string         `json:"Message"`
	Model   TransactionDTO `json:"Model"`
}

// TransactionDTO is the provider-side view of a transaction.
type TransactionDTO struct {
	TransactionID int64   `json:"TransactionId"`
	Amount        float64 `json:"Amount"`
	Status        string  `json:"Status"`
}

// Gateway is the outbound payment-provider surface the workflow depends on.
type Gateway interface {
	GetStatus(ctx context.Context, transactionID string) (*Envelope, error)
	Confirm(ctx context.Context, transactionID string, amount float64) (*Envelope, error)
	IssueReceipt(ctx context.Context, transactionID string, amount float64, email string) (*Envelope, error)
}

// Client talks to the CloudPayments-style HTTP API with Basic auth built
// from the public id and API secret.
type Client struct {
	cfg        config.GatewayConfig
	HTTPClient *http.Client
}

// NewClient creates a gateway client from provider settings.
func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetStatus queries the current provider-side status of a transaction.
func (c *Client) GetStatus(ctx context.Context, transactionID string) (*Envelope, error) {
	return c.post(ctx, c.cfg.StatusURL, map[string]interface{}{
		"TransactionId": transactionID,
	})
}

// Confirm captures an authorized hold. The amount is always the one
// validated at intake; a gateway-reported amount is never trusted over it.
func (c *Client) Confirm(ctx context.Context, transactionID string, amount float64) (*Envelope, error) {
	return c.post(ctx, c.cfg.ConfirmURL, map[string]interface{}{
		"TransactionId": transactionID,
		"Amount":        amount,
	})
}

// IssueReceipt issues a fiscal receipt for a completed transaction. Used by
// the receipt strategy of the Completed branch instead of Confirm.
func (c *Client) IssueReceipt(ctx context.Context, transactionID string, amount float64, email string) (*Envelope, error) {
	return c.post(ctx, c.cfg.ReceiptURL, map[string]interface{}{
		"TransactionId": transactionID,
		"Amount":        amount,
		"Email":         email,
		"Inn":           c.cfg.INN,
	})
}

func (c *Client) post(ctx context.Context, url string, body map[string]interface{}) (*Envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrGatewayUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGatewayUnavailable, err)
	}
	req.Header.Set("Authorization", "Basic "+c.basicAuth())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrGatewayUnavailable, resp.StatusCode, string(raw))
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}
	if !envelope.Success {
		return &envelope, fmt.Errorf("%w: %s", ErrGatewayRejected, envelope.Message)
	}
	return &envelope, nil
}

func (c *Client) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(c.cfg.PublicID + ":" + c.cfg.APISecret))
}
